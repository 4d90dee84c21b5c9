package views

import (
	"image"
	"image/color"
	"image/draw"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Palette shared by all views.
var (
	colorBackground = color.RGBA{10, 12, 24, 255}
	colorText       = color.RGBA{230, 230, 230, 255}
	colorDim        = color.RGBA{140, 140, 150, 255}
	colorAccent     = color.RGBA{255, 184, 48, 255}
	colorGood       = color.RGBA{72, 200, 96, 255}
	colorWarn       = color.RGBA{240, 90, 60, 255}
	colorNavBar     = color.RGBA{22, 26, 44, 255}
)

// face is the bitmap font used everywhere; glyphs are 7x13 px at scale 1.
var face = basicfont.Face7x13

const (
	glyphWidth  = 7
	glyphHeight = 13
)

// canvas wraps a frame image with drawing helpers.
type canvas struct {
	img    *image.RGBA
	width  int
	height int
}

func newCanvas(width, height int) *canvas {
	c := &canvas{
		img:    image.NewRGBA(image.Rect(0, 0, width, height)),
		width:  width,
		height: height,
	}
	c.fill(colorBackground)
	return c
}

func (c *canvas) fill(col color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *canvas) fillRect(r image.Rectangle, col color.RGBA) {
	draw.Draw(c.img, r, image.NewUniform(col), image.Point{}, draw.Src)
}

// text draws a string with its baseline at (x, y).
func (c *canvas) text(x, y int, s string, col color.RGBA) {
	d := font.Drawer{
		Dst:  c.img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

// textCentered draws a string horizontally centered at baseline y.
func (c *canvas) textCentered(y int, s string, col color.RGBA) {
	x := (c.width - utf8.RuneCountInString(s)*glyphWidth) / 2
	c.text(x, y, s, col)
}

// textScaled draws a string magnified by an integer factor, centered
// horizontally with its top edge at y. The bitmap face is rendered at
// native size and scaled up nearest-neighbor.
func (c *canvas) textScaled(y int, s string, scale int, col color.RGBA) {
	if scale <= 1 {
		c.textCentered(y+glyphHeight, s, col)
		return
	}

	w := utf8.RuneCountInString(s) * glyphWidth
	tmp := image.NewRGBA(image.Rect(0, 0, w, glyphHeight))
	d := font.Drawer{
		Dst:  tmp,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.P(0, glyphHeight-2),
	}
	d.DrawString(s)

	x0 := (c.width - w*scale) / 2
	for sy := 0; sy < glyphHeight; sy++ {
		for sx := 0; sx < w; sx++ {
			px := tmp.RGBAAt(sx, sy)
			if px.A == 0 {
				continue
			}
			c.fillRect(image.Rect(
				x0+sx*scale, y+sy*scale,
				x0+(sx+1)*scale, y+(sy+1)*scale,
			), px)
		}
	}
}

// hline draws a 1px horizontal line.
func (c *canvas) hline(x0, x1, y int, col color.RGBA) {
	for x := x0; x <= x1; x++ {
		c.img.SetRGBA(x, y, col)
	}
}

// dot fills a small square centered at (x, y).
func (c *canvas) dot(x, y, radius int, col color.RGBA) {
	c.fillRect(image.Rect(x-radius, y-radius, x+radius+1, y+radius+1), col)
}
