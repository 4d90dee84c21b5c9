package view

import (
	"image"
	"image/png"
	"io"
	"time"
)

// Frame is one complete rendered image for a single view at one point in
// time. Frames are immutable once produced; every render call creates a
// brand-new Frame rather than mutating a prior one.
type Frame struct {
	img        *image.RGBA
	view       string
	renderedAt time.Time
}

// NewFrame creates a Frame from a rendered image.
func NewFrame(img *image.RGBA, viewName string, renderedAt time.Time) *Frame {
	return &Frame{
		img:        img,
		view:       viewName,
		renderedAt: renderedAt,
	}
}

// Image returns the rendered image.
func (f *Frame) Image() *image.RGBA {
	return f.img
}

// View returns the name of the view that produced this frame.
func (f *Frame) View() string {
	return f.view
}

// RenderedAt returns when this frame was produced.
func (f *Frame) RenderedAt() time.Time {
	return f.renderedAt
}

// Bounds returns the pixel bounds of the frame.
func (f *Frame) Bounds() image.Rectangle {
	return f.img.Bounds()
}

// EncodePNG writes the frame as PNG.
func (f *Frame) EncodePNG(w io.Writer) error {
	return png.Encode(w, f.img)
}
