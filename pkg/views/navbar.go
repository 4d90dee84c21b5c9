package views

import "image"

// navButtonWidth matches the tap regions the gesture recognizer routes.
const navButtonWidth = 60

// drawNavBar paints the bottom navigation strip: a prev button on the
// left, a next button on the right, and one page dot per view with the
// current one highlighted.
func drawNavBar(c *canvas, height, index, count int) {
	top := c.height - height
	c.fillRect(image.Rect(0, top, c.width, c.height), colorNavBar)

	baseline := top + height/2 + glyphHeight/2 - 2
	c.text(navButtonWidth/2-glyphWidth/2, baseline, "<", colorText)
	c.text(c.width-navButtonWidth/2-glyphWidth/2, baseline, ">", colorText)

	if count <= 0 {
		return
	}
	spacing := 14
	x0 := (c.width - (count-1)*spacing) / 2
	y := top + height/2
	for i := 0; i < count; i++ {
		col := colorDim
		radius := 2
		if i == index {
			col = colorAccent
			radius = 3
		}
		c.dot(x0+i*spacing, y, radius, col)
	}
}
