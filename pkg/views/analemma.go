package views

import (
	"context"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// AnalemmaView plots the year's analemma: equation of time against
// solar declination, one point per week.
type AnalemmaView struct {
	base
	sky SkySource
}

// NewAnalemmaView creates the analemma view.
func NewAnalemmaView(layout Layout, sky SkySource) *AnalemmaView {
	return &AnalemmaView{
		base: base{
			name:     "analemma",
			interval: time.Hour,
			layout:   layout,
			now:      time.Now,
		},
		sky: sky,
	}
}

// Render draws the analemma chart.
func (v *AnalemmaView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	data, err := v.sky.YearData()
	if err != nil {
		c.textCentered(h/2, "analemma unavailable", colorDim)
		return v.frame(c), nil
	}

	c.textScaled(8, "Analemma", 2, colorAccent)

	// Chart area with fixed axes: EoT spans ±17 minutes horizontally,
	// declination ±24 degrees vertically.
	const (
		margin = 40
		eotMax = 17.0
		decMax = 24.0
	)
	top := 44
	bottom := h - 16
	cx := v.layout.Width / 2
	cy := (top + bottom) / 2

	c.hline(margin, v.layout.Width-margin, cy, colorDim)
	for y := top; y <= bottom; y++ {
		c.img.SetRGBA(cx, y, colorDim)
	}

	// The last days of a year land past the final weekly sample; keep
	// the highlight on that sample instead of dropping it.
	currentWeek := (v.now().YearDay() - 1) / 7
	if currentWeek >= len(data.Analemma) {
		currentWeek = len(data.Analemma) - 1
	}
	for i, pt := range data.Analemma {
		x := cx + int(pt.EquationOfTime/eotMax*float64(cx-margin))
		y := cy - int(pt.Declination/decMax*float64((bottom-top)/2))
		if i == currentWeek {
			c.dot(x, y, 3, colorAccent)
		} else {
			c.dot(x, y, 1, colorText)
		}
	}

	return v.frame(c), nil
}
