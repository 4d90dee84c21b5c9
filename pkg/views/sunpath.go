package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// SunPathView charts the sun's elevation across today, marks the
// current position, and shows the elevation/azimuth readout.
type SunPathView struct {
	base
	sun SunSource
}

// NewSunPathView creates the sun path view.
func NewSunPathView(layout Layout, sun SunSource) *SunPathView {
	return &SunPathView{
		base: base{
			name:     "sun path",
			interval: 5 * time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		sun: sun,
	}
}

// Render draws the sun path frame.
func (v *SunPathView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	c.textScaled(8, "Sun Path", 2, colorAccent)

	// Chart area: midnight to midnight horizontally, elevation -90..90
	// vertically with the horizon through the middle.
	const margin = 40
	top := 48
	bottom := h - 56
	horizon := (top + bottom) / 2
	span := v.layout.Width - 2*margin

	c.hline(margin, v.layout.Width-margin, horizon, colorDim)

	now := v.now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	plotY := func(elevation float64) int {
		return horizon - int(elevation/90*float64(horizon-top))
	}

	for m := 0; m < 24*60; m += 15 {
		pos := v.sun.Position(dayStart.Add(time.Duration(m) * time.Minute))
		col := colorDim
		if pos.Elevation > 0 {
			col = colorAccent
		}
		c.dot(margin+m*span/(24*60), plotY(pos.Elevation), 1, col)
	}

	pos := v.sun.Position(now)
	mx := margin + int(now.Sub(dayStart).Minutes())*span/(24*60)
	c.dot(mx, plotY(pos.Elevation), 4, colorText)

	c.textCentered(h-36, fmt.Sprintf("El %+.0f°  Az %.0f°", pos.Elevation, pos.Azimuth), colorText)
	if name, at, err := v.sun.NextEvent(); err == nil {
		c.textCentered(h-16, fmt.Sprintf("%s at %s", name, at.Format("15:04")), colorDim)
	}

	return v.frame(c), nil
}
