package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// ClockView shows the time, date, and the next sun event. It refreshes
// every second so the seconds digits stay live.
type ClockView struct {
	base
	sun SunSource
}

// NewClockView creates the clock view.
func NewClockView(layout Layout, sun SunSource) *ClockView {
	return &ClockView{
		base: base{
			name:     "clock",
			interval: time.Second,
			layout:   layout,
			now:      time.Now,
		},
		sun: sun,
	}
}

// Render draws the clock frame.
func (v *ClockView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	now := v.now()
	h := v.contentHeight()

	c.textScaled(h/4, now.Format("15:04:05"), 5, colorText)
	c.textScaled(h/4+80, now.Format("Monday, January 2"), 2, colorDim)

	if event, at, err := v.sun.NextEvent(); err == nil {
		line := fmt.Sprintf("%s at %s", event, at.Format("15:04"))
		c.textCentered(h-20, line, colorAccent)
	}

	return v.frame(c), nil
}
