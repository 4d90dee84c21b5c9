package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// SunView shows today's sun event times and the golden hours.
type SunView struct {
	base
	sun SunSource
}

// NewSunView creates the sun times view.
func NewSunView(layout Layout, sun SunSource) *SunView {
	return &SunView{
		base: base{
			name:     "sun",
			interval: 5 * time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		sun: sun,
	}
}

// Render draws the sun times frame.
func (v *SunView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	times, err := v.sun.Today()
	if err != nil {
		c.textCentered(h/2, "sun times unavailable here today", colorDim)
		return v.frame(c), nil
	}

	c.textScaled(12, "Sun", 3, colorAccent)

	rows := []struct {
		label string
		at    time.Time
	}{
		{"Dawn", times.Dawn},
		{"Sunrise", times.Sunrise},
		{"Solar noon", times.Noon},
		{"Sunset", times.Sunset},
		{"Dusk", times.Dusk},
	}
	y := 80
	for _, row := range rows {
		c.textCentered(y, fmt.Sprintf("%-11s %s", row.label, row.at.Format("15:04")), colorText)
		y += 20
	}

	golden := times.Golden()
	y += 10
	c.textCentered(y, fmt.Sprintf("Golden hour  %s-%s  %s-%s",
		golden.MorningStart.Format("15:04"), golden.MorningEnd.Format("15:04"),
		golden.EveningStart.Format("15:04"), golden.EveningEnd.Format("15:04")), colorAccent)

	return v.frame(c), nil
}

// DayLengthView shows the day length and its day-over-day change.
type DayLengthView struct {
	base
	sun SunSource
}

// NewDayLengthView creates the day length view.
func NewDayLengthView(layout Layout, sun SunSource) *DayLengthView {
	return &DayLengthView{
		base: base{
			name:     "day length",
			interval: 10 * time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		sun: sun,
	}
}

// Render draws the day length frame.
func (v *DayLengthView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	times, err := v.sun.Today()
	if err != nil {
		c.textCentered(h/2, "day length unavailable here today", colorDim)
		return v.frame(c), nil
	}

	length := times.DayLength()
	hours := int(length.Hours())
	minutes := int(length.Minutes()) % 60

	c.textScaled(16, "Daylight", 3, colorAccent)
	c.textScaled(70, fmt.Sprintf("%dh %02dm", hours, minutes), 5, colorText)

	if change, err := v.sun.DayLengthChange(); err == nil {
		col := colorGood
		sign := "+"
		if change < 0 {
			col = colorWarn
			sign = "-"
			change = -change
		}
		line := fmt.Sprintf("%s%dm %02ds vs yesterday",
			sign, int(change.Minutes()), int(change.Seconds())%60)
		c.textCentered(180, line, col)
	}

	// Daylight progress bar for the current moment.
	now := v.now()
	if now.After(times.Sunrise) && now.Before(times.Sunset) {
		barTop := h - 40
		c.hline(40, v.layout.Width-40, barTop, colorDim)
		progress := float64(now.Sub(times.Sunrise)) / float64(length)
		x := 40 + int(progress*float64(v.layout.Width-80))
		c.dot(x, barTop, 4, colorAccent)
	}

	return v.frame(c), nil
}
