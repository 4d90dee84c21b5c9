package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// WeatherView shows current conditions and the daily forecast. The
// snapshot it renders may be stale; the age line makes that visible
// instead of hiding it.
type WeatherView struct {
	base
	source WeatherSource
}

// NewWeatherView creates the weather view.
func NewWeatherView(layout Layout, source WeatherSource) *WeatherView {
	return &WeatherView{
		base: base{
			name:     "weather",
			interval: time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		source: source,
	}
}

// Render draws the weather frame. A failed refresh still renders the
// prior snapshot; only a completely empty snapshot shows a placeholder.
func (v *WeatherView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	snap, _ := v.source.Snapshot(ctx)
	if snap.Current == nil {
		c.textCentered(h/2, "waiting for weather data", colorDim)
		return v.frame(c), nil
	}

	cur := snap.Current
	c.textScaled(16, fmt.Sprintf("%.0f°", cur.Temperature), 5, colorText)
	c.textScaled(96, cur.Description, 2, colorDim)

	y := 140
	lines := []string{
		fmt.Sprintf("Feels like %.0f°   Humidity %d%%", cur.FeelsLike, cur.Humidity),
		fmt.Sprintf("Wind %.0f %s", cur.WindSpeed, cur.WindDirection),
	}
	for _, line := range lines {
		c.textCentered(y, line, colorText)
		y += 18
	}

	y += 8
	for i, day := range snap.Forecast {
		if i >= 4 {
			break
		}
		date, _ := time.Parse("2006-01-02", day.Date)
		row := fmt.Sprintf("%-3s  %3.0f° / %3.0f°  rain %d%%",
			date.Format("Mon"), day.HighTemp, day.LowTemp, day.RainChance)
		c.textCentered(y, row, colorDim)
		y += 16
	}

	if age := snap.Age(v.now()); age > 0 {
		c.textCentered(h-6, fmt.Sprintf("updated %s ago", formatAge(age)), colorDim)
	}

	return v.frame(c), nil
}

// formatAge renders a duration coarsely for the status line.
func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return fmt.Sprintf("%ds", int(age.Seconds()))
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	default:
		return fmt.Sprintf("%dh%dm", int(age.Hours()), int(age.Minutes())%60)
	}
}
