package views

import (
	"context"
	"time"

	"github.com/sunwatch/sunwatch/pkg/lunar"
	"github.com/sunwatch/sunwatch/pkg/solar"
	"github.com/sunwatch/sunwatch/pkg/view"
	"github.com/sunwatch/sunwatch/pkg/weather"
)

// Layout describes the screen geometry views render into.
type Layout struct {
	Width        int
	Height       int
	NavBarHeight int
}

// WeatherSource serves weather and air quality snapshots.
type WeatherSource interface {
	Snapshot(ctx context.Context) (weather.Snapshot, error)
	AirQuality(ctx context.Context) (*weather.AirQuality, time.Time, error)
}

// SunSource serves daily sun event times and the live sun position.
type SunSource interface {
	Today() (solar.Times, error)
	NextEvent() (string, time.Time, error)
	DayLengthChange() (time.Duration, error)
	Position(at time.Time) solar.Position
}

// SkySource serves moon phase and yearly sun-geometry data.
type SkySource interface {
	CurrentPhase() lunar.Phase
	YearData() (lunar.YearData, error)
	Season() (string, error)
}

// base carries what every view shares: identity, cadence, geometry, and
// its fixed position in the rotation for the nav bar dots.
type base struct {
	name     string
	interval time.Duration
	layout   Layout
	pos      int
	total    int

	// now is injectable for tests.
	now func() time.Time
}

func (b *base) Name() string            { return b.name }
func (b *base) Interval() time.Duration { return b.interval }

func (b *base) setPosition(pos, total int) {
	b.pos = pos
	b.total = total
}

// begin creates the frame canvas with the nav bar already drawn.
func (b *base) begin() *canvas {
	c := newCanvas(b.layout.Width, b.layout.Height)
	drawNavBar(c, b.layout.NavBarHeight, b.pos, b.total)
	return c
}

// frame wraps the finished canvas.
func (b *base) frame(c *canvas) *view.Frame {
	return view.NewFrame(c.img, b.name, b.now())
}

// contentHeight is the drawable height above the nav bar.
func (b *base) contentHeight() int {
	return b.layout.Height - b.layout.NavBarHeight
}
