package views

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/sunwatch/sunwatch/pkg/lunar"
	"github.com/sunwatch/sunwatch/pkg/solar"
	"github.com/sunwatch/sunwatch/pkg/view"
	"github.com/sunwatch/sunwatch/pkg/weather"
)

var testLayout = Layout{Width: 480, Height: 320, NavBarHeight: 40}

type fakeWeather struct {
	snap weather.Snapshot
	aqi  *weather.AirQuality
	at   time.Time
}

func (f *fakeWeather) Snapshot(ctx context.Context) (weather.Snapshot, error) {
	return f.snap, nil
}

func (f *fakeWeather) AirQuality(ctx context.Context) (*weather.AirQuality, time.Time, error) {
	return f.aqi, f.at, nil
}

type fakeSun struct {
	times solar.Times
	err   error
}

func (f *fakeSun) Today() (solar.Times, error) { return f.times, f.err }

func (f *fakeSun) NextEvent() (string, time.Time, error) {
	if f.err != nil {
		return "", time.Time{}, f.err
	}
	return solar.EventSunset, f.times.Sunset, nil
}

func (f *fakeSun) DayLengthChange() (time.Duration, error) {
	return 2 * time.Minute, f.err
}

func (f *fakeSun) Position(at time.Time) solar.Position {
	return solar.ComputePosition(at, 40.7128, -74.0060)
}

type fakeSky struct{}

func (f *fakeSky) CurrentPhase() lunar.Phase {
	return lunar.PhaseAt(time.Date(2026, 1, 3, 12, 0, 0, 0, time.UTC))
}

func (f *fakeSky) YearData() (lunar.YearData, error) {
	return lunar.ComputeYearData(2026, 40.7128), nil
}

func (f *fakeSky) Season() (string, error) { return "Summer", nil }

func populatedWeather() *fakeWeather {
	now := time.Now()
	return &fakeWeather{
		snap: weather.Snapshot{
			Current: &weather.CurrentWeather{
				Temperature:   72.5,
				FeelsLike:     70,
				Humidity:      45,
				Description:   "Clear Sky",
				WindSpeed:     5,
				WindDirection: "S",
			},
			Forecast: []weather.DailyForecast{
				{Date: "2026-08-27", HighTemp: 80, LowTemp: 65, RainChance: 10},
				{Date: "2026-08-28", HighTemp: 78, LowTemp: 64, RainChance: 40},
			},
			LastUpdated: now.Add(-3 * time.Minute),
		},
		aqi: &weather.AirQuality{AQI: 42, Category: "Good", PM25: 8},
		at:  now.Add(-10 * time.Minute),
	}
}

func workingSun() *fakeSun {
	base := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	return &fakeSun{
		times: solar.Times{
			Dawn:    base.Add(5 * time.Hour),
			Sunrise: base.Add(6 * time.Hour),
			Noon:    base.Add(12*time.Hour + 30*time.Minute),
			Sunset:  base.Add(19 * time.Hour),
			Dusk:    base.Add(20 * time.Hour),
		},
	}
}

// isBlank reports whether the frame is nothing but background and nav
// bar chrome, i.e. no content pixels were drawn.
func isBlank(f *view.Frame) bool {
	img := f.Image()
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y-testLayout.NavBarHeight; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y) != colorBackground {
				return false
			}
		}
	}
	return true
}

func TestAllViewsRender(t *testing.T) {
	all := Build(testLayout, populatedWeather(), workingSun(), &fakeSky{})

	if len(all) != 8 {
		t.Fatalf("Build returned %d views, want 8", len(all))
	}

	seen := make(map[string]bool)
	for _, v := range all {
		t.Run(v.Name(), func(t *testing.T) {
			if seen[v.Name()] {
				t.Fatalf("duplicate view name %q", v.Name())
			}
			seen[v.Name()] = true

			if v.Interval() <= 0 {
				t.Errorf("interval = %v, want positive", v.Interval())
			}

			frame, err := v.Render(context.Background())
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got := frame.Bounds(); got.Dx() != 480 || got.Dy() != 320 {
				t.Errorf("bounds = %v, want 480x320", got)
			}
			if frame.View() != v.Name() {
				t.Errorf("frame view = %q, want %q", frame.View(), v.Name())
			}
			if isBlank(frame) {
				t.Error("frame has no content pixels")
			}
		})
	}
}

func TestClockViewRefreshesEverySecond(t *testing.T) {
	clock := NewClockView(testLayout, workingSun())
	if clock.Interval() != time.Second {
		t.Errorf("interval = %v, want 1s", clock.Interval())
	}
}

func TestWeatherViewPlaceholderWithoutData(t *testing.T) {
	empty := &fakeWeather{}
	v := NewWeatherView(testLayout, empty)
	v.total = 8

	frame, err := v.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if isBlank(frame) {
		t.Error("placeholder frame has no content")
	}
}

func TestAirQualityViewPlaceholderWithoutData(t *testing.T) {
	empty := &fakeWeather{}
	v := NewAirQualityView(testLayout, empty)
	v.total = 8

	frame, err := v.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if isBlank(frame) {
		t.Error("placeholder frame has no content")
	}
}

func TestSunViewPolarFallback(t *testing.T) {
	broken := &fakeSun{err: solar.ErrPolarDay}
	v := NewSunView(testLayout, broken)
	v.total = 8

	frame, err := v.Render(context.Background())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if isBlank(frame) {
		t.Error("fallback frame has no content")
	}
}

func TestSunPathViewTracksTimeOfDay(t *testing.T) {
	render := func(at time.Time) *view.Frame {
		v := NewSunPathView(testLayout, workingSun())
		v.total = 8
		v.now = func() time.Time { return at }
		frame, err := v.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return frame
	}

	noon := render(time.Date(2030, 6, 21, 12, 0, 0, 0, time.UTC))
	midnight := render(time.Date(2030, 6, 21, 0, 0, 0, 0, time.UTC))

	if isBlank(noon) {
		t.Fatal("sun path frame has no content pixels")
	}
	if bytes.Equal(noon.Image().Pix, midnight.Image().Pix) {
		t.Error("frames at noon and midnight are identical; current marker not moving")
	}
}

func TestAnalemmaViewHighlightAtYearEnd(t *testing.T) {
	render := func(at time.Time) *view.Frame {
		v := NewAnalemmaView(testLayout, &fakeSky{})
		v.total = 8
		v.now = func() time.Time { return at }
		frame, err := v.Render(context.Background())
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		return frame
	}

	// December 24 is year day 358, the final weekly sample; December 31
	// (year day 365) falls past the table and must highlight the same
	// sample rather than none.
	lastSample := render(time.Date(2026, 12, 24, 12, 0, 0, 0, time.UTC))
	yearEnd := render(time.Date(2026, 12, 31, 12, 0, 0, 0, time.UTC))
	if !bytes.Equal(lastSample.Image().Pix, yearEnd.Image().Pix) {
		t.Error("year-end frame differs from final-sample frame; highlight lost past week 51")
	}

	midYear := render(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	if bytes.Equal(lastSample.Image().Pix, midYear.Image().Pix) {
		t.Error("highlight does not move between mid-year and year-end")
	}
}

func TestNavBarPositions(t *testing.T) {
	all := Build(testLayout, populatedWeather(), workingSun(), &fakeSky{})

	// Each view renders a distinct nav bar (its own dot highlighted), so
	// consecutive frames must differ in the nav strip.
	frames := make([]*view.Frame, len(all))
	for i, v := range all {
		frame, err := v.Render(context.Background())
		if err != nil {
			t.Fatalf("Render %s failed: %v", v.Name(), err)
		}
		frames[i] = frame
	}

	navTop := testLayout.Height - testLayout.NavBarHeight
	same := true
	first := frames[0].Image()
	second := frames[1].Image()
	for y := navTop; y < testLayout.Height && same; y++ {
		for x := 0; x < testLayout.Width; x++ {
			if first.RGBAAt(x, y) != second.RGBAAt(x, y) {
				same = false
				break
			}
		}
	}
	if same {
		t.Error("nav bar identical across views; position dot not moving")
	}
}
