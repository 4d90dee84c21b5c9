package solar

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sunwatch/sunwatch/pkg/cache"
)

// Provider serves per-day sun times from a daily cache so the underlying
// computation runs at most once per calendar day.
type Provider struct {
	lat, lon float64
	cache    *cache.Daily[Times]
	logger   zerolog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewProvider creates a provider for a fixed location.
func NewProvider(lat, lon float64) *Provider {
	return &Provider{
		lat:    lat,
		lon:    lon,
		cache:  cache.NewDaily[Times]("solar"),
		logger: log.With().Str("component", "solar-provider").Logger(),
		now:    time.Now,
	}
}

// TimesFor returns the sun events for the given day, computing and
// caching them on first request.
func (p *Provider) TimesFor(day time.Time) (Times, error) {
	return p.cache.GetOrCompute(day, func() (Times, error) {
		times, err := ComputeTimes(day, p.lat, p.lon)
		if err != nil {
			return Times{}, err
		}
		p.logger.Debug().
			Str("date", day.Format("2006-01-02")).
			Time("sunrise", times.Sunrise).
			Time("sunset", times.Sunset).
			Msg("Computed sun times")
		return times, nil
	})
}

// Today returns the sun events for the current day.
func (p *Provider) Today() (Times, error) {
	return p.TimesFor(p.now())
}

// DayLengthChange returns today's day length minus yesterday's, so a
// positive value means the days are getting longer. Yesterday is
// computed directly: the daily cache prunes past dates on every write,
// so storing it there would never produce a hit.
func (p *Provider) DayLengthChange() (time.Duration, error) {
	now := p.now()
	today, err := p.TimesFor(now)
	if err != nil {
		return 0, err
	}
	yesterday, err := ComputeTimes(now.AddDate(0, 0, -1), p.lat, p.lon)
	if err != nil {
		return 0, err
	}
	return today.DayLength() - yesterday.DayLength(), nil
}

// Position returns the sun's elevation and azimuth at the given
// instant. The position moves continuously, so it is computed fresh on
// every call rather than cached.
func (p *Provider) Position(at time.Time) Position {
	return ComputePosition(at, p.lat, p.lon)
}

// CurrentPosition returns the sun's position right now.
func (p *Provider) CurrentPosition() Position {
	return p.Position(p.now())
}

// Event names returned by NextEvent.
const (
	EventDawn    = "dawn"
	EventSunrise = "sunrise"
	EventNoon    = "solar noon"
	EventSunset  = "sunset"
	EventDusk    = "dusk"
)

// NextEvent returns the name and time of the next sun event at or after
// now, rolling over to tomorrow's dawn once today's dusk has passed.
func (p *Provider) NextEvent() (string, time.Time, error) {
	now := p.now()
	today, err := p.TimesFor(now)
	if err != nil {
		return "", time.Time{}, err
	}

	events := []struct {
		name string
		at   time.Time
	}{
		{EventDawn, today.Dawn},
		{EventSunrise, today.Sunrise},
		{EventNoon, today.Noon},
		{EventSunset, today.Sunset},
		{EventDusk, today.Dusk},
	}
	for _, e := range events {
		if now.Before(e.at) {
			return e.name, e.at, nil
		}
	}

	tomorrow, err := p.TimesFor(now.AddDate(0, 0, 1))
	if err != nil {
		return "", time.Time{}, err
	}
	return EventDawn, tomorrow.Dawn, nil
}
