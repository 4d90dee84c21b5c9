package weather

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Provider maintains the weather and air quality snapshots, refreshing
// them from the upstream API at configured intervals.
type Provider struct {
	client       *Client
	refreshEvery time.Duration
	aqiEvery     time.Duration
	logger       zerolog.Logger

	// now is injectable for tests.
	now func() time.Time

	// sf collapses concurrent refresh attempts into one upstream cycle.
	sf singleflight.Group

	// mu guards the committed snapshots only. It is never held across
	// network I/O: fetches run first, results are committed after.
	mu          sync.Mutex
	current     *CurrentWeather
	forecast    []DailyForecast
	lastUpdated time.Time
	aqi         *AirQuality
	aqiUpdated  time.Time
}

// NewProvider creates a provider over a client with the given refresh
// intervals.
func NewProvider(client *Client, refreshEvery, aqiEvery time.Duration) *Provider {
	return &Provider{
		client:       client,
		refreshEvery: refreshEvery,
		aqiEvery:     aqiEvery,
		logger:       log.With().Str("component", "weather-provider").Logger(),
		now:          time.Now,
	}
}

// Snapshot returns the latest weather snapshot, refreshing it first when
// stale. A failed refresh is reported through the error but the returned
// snapshot is always the last known good one, untouched by the failure.
func (p *Provider) Snapshot(ctx context.Context) (Snapshot, error) {
	var refreshErr error
	if p.stale() {
		_, refreshErr, _ = p.sf.Do("weather", func() (any, error) {
			if !p.stale() {
				return nil, nil
			}
			return nil, p.refresh(ctx)
		})
		if refreshErr != nil {
			p.logger.Warn().
				Err(refreshErr).
				Dur("age", p.snapshot().Age(p.now())).
				Msg("Weather refresh failed, serving prior snapshot")
		}
	}

	snap := p.snapshot()
	snapshotAge.Set(snap.Age(p.now()).Seconds())
	return snap, refreshErr
}

// AirQuality returns the latest air quality value and its fetch time,
// refreshing first when stale. Prior data survives a failed refresh.
func (p *Provider) AirQuality(ctx context.Context) (*AirQuality, time.Time, error) {
	var refreshErr error
	if p.aqiStale() {
		_, refreshErr, _ = p.sf.Do("aqi", func() (any, error) {
			if !p.aqiStale() {
				return nil, nil
			}
			aqi, err := p.client.FetchAirQuality(ctx)
			if err != nil {
				return nil, err
			}
			p.mu.Lock()
			p.aqi = aqi
			p.aqiUpdated = p.now()
			p.mu.Unlock()
			return nil, nil
		})
		if refreshErr != nil {
			p.logger.Warn().Err(refreshErr).Msg("Air quality refresh failed, serving prior value")
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aqi, p.aqiUpdated, refreshErr
}

// refresh performs the dual fetch and commits atomically.
//
// Both fetches run concurrently with no lock held. Each result lands in
// a local first; only when both succeed are current, forecast, and
// lastUpdated assigned together in one critical section. Any failure
// leaves the prior snapshot completely unchanged.
func (p *Provider) refresh(ctx context.Context) error {
	var (
		current  *CurrentWeather
		forecast []DailyForecast
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		current, err = p.client.FetchCurrent(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		forecast, err = p.client.FetchForecast(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	p.mu.Lock()
	p.current = current
	p.forecast = forecast
	p.lastUpdated = p.now()
	p.mu.Unlock()

	p.logger.Debug().
		Int("forecast_days", len(forecast)).
		Msg("Weather snapshot updated")
	return nil
}

func (p *Provider) snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Snapshot{
		Current:     p.current,
		Forecast:    p.forecast,
		LastUpdated: p.lastUpdated,
	}
}

func (p *Provider) stale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdated.IsZero() || p.now().Sub(p.lastUpdated) >= p.refreshEvery
}

func (p *Provider) aqiStale() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.aqiUpdated.IsZero() || p.now().Sub(p.aqiUpdated) >= p.aqiEvery
}
