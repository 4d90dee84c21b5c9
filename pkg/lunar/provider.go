package lunar

import (
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sunwatch/sunwatch/pkg/cache"
)

// Provider serves the yearly sun-geometry table from a single-slot
// cache, so the table is rebuilt only when the year rolls over.
type Provider struct {
	lat    float64
	cache  *cache.Yearly[YearData]
	logger zerolog.Logger

	// now is injectable for tests.
	now func() time.Time
}

// NewProvider creates a provider for a fixed latitude.
func NewProvider(lat float64) *Provider {
	return &Provider{
		lat:    lat,
		cache:  cache.NewYearly[YearData]("yeardata"),
		logger: log.With().Str("component", "lunar-provider").Logger(),
		now:    time.Now,
	}
}

// YearData returns the table for the current year, computing it on first
// request and after a year rollover.
func (p *Provider) YearData() (YearData, error) {
	year := p.now().Year()
	return p.cache.GetOrCompute(year, func() (YearData, error) {
		data := ComputeYearData(year, p.lat)
		p.logger.Info().
			Int("year", year).
			Int("analemma_points", len(data.Analemma)).
			Msg("Computed yearly sun-geometry table")
		return data, nil
	})
}

// CurrentPhase returns the moon phase for the current instant.
func (p *Provider) CurrentPhase() Phase {
	return PhaseAt(p.now())
}

// Season returns the current season name.
func (p *Provider) Season() (string, error) {
	data, err := p.YearData()
	if err != nil {
		return "", err
	}
	return data.Seasons.CurrentSeason(p.now()), nil
}
