package weather

import "time"

// CurrentWeather holds parsed current conditions.
type CurrentWeather struct {
	// Temperature and FeelsLike follow the configured units
	// (imperial: Fahrenheit, metric: Celsius).
	Temperature float64
	FeelsLike   float64

	// Humidity is a percentage.
	Humidity int

	// Description is the human-readable condition ("Clear Sky").
	// Defaults to "Unknown" when the API omits it.
	Description string

	// WindSpeed follows the configured units (mph or m/s).
	WindSpeed float64

	// WindDirection is a 16-point compass direction (N, NNE, ...).
	WindDirection string
}

// DailyForecast is one day's aggregated forecast.
type DailyForecast struct {
	// Date in YYYY-MM-DD form.
	Date string

	HighTemp float64
	LowTemp  float64

	// RainChance is the day's maximum precipitation probability, 0-100.
	RainChance int
}

// AirQuality holds parsed pollution data with the derived US EPA AQI.
type AirQuality struct {
	AQI      int
	Category string

	PM25 float64
	PM10 float64
	O3   float64
	NO2  float64
	SO2  float64
	CO   float64
}

// Snapshot is the dual-field-atomic weather cache state. Current,
// Forecast, and LastUpdated always originate from the same fetch cycle.
type Snapshot struct {
	Current     *CurrentWeather
	Forecast    []DailyForecast
	LastUpdated time.Time
}

// Age returns how old the snapshot is, or zero if nothing has been
// fetched yet.
func (s Snapshot) Age(now time.Time) time.Duration {
	if s.LastUpdated.IsZero() {
		return 0
	}
	return now.Sub(s.LastUpdated)
}
