package lunar

import (
	"math"
	"time"
)

// AnalemmaPoint is one sampled point of the year's analemma figure.
type AnalemmaPoint struct {
	// YearDay is the sampled day of year (1-based).
	YearDay int

	// EquationOfTime is the sundial offset in minutes; positive means
	// the sundial runs ahead of clock time.
	EquationOfTime float64

	// Declination is the sun's declination in degrees.
	Declination float64

	// NoonElevation is the sun's elevation above the horizon at solar
	// noon, in degrees, for the latitude the table was built for.
	NoonElevation float64
}

// Seasons holds the approximate season boundaries for one year.
type Seasons struct {
	SpringEquinox  time.Time
	SummerSolstice time.Time
	FallEquinox    time.Time
	WinterSolstice time.Time
}

// YearData is the expensive once-per-year table: weekly analemma samples
// plus the season boundaries.
type YearData struct {
	Year     int
	Latitude float64
	Analemma []AnalemmaPoint
	Seasons  Seasons
}

// analemmaSamples is the number of weekly points in the table.
const analemmaSamples = 52

// ComputeYearData builds the analemma table and season boundaries for a
// year at a latitude.
func ComputeYearData(year int, lat float64) YearData {
	points := make([]AnalemmaPoint, 0, analemmaSamples)
	for week := 0; week < analemmaSamples; week++ {
		yearDay := week*7 + 1
		eot := equationOfTime(yearDay)
		dec := solarDeclination(yearDay)
		points = append(points, AnalemmaPoint{
			YearDay:        yearDay,
			EquationOfTime: eot,
			Declination:    dec,
			NoonElevation:  noonElevation(lat, dec),
		})
	}

	return YearData{
		Year:     year,
		Latitude: lat,
		Analemma: points,
		Seasons: Seasons{
			SpringEquinox:  time.Date(year, 3, 20, 0, 0, 0, 0, time.UTC),
			SummerSolstice: time.Date(year, 6, 21, 0, 0, 0, 0, time.UTC),
			FallEquinox:    time.Date(year, 9, 22, 0, 0, 0, 0, time.UTC),
			WinterSolstice: time.Date(year, 12, 21, 0, 0, 0, 0, time.UTC),
		},
	}
}

// equationOfTime approximates the sundial offset in minutes for a day of
// year.
func equationOfTime(yearDay int) float64 {
	b := 2.0 * math.Pi * float64(yearDay-81) / 364.0
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// solarDeclination approximates the sun's declination in degrees for a
// day of year.
func solarDeclination(yearDay int) float64 {
	return -23.44 * math.Cos(2.0*math.Pi*float64(yearDay+10)/365.25)
}

// noonElevation is the sun's solar-noon elevation for a latitude and
// declination, clamped to the horizon.
func noonElevation(lat, declination float64) float64 {
	elevation := 90.0 - math.Abs(lat-declination)
	if elevation < 0 {
		return 0
	}
	return elevation
}

// CurrentSeason returns the season name for an instant, using the
// year's boundaries (northern hemisphere naming).
func (s Seasons) CurrentSeason(at time.Time) string {
	switch {
	case at.Before(s.SpringEquinox):
		return "Winter"
	case at.Before(s.SummerSolstice):
		return "Spring"
	case at.Before(s.FallEquinox):
		return "Summer"
	case at.Before(s.WinterSolstice):
		return "Fall"
	default:
		return "Winter"
	}
}
