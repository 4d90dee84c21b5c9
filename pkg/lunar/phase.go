package lunar

import (
	"math"
	"time"
)

// synodicMonth is the mean length of a lunation in days.
const synodicMonth = 29.530588853

// newMoonEpoch is a reference new moon (2000-01-06 18:14 UTC).
var newMoonEpoch = time.Date(2000, 1, 6, 18, 14, 0, 0, time.UTC)

// Phase holds the moon state for a single instant.
type Phase struct {
	// Fraction is the position in the lunation cycle, 0 at new moon,
	// 0.5 at full moon, approaching 1 before the next new moon.
	Fraction float64

	// Illumination is the lit percentage of the disc, 0-100.
	Illumination float64

	// Name is the common phase name ("Waxing Gibbous").
	Name string

	// Age is the days elapsed since the last new moon.
	Age float64
}

// PhaseAt computes the moon phase for the given instant.
func PhaseAt(at time.Time) Phase {
	days := at.Sub(newMoonEpoch).Hours() / 24.0
	fraction := math.Mod(days/synodicMonth, 1.0)
	if fraction < 0 {
		fraction += 1.0
	}

	return Phase{
		Fraction:     fraction,
		Illumination: (1.0 - math.Cos(2.0*math.Pi*fraction)) / 2.0 * 100.0,
		Name:         phaseName(fraction),
		Age:          fraction * synodicMonth,
	}
}

// phaseName maps a cycle fraction to its common name. The principal
// phases get a narrow band around their exact fraction.
func phaseName(fraction float64) string {
	switch {
	case fraction < 0.03:
		return "New Moon"
	case fraction < 0.22:
		return "Waxing Crescent"
	case fraction < 0.28:
		return "First Quarter"
	case fraction < 0.47:
		return "Waxing Gibbous"
	case fraction < 0.53:
		return "Full Moon"
	case fraction < 0.72:
		return "Waning Gibbous"
	case fraction < 0.78:
		return "Last Quarter"
	case fraction < 0.97:
		return "Waning Crescent"
	default:
		return "New Moon"
	}
}

// NextFullMoon returns the approximate instant of the next full moon at
// or after the given time.
func NextFullMoon(at time.Time) time.Time {
	days := at.Sub(newMoonEpoch).Hours() / 24.0
	cycles := days / synodicMonth
	whole := math.Floor(cycles)

	full := whole + 0.5
	if cycles > full {
		full += 1.0
	}
	offset := time.Duration(full * synodicMonth * 24 * float64(time.Hour))
	return newMoonEpoch.Add(offset)
}
