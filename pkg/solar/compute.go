package solar

import (
	"errors"
	"math"
	"time"
)

// Zenith angles in degrees for the supported sun events.
const (
	// zenithOfficial is the standard sunrise/sunset zenith, accounting
	// for atmospheric refraction and the solar disc radius.
	zenithOfficial = 90.833

	// zenithCivil marks civil dawn and dusk.
	zenithCivil = 96.0
)

// ErrPolarDay is returned when the sun does not cross the requested
// zenith on the given date (polar day or polar night).
var ErrPolarDay = errors.New("sun does not cross horizon on this date")

// Times holds the computed sun events for one day, in chronological
// order, expressed in the provided location's zone.
type Times struct {
	Dawn    time.Time
	Sunrise time.Time
	Noon    time.Time
	Sunset  time.Time
	Dusk    time.Time
}

// DayLength returns the duration between sunrise and sunset.
func (t Times) DayLength() time.Duration {
	return t.Sunset.Sub(t.Sunrise)
}

// GoldenHour is a pair of intervals around sunrise and sunset.
type GoldenHour struct {
	MorningStart time.Time
	MorningEnd   time.Time
	EveningStart time.Time
	EveningEnd   time.Time
}

// goldenHourSpan is the nominal length of each golden hour interval.
const goldenHourSpan = 45 * time.Minute

// Golden returns the morning and evening golden hour intervals derived
// from sunrise and sunset.
func (t Times) Golden() GoldenHour {
	return GoldenHour{
		MorningStart: t.Sunrise,
		MorningEnd:   t.Sunrise.Add(goldenHourSpan),
		EveningStart: t.Sunset.Add(-goldenHourSpan),
		EveningEnd:   t.Sunset,
	}
}

// ComputeTimes calculates all sun events for the given day at the given
// coordinates. The returned times are in day's location.
func ComputeTimes(day time.Time, lat, lon float64) (Times, error) {
	loc := day.Location()

	sunrise, err := sunEvent(day, lat, lon, zenithOfficial, true, loc)
	if err != nil {
		return Times{}, err
	}
	sunset, err := sunEvent(day, lat, lon, zenithOfficial, false, loc)
	if err != nil {
		return Times{}, err
	}
	dawn, err := sunEvent(day, lat, lon, zenithCivil, true, loc)
	if err != nil {
		return Times{}, err
	}
	dusk, err := sunEvent(day, lat, lon, zenithCivil, false, loc)
	if err != nil {
		return Times{}, err
	}

	return Times{
		Dawn:    dawn,
		Sunrise: sunrise,
		Noon:    sunrise.Add(sunset.Sub(sunrise) / 2),
		Sunset:  sunset,
		Dusk:    dusk,
	}, nil
}

// sunEvent computes a single rising or setting event using the NOAA
// approximation (Almanac for Computers method).
func sunEvent(day time.Time, lat, lon, zenith float64, rising bool, loc *time.Location) (time.Time, error) {
	n := float64(day.YearDay())
	lngHour := lon / 15.0

	var t float64
	if rising {
		t = n + (6.0-lngHour)/24.0
	} else {
		t = n + (18.0-lngHour)/24.0
	}

	// Sun's mean anomaly, then true longitude.
	m := 0.9856*t - 3.289
	l := normalizeDeg(m + 1.916*math.Sin(deg2rad(m)) + 0.020*math.Sin(2*deg2rad(m)) + 282.634)

	// Right ascension, adjusted into the same quadrant as l.
	ra := normalizeDeg(rad2deg(math.Atan(0.91764 * math.Tan(deg2rad(l)))))
	lQuadrant := math.Floor(l/90.0) * 90.0
	raQuadrant := math.Floor(ra/90.0) * 90.0
	ra = (ra + (lQuadrant - raQuadrant)) / 15.0

	// Declination and local hour angle.
	sinDec := 0.39782 * math.Sin(deg2rad(l))
	cosDec := math.Cos(math.Asin(sinDec))
	cosH := (math.Cos(deg2rad(zenith)) - sinDec*math.Sin(deg2rad(lat))) / (cosDec * math.Cos(deg2rad(lat)))
	if cosH > 1 || cosH < -1 {
		return time.Time{}, ErrPolarDay
	}

	var h float64
	if rising {
		h = (360.0 - rad2deg(math.Acos(cosH))) / 15.0
	} else {
		h = rad2deg(math.Acos(cosH)) / 15.0
	}

	localT := h + ra - 0.06571*t - 6.622
	ut := normalizeHour(localT - lngHour)

	event := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC).
		Add(time.Duration(ut * float64(time.Hour))).
		In(loc)

	// The UT hour is only defined modulo 24, so far from the prime
	// meridian the event can land on the wrong local day. Clamp it back
	// into the requested day.
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, loc)
	if event.Before(dayStart) {
		event = event.Add(24 * time.Hour)
	} else if !event.Before(dayStart.Add(24 * time.Hour)) {
		event = event.Add(-24 * time.Hour)
	}
	return event, nil
}

func deg2rad(v float64) float64 { return v * math.Pi / 180.0 }

func rad2deg(v float64) float64 { return v * 180.0 / math.Pi }

func normalizeDeg(v float64) float64 {
	for v < 0 {
		v += 360
	}
	for v >= 360 {
		v -= 360
	}
	return v
}

func normalizeHour(v float64) float64 {
	for v < 0 {
		v += 24
	}
	for v >= 24 {
		v -= 24
	}
	return v
}
