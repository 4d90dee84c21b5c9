package solar

import (
	"math"
	"time"
)

// Position is the sun's apparent place in the sky: elevation above the
// horizon and azimuth measured clockwise from true north, in degrees.
// Elevation is negative while the sun is below the horizon, so a
// position exists around the clock and at any latitude.
type Position struct {
	Elevation float64
	Azimuth   float64
}

// ComputePosition calculates the sun's position at the given instant
// and coordinates, accurate to well under a degree.
func ComputePosition(at time.Time, lat, lon float64) Position {
	utc := at.UTC()
	clock := float64(utc.Hour()) + float64(utc.Minute())/60 + float64(utc.Second())/3600
	d := float64(utc.YearDay()) + clock/24

	// Local hour angle from true solar time: clock time corrected by
	// the longitude offset and the equation of time.
	solarTime := clock + lon/15 + equationOfTimeAt(d)/60
	hourAngle := (solarTime - 12) * 15
	for hourAngle <= -180 {
		hourAngle += 360
	}
	for hourAngle > 180 {
		hourAngle -= 360
	}

	phi := deg2rad(lat)
	delta := deg2rad(declinationAt(d))
	h := deg2rad(hourAngle)

	sinEl := math.Sin(phi)*math.Sin(delta) + math.Cos(phi)*math.Cos(delta)*math.Cos(h)
	el := math.Asin(sinEl)

	// The acos form is symmetric about the meridian; the hour angle
	// sign picks the east or west half.
	ratio := (math.Sin(delta) - sinEl*math.Sin(phi)) / (math.Cos(el) * math.Cos(phi))
	ratio = math.Max(-1, math.Min(1, ratio))
	az := rad2deg(math.Acos(ratio))
	if hourAngle > 0 {
		az = 360 - az
	}

	return Position{Elevation: rad2deg(el), Azimuth: az}
}

// equationOfTimeAt returns the equation of time in minutes for the
// given fractional day of year.
func equationOfTimeAt(d float64) float64 {
	b := 2 * math.Pi * (d - 81) / 364
	return 9.87*math.Sin(2*b) - 7.53*math.Cos(b) - 1.5*math.Sin(b)
}

// declinationAt returns the solar declination in degrees.
func declinationAt(d float64) float64 {
	return -23.44 * math.Cos(2*math.Pi*(d+10)/365.25)
}
