package weather

// compassDirections is the 16-point compass rose.
var compassDirections = []string{
	"N", "NNE", "NE", "ENE", "E", "ESE", "SE", "SSE",
	"S", "SSW", "SW", "WSW", "W", "WNW", "NW", "NNW",
}

// degreesToCompass converts wind degrees to a 16-point compass direction.
func degreesToCompass(degrees float64) string {
	idx := int((degrees+11.25)/22.5) % 16
	if idx < 0 {
		idx += 16
	}
	return compassDirections[idx]
}

// pm25Breakpoints are the US EPA AQI breakpoints for PM2.5
// (concentration low/high to index low/high).
var pm25Breakpoints = []struct {
	cLow, cHigh float64
	iLow, iHigh int
}{
	{0.0, 12.0, 0, 50},
	{12.1, 35.4, 51, 100},
	{35.5, 55.4, 101, 150},
	{55.5, 150.4, 151, 200},
	{150.5, 250.4, 201, 300},
	{250.5, 500.4, 301, 500},
}

// pm25ToAQI converts a PM2.5 concentration to the US EPA AQI.
func pm25ToAQI(pm25 float64) int {
	for _, bp := range pm25Breakpoints {
		if pm25 >= bp.cLow && pm25 <= bp.cHigh {
			ratio := float64(bp.iHigh-bp.iLow) / (bp.cHigh - bp.cLow)
			return int(ratio*(pm25-bp.cLow) + float64(bp.iLow))
		}
	}
	if pm25 > 500.4 {
		return 500
	}
	return 0
}

// aqiCategory maps an AQI value to its US EPA category name.
func aqiCategory(aqi int) string {
	switch {
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}
