package views

import (
	"context"
	"fmt"
	"image/color"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// AirQualityView shows the US EPA AQI with pollutant components.
type AirQualityView struct {
	base
	source WeatherSource
}

// NewAirQualityView creates the air quality view.
func NewAirQualityView(layout Layout, source WeatherSource) *AirQualityView {
	return &AirQualityView{
		base: base{
			name:     "air quality",
			interval: 5 * time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		source: source,
	}
}

// Render draws the air quality frame.
func (v *AirQualityView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()
	h := v.contentHeight()

	aqi, fetched, _ := v.source.AirQuality(ctx)
	if aqi == nil {
		c.textCentered(h/2, "waiting for air quality data", colorDim)
		return v.frame(c), nil
	}

	c.textScaled(16, fmt.Sprintf("AQI %d", aqi.AQI), 5, aqiColor(aqi.AQI))
	c.textScaled(96, aqi.Category, 2, colorText)

	y := 150
	rows := []string{
		fmt.Sprintf("PM2.5 %5.1f   PM10 %5.1f", aqi.PM25, aqi.PM10),
		fmt.Sprintf("O3    %5.1f   NO2  %5.1f", aqi.O3, aqi.NO2),
		fmt.Sprintf("SO2   %5.1f   CO   %5.1f", aqi.SO2, aqi.CO),
	}
	for _, row := range rows {
		c.textCentered(y, row, colorDim)
		y += 18
	}

	if !fetched.IsZero() {
		c.textCentered(h-6, fmt.Sprintf("updated %s ago", formatAge(v.now().Sub(fetched))), colorDim)
	}

	return v.frame(c), nil
}

// aqiColor follows the EPA severity bands.
func aqiColor(aqi int) color.RGBA {
	switch {
	case aqi <= 50:
		return colorGood
	case aqi <= 100:
		return colorAccent
	default:
		return colorWarn
	}
}
