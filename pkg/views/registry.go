package views

import "github.com/sunwatch/sunwatch/pkg/view"

// positioned is implemented by every view through its embedded base.
type positioned interface {
	setPosition(pos, total int)
}

// Build assembles the full view rotation in its fixed order and stamps
// each view with its position so the nav bar dots line up.
func Build(layout Layout, weatherSrc WeatherSource, sun SunSource, sky SkySource) []view.View {
	all := []view.View{
		NewClockView(layout, sun),
		NewWeatherView(layout, weatherSrc),
		NewAirQualityView(layout, weatherSrc),
		NewSunView(layout, sun),
		NewSunPathView(layout, sun),
		NewDayLengthView(layout, sun),
		NewMoonView(layout, sky),
		NewAnalemmaView(layout, sky),
	}

	for i, v := range all {
		if p, ok := v.(positioned); ok {
			p.setPosition(i, len(all))
		}
	}
	return all
}
