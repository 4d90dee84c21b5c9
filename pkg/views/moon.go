package views

import (
	"context"
	"fmt"
	"time"

	"github.com/sunwatch/sunwatch/pkg/view"
)

// MoonView shows the moon phase, illumination, and the current season.
type MoonView struct {
	base
	sky SkySource
}

// NewMoonView creates the moon view.
func NewMoonView(layout Layout, sky SkySource) *MoonView {
	return &MoonView{
		base: base{
			name:     "moon",
			interval: 30 * time.Minute,
			layout:   layout,
			now:      time.Now,
		},
		sky: sky,
	}
}

// Render draws the moon frame.
func (v *MoonView) Render(ctx context.Context) (*view.Frame, error) {
	c := v.begin()

	phase := v.sky.CurrentPhase()

	c.textScaled(16, phase.Name, 3, colorText)
	c.textScaled(70, fmt.Sprintf("%.0f%% lit", phase.Illumination), 4, colorAccent)
	c.textCentered(160, fmt.Sprintf("%.1f days into the cycle", phase.Age), colorDim)

	if season, err := v.sky.Season(); err == nil {
		c.textCentered(190, season, colorText)
	}

	return v.frame(c), nil
}
