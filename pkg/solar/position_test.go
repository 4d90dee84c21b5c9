package solar

import (
	"testing"
	"time"
)

func TestComputePosition(t *testing.T) {
	tests := []struct {
		name         string
		at           time.Time
		minEl, maxEl float64
		minAz, maxAz float64
	}{
		{
			// Solar noon on the summer solstice: elevation peaks at
			// 90 - (latitude - declination), sun due south.
			name:  "summer solstice noon",
			at:    time.Date(2030, 6, 21, 16, 58, 0, 0, time.UTC),
			minEl: 71.7, maxEl: 73.7,
			minAz: 177, maxAz: 183,
		},
		{
			name:  "summer morning sun in the east",
			at:    time.Date(2030, 6, 21, 12, 0, 0, 0, time.UTC),
			minEl: 25, maxEl: 28,
			minAz: 78, maxAz: 84,
		},
		{
			name:  "summer evening sun in the west",
			at:    time.Date(2030, 6, 21, 23, 0, 0, 0, time.UTC),
			minEl: 13, maxEl: 16,
			minAz: 285, maxAz: 292,
		},
		{
			name:  "winter solstice noon stays low",
			at:    time.Date(2030, 12, 21, 16, 54, 0, 0, time.UTC),
			minEl: 24.8, maxEl: 26.8,
			minAz: 177, maxAz: 183,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := ComputePosition(tt.at, nycLat, nycLon)
			if pos.Elevation < tt.minEl || pos.Elevation > tt.maxEl {
				t.Errorf("elevation = %.2f, want in [%.1f, %.1f]", pos.Elevation, tt.minEl, tt.maxEl)
			}
			if pos.Azimuth < tt.minAz || pos.Azimuth > tt.maxAz {
				t.Errorf("azimuth = %.2f, want in [%.1f, %.1f]", pos.Azimuth, tt.minAz, tt.maxAz)
			}
		})
	}
}

func TestComputePositionNight(t *testing.T) {
	// 1 AM local: the sun is well below the horizon but the position is
	// still defined.
	pos := ComputePosition(time.Date(2030, 6, 21, 5, 0, 0, 0, time.UTC), nycLat, nycLon)
	if pos.Elevation >= 0 {
		t.Errorf("night elevation = %.2f, want negative", pos.Elevation)
	}
	if pos.Azimuth < 0 || pos.Azimuth >= 360 {
		t.Errorf("azimuth = %.2f, want in [0, 360)", pos.Azimuth)
	}
}

func TestCurrentPosition(t *testing.T) {
	at := time.Date(2030, 6, 21, 16, 58, 0, 0, time.UTC)
	provider, _ := newTestProvider(t, at)

	got := provider.CurrentPosition()
	want := ComputePosition(at, nycLat, nycLon)
	if got != want {
		t.Errorf("CurrentPosition = %+v, want %+v", got, want)
	}
}
