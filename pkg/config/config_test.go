package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 480, cfg.Display.Width)
	assert.Equal(t, 320, cfg.Display.Height)
	assert.Equal(t, 40, cfg.Display.NavBarHeight)
	assert.Equal(t, "127.0.0.1", cfg.HTTP.Host)
	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, float64(10), cfg.HTTP.RateLimit)
	assert.Equal(t, 900, cfg.Weather.RefreshSeconds)
	assert.Equal(t, 1800, cfg.Weather.AirQualitySeconds)
	assert.Equal(t, "imperial", cfg.Weather.Units)
	assert.Equal(t, 80, cfg.Touch.SwipeThreshold)
	assert.Equal(t, 30, cfg.Touch.TapThreshold)
	assert.Equal(t, 400, cfg.Touch.TapTimeoutMillis)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"http": {"host": "0.0.0.0", "port": 9090, "rate_limit": 5},
		"location": {"latitude": 51.5074, "longitude": -0.1278}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 51.5074, cfg.Location.Latitude)

	// Untouched sections keep their defaults.
	assert.Equal(t, 480, cfg.Display.Width)
	assert.Equal(t, 900, cfg.Weather.RefreshSeconds)
}

func TestLoadMissingExplicitPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.ErrorIs(t, err, ErrNotFound)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadAPIKeyFromEnvironment(t *testing.T) {
	t.Setenv(EnvAPIKey, "env-key-123")

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key-123", cfg.Weather.APIKey)
}

func TestAuthCredentials(t *testing.T) {
	t.Setenv(EnvAuthUser, "admin")
	t.Setenv(EnvAuthPass, "secret")

	user, pass := AuthCredentials()
	assert.Equal(t, "admin", user)
	assert.Equal(t, "secret", pass)
}

func TestIntervalHelpers(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "15m0s", cfg.Weather.RefreshInterval().String())
	assert.Equal(t, "30m0s", cfg.Weather.AirQualityInterval().String())
	assert.Equal(t, "400ms", cfg.Touch.TapTimeout().String())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Display.Width = 0 }},
		{"nav bar taller than screen", func(c *Config) { c.Display.NavBarHeight = 320 }},
		{"negative default view", func(c *Config) { c.Display.DefaultView = -1 }},
		{"port out of range", func(c *Config) { c.HTTP.Port = 70000 }},
		{"zero rate limit", func(c *Config) { c.HTTP.RateLimit = 0 }},
		{"unknown units", func(c *Config) { c.Weather.Units = "kelvin" }},
		{"zero weather refresh", func(c *Config) { c.Weather.RefreshSeconds = 0 }},
		{"zero air quality refresh", func(c *Config) { c.Weather.AirQualitySeconds = 0 }},
		{"zero swipe threshold", func(c *Config) { c.Touch.SwipeThreshold = 0 }},
		{"zero tap threshold", func(c *Config) { c.Touch.TapThreshold = 0 }},
		{"latitude out of range", func(c *Config) { c.Location.Latitude = 91 }},
		{"longitude out of range", func(c *Config) { c.Location.Longitude = -181 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
