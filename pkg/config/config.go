package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNotFound is returned when no config file exists at any search path.
var ErrNotFound = errors.New("no config file found")

// Environment variables read for secrets.
const (
	EnvAPIKey   = "OPENWEATHER_API_KEY"
	EnvAuthUser = "HTTP_AUTH_USER"
	EnvAuthPass = "HTTP_AUTH_PASS"
)

// Config is the full sunwatch configuration.
type Config struct {
	Display  DisplayConfig  `json:"display"`
	HTTP     HTTPConfig     `json:"http"`
	Weather  WeatherConfig  `json:"weather"`
	Touch    TouchConfig    `json:"touch"`
	Location LocationConfig `json:"location"`
	Logging  LoggingConfig  `json:"logging"`
}

// DisplayConfig describes the physical screen.
type DisplayConfig struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	// Framebuffer is the output device. Empty selects the null sink.
	Framebuffer string `json:"framebuffer"`

	// NavBarHeight is the touch navigation strip at the bottom, px.
	NavBarHeight int `json:"nav_bar_height"`

	// DefaultView is the view shown at startup, by registry index.
	DefaultView int `json:"default_view"`
}

// HTTPConfig describes the control API.
type HTTPConfig struct {
	Host string `json:"host"`
	Port int    `json:"port"`

	// RateLimit is the sustained requests-per-second admission rate;
	// the bucket capacity equals it, so it is also the burst size.
	RateLimit float64 `json:"rate_limit"`
}

// WeatherConfig describes the upstream weather data source.
type WeatherConfig struct {
	// APIKey is populated from the environment, not the file.
	APIKey string `json:"-"`

	// Units is "imperial" or "metric".
	Units string `json:"units"`

	// RefreshSeconds is the weather snapshot refresh interval.
	RefreshSeconds int `json:"refresh_seconds"`

	// AirQualitySeconds is the air quality refresh interval.
	AirQualitySeconds int `json:"air_quality_seconds"`
}

// RefreshInterval returns the snapshot refresh interval.
func (c WeatherConfig) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshSeconds) * time.Second
}

// AirQualityInterval returns the air quality refresh interval.
func (c WeatherConfig) AirQualityInterval() time.Duration {
	return time.Duration(c.AirQualitySeconds) * time.Second
}

// TouchConfig describes the touch input device and gesture thresholds.
type TouchConfig struct {
	// Device is the evdev node. Empty disables touch input.
	Device string `json:"device"`

	// SwipeThreshold is the minimum horizontal travel in px.
	SwipeThreshold int `json:"swipe_threshold"`

	// TapThreshold is the maximum travel in px for a tap.
	TapThreshold int `json:"tap_threshold"`

	// TapTimeoutMillis is the maximum press duration for a tap.
	TapTimeoutMillis int `json:"tap_timeout_ms"`
}

// TapTimeout returns the tap timeout as a duration.
func (c TouchConfig) TapTimeout() time.Duration {
	return time.Duration(c.TapTimeoutMillis) * time.Millisecond
}

// LocationConfig is the fixed observer position.
type LocationConfig struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

	// Timezone is an IANA zone name; empty uses the system zone.
	Timezone string `json:"timezone"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `json:"level"`
	Pretty bool   `json:"pretty"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Display: DisplayConfig{
			Width:        480,
			Height:       320,
			Framebuffer:  "/dev/fb1",
			NavBarHeight: 40,
		},
		HTTP: HTTPConfig{
			Host:      "127.0.0.1",
			Port:      8080,
			RateLimit: 10,
		},
		Weather: WeatherConfig{
			Units:             "imperial",
			RefreshSeconds:    900,
			AirQualitySeconds: 1800,
		},
		Touch: TouchConfig{
			Device:           "/dev/input/event0",
			SwipeThreshold:   80,
			TapThreshold:     30,
			TapTimeoutMillis: 400,
		},
		Location: LocationConfig{
			Latitude:  40.7128,
			Longitude: -74.0060,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// searchPaths are probed in order when no explicit path is given.
func searchPaths() []string {
	paths := []string{"sunwatch.json"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "sunwatch", "config.json"))
	}
	paths = append(paths, "/etc/sunwatch/config.json")
	return paths
}

// Load reads the configuration. With an empty path the standard search
// paths are probed and, when none exists, defaults are returned. Secrets
// are always taken from the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		found := ""
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err == nil {
				found = p
				break
			}
		}
		if found == "" {
			cfg.loadSecrets()
			return cfg, cfg.Validate()
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	cfg.loadSecrets()
	return cfg, cfg.Validate()
}

func (c *Config) loadSecrets() {
	c.Weather.APIKey = os.Getenv(EnvAPIKey)
}

// AuthCredentials returns the optional HTTP basic auth pair from the
// environment.
func AuthCredentials() (user, pass string) {
	return os.Getenv(EnvAuthUser), os.Getenv(EnvAuthPass)
}

// Validate checks every section and returns the first problem found.
func (c Config) Validate() error {
	if c.Display.Width <= 0 || c.Display.Height <= 0 {
		return fmt.Errorf("display: invalid dimensions %dx%d", c.Display.Width, c.Display.Height)
	}
	if c.Display.NavBarHeight < 0 || c.Display.NavBarHeight >= c.Display.Height {
		return fmt.Errorf("display: nav bar height %d out of range", c.Display.NavBarHeight)
	}
	if c.Display.DefaultView < 0 {
		return fmt.Errorf("display: negative default view %d", c.Display.DefaultView)
	}

	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http: invalid port %d", c.HTTP.Port)
	}
	if c.HTTP.RateLimit <= 0 {
		return fmt.Errorf("http: rate limit %v must be positive", c.HTTP.RateLimit)
	}

	if c.Weather.Units != "imperial" && c.Weather.Units != "metric" {
		return fmt.Errorf("weather: unknown units %q", c.Weather.Units)
	}
	if c.Weather.RefreshSeconds <= 0 {
		return fmt.Errorf("weather: refresh interval %d must be positive", c.Weather.RefreshSeconds)
	}
	if c.Weather.AirQualitySeconds <= 0 {
		return fmt.Errorf("weather: air quality interval %d must be positive", c.Weather.AirQualitySeconds)
	}

	if c.Touch.SwipeThreshold <= 0 {
		return fmt.Errorf("touch: swipe threshold %d must be positive", c.Touch.SwipeThreshold)
	}
	if c.Touch.TapThreshold <= 0 {
		return fmt.Errorf("touch: tap threshold %d must be positive", c.Touch.TapThreshold)
	}
	if c.Touch.TapTimeoutMillis <= 0 {
		return fmt.Errorf("touch: tap timeout %d must be positive", c.Touch.TapTimeoutMillis)
	}

	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return fmt.Errorf("location: latitude %v out of range", c.Location.Latitude)
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return fmt.Errorf("location: longitude %v out of range", c.Location.Longitude)
	}

	return nil
}
