package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://api.openweathermap.org"

// requestTimeout bounds every upstream call; a hung fetch is treated as
// a failure rather than left hanging.
const requestTimeout = 10 * time.Second

// Common errors returned by the client.
var (
	// ErrMissingAPIKey is returned when no API key is configured.
	ErrMissingAPIKey = errors.New("weather API key not configured")

	// ErrMalformedPayload wraps unexpected payload shapes.
	ErrMalformedPayload = errors.New("malformed weather payload")
)

// APIError represents a non-200 upstream response.
type APIError struct {
	Endpoint   string
	StatusCode int
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("weather API %s returned status %d", e.Endpoint, e.StatusCode)
}

// Client performs the raw OpenWeatherMap-shaped API calls.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	lat, lon   float64
	units      string
	logger     zerolog.Logger
}

// NewClient creates a weather API client for a fixed location.
func NewClient(apiKey string, lat, lon float64, units string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		lat:        lat,
		lon:        lon,
		units:      units,
		logger:     log.With().Str("component", "weather-client").Logger(),
	}
}

// SetBaseURL overrides the API base URL (for testing).
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = baseURL
}

// SetHTTPClient sets a custom HTTP client (for testing).
func (c *Client) SetHTTPClient(client *http.Client) {
	c.httpClient = client
}

type currentResponse struct {
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   float64 `json:"deg"`
	} `json:"wind"`
}

type forecastResponse struct {
	List []struct {
		DtTxt string  `json:"dt_txt"`
		Pop   float64 `json:"pop"`
		Main  struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	} `json:"list"`
}

type airPollutionResponse struct {
	List []struct {
		Components map[string]float64 `json:"components"`
	} `json:"list"`
}

// FetchCurrent fetches and parses current conditions.
func (c *Client) FetchCurrent(ctx context.Context) (*CurrentWeather, error) {
	var payload currentResponse
	if err := c.get(ctx, "/data/2.5/weather", true, &payload); err != nil {
		return nil, err
	}

	// Absent fields default rather than fail.
	description := "Unknown"
	if len(payload.Weather) > 0 && payload.Weather[0].Description != "" {
		description = titleCase(payload.Weather[0].Description)
	}

	return &CurrentWeather{
		Temperature:   payload.Main.Temp,
		FeelsLike:     payload.Main.FeelsLike,
		Humidity:      payload.Main.Humidity,
		Description:   description,
		WindSpeed:     payload.Wind.Speed,
		WindDirection: degreesToCompass(payload.Wind.Deg),
	}, nil
}

// FetchForecast fetches the 5-day forecast and aggregates it by day.
func (c *Client) FetchForecast(ctx context.Context) ([]DailyForecast, error) {
	var payload forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", true, &payload); err != nil {
		return nil, err
	}
	return aggregateForecast(payload), nil
}

// FetchAirQuality fetches pollution components and derives the US EPA AQI.
func (c *Client) FetchAirQuality(ctx context.Context) (*AirQuality, error) {
	var payload airPollutionResponse
	if err := c.get(ctx, "/data/2.5/air_pollution", false, &payload); err != nil {
		return nil, err
	}
	if len(payload.List) == 0 {
		return nil, fmt.Errorf("%w: air_pollution list empty", ErrMalformedPayload)
	}

	components := payload.List[0].Components
	pm25 := components["pm2_5"]
	aqi := pm25ToAQI(pm25)

	return &AirQuality{
		AQI:      aqi,
		Category: aqiCategory(aqi),
		PM25:     pm25,
		PM10:     components["pm10"],
		O3:       components["o3"],
		NO2:      components["no2"],
		SO2:      components["so2"],
		CO:       components["co"],
	}, nil
}

// get performs one API call and decodes the JSON body into out.
func (c *Client) get(ctx context.Context, endpoint string, withUnits bool, out any) error {
	if c.apiKey == "" {
		return ErrMissingAPIKey
	}

	start := time.Now()
	defer func() {
		fetchDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(c.lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(c.lon, 'f', 4, 64))
	params.Set("appid", c.apiKey)
	if withUnits {
		params.Set("units", c.units)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		fetchesTotal.WithLabelValues(endpoint, "network_error").Inc()
		return fmt.Errorf("weather API %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		fetchesTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		fetchesTotal.WithLabelValues(endpoint, "malformed").Inc()
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}

	fetchesTotal.WithLabelValues(endpoint, "ok").Inc()
	return nil
}

// aggregateForecast groups 3-hourly entries into daily summaries, sorted
// chronologically, at most five days.
func aggregateForecast(payload forecastResponse) []DailyForecast {
	type dayAgg struct {
		high, low float64
		rain      int
		seen      bool
	}
	days := make(map[string]*dayAgg)

	for _, item := range payload.List {
		date, _, ok := strings.Cut(item.DtTxt, " ")
		if !ok || date == "" {
			continue
		}
		agg, exists := days[date]
		if !exists {
			agg = &dayAgg{}
			days[date] = agg
		}
		temp := item.Main.Temp
		if !agg.seen {
			agg.high, agg.low = temp, temp
			agg.seen = true
		} else {
			if temp > agg.high {
				agg.high = temp
			}
			if temp < agg.low {
				agg.low = temp
			}
		}
		if chance := int(item.Pop * 100); chance > agg.rain {
			agg.rain = chance
		}
	}

	dates := make([]string, 0, len(days))
	for date := range days {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	if len(dates) > 5 {
		dates = dates[:5]
	}

	forecasts := make([]DailyForecast, 0, len(dates))
	for _, date := range dates {
		agg := days[date]
		forecasts = append(forecasts, DailyForecast{
			Date:       date,
			HighTemp:   agg.high,
			LowTemp:    agg.low,
			RainChance: agg.rain,
		})
	}
	return forecasts
}

// titleCase uppercases the first letter of each space-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
