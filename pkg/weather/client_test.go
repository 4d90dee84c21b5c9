package weather

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/sunwatch/sunwatch/internal/testutil"
)

func newTestClient(t *testing.T, mock *testutil.MockWeatherAPI) *Client {
	t.Helper()
	client := NewClient("test-key", 40.7128, -74.0060, "imperial")
	client.SetBaseURL(mock.URL())
	return client
}

func TestFetchCurrent(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/weather", testutil.NewJSONResponse(`{
		"main": {"temp": 72.5, "feels_like": 70.1, "humidity": 45},
		"weather": [{"description": "clear sky"}],
		"wind": {"speed": 5.5, "deg": 180}
	}`))

	client := newTestClient(t, mock)
	current, err := client.FetchCurrent(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrent failed: %v", err)
	}

	if current.Temperature != 72.5 {
		t.Errorf("Temperature = %v, want 72.5", current.Temperature)
	}
	if current.FeelsLike != 70.1 {
		t.Errorf("FeelsLike = %v, want 70.1", current.FeelsLike)
	}
	if current.Humidity != 45 {
		t.Errorf("Humidity = %v, want 45", current.Humidity)
	}
	if current.Description != "Clear Sky" {
		t.Errorf("Description = %q, want %q", current.Description, "Clear Sky")
	}
	if current.WindDirection != "S" {
		t.Errorf("WindDirection = %q, want %q", current.WindDirection, "S")
	}
}

func TestFetchCurrentPartialPayload(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	// Missing feels_like, humidity, and weather list: fields default
	// instead of failing.
	mock.SetResponse("/data/2.5/weather", testutil.NewJSONResponse(
		`{"main":{"temp":72},"weather":[],"wind":{"speed":5,"deg":180}}`))

	client := newTestClient(t, mock)
	current, err := client.FetchCurrent(context.Background())
	if err != nil {
		t.Fatalf("FetchCurrent failed: %v", err)
	}

	if current.Temperature != 72 {
		t.Errorf("Temperature = %v, want 72", current.Temperature)
	}
	if current.Description != "Unknown" {
		t.Errorf("Description = %q, want %q", current.Description, "Unknown")
	}
	if current.FeelsLike != 0 {
		t.Errorf("FeelsLike = %v, want 0", current.FeelsLike)
	}
}

func TestFetchCurrentQueryParameters(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/weather", testutil.NewJSONResponse(`{"main":{"temp":1}}`))

	client := newTestClient(t, mock)
	if _, err := client.FetchCurrent(context.Background()); err != nil {
		t.Fatalf("FetchCurrent failed: %v", err)
	}

	query := mock.LastQuery("/data/2.5/weather")
	for _, want := range []string{"lat=40.7128", "lon=-74.0060", "appid=test-key", "units=imperial"} {
		if !strings.Contains(query, want) {
			t.Errorf("query %q missing %q", query, want)
		}
	}
}

func TestFetchCurrentMissingAPIKey(t *testing.T) {
	client := NewClient("", 40.7128, -74.0060, "imperial")

	_, err := client.FetchCurrent(context.Background())
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestFetchCurrentAPIError(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/weather", testutil.NewRateLimitResponse())

	client := newTestClient(t, mock)
	_, err := client.FetchCurrent(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("StatusCode = %d, want 429", apiErr.StatusCode)
	}
}

func TestFetchCurrentMalformedPayload(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/weather", testutil.NewJSONResponse(`{not json`))

	client := newTestClient(t, mock)
	_, err := client.FetchCurrent(context.Background())
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestFetchForecastAggregation(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	// Two days of 3-hourly entries, out of order within the payload.
	mock.SetResponse("/data/2.5/forecast", testutil.NewJSONResponse(`{
		"list": [
			{"dt_txt": "2026-08-28 09:00:00", "pop": 0.1, "main": {"temp": 68}},
			{"dt_txt": "2026-08-27 12:00:00", "pop": 0.3, "main": {"temp": 75}},
			{"dt_txt": "2026-08-27 15:00:00", "pop": 0.6, "main": {"temp": 80}},
			{"dt_txt": "2026-08-27 18:00:00", "pop": 0.2, "main": {"temp": 71}},
			{"dt_txt": "2026-08-28 12:00:00", "pop": 0.0, "main": {"temp": 74}}
		]
	}`))

	client := newTestClient(t, mock)
	forecast, err := client.FetchForecast(context.Background())
	if err != nil {
		t.Fatalf("FetchForecast failed: %v", err)
	}

	if len(forecast) != 2 {
		t.Fatalf("got %d days, want 2", len(forecast))
	}

	day1 := forecast[0]
	if day1.Date != "2026-08-27" {
		t.Errorf("Date = %q, want 2026-08-27", day1.Date)
	}
	if day1.HighTemp != 80 || day1.LowTemp != 71 {
		t.Errorf("High/Low = %v/%v, want 80/71", day1.HighTemp, day1.LowTemp)
	}
	if day1.RainChance != 60 {
		t.Errorf("RainChance = %d, want 60", day1.RainChance)
	}

	day2 := forecast[1]
	if day2.Date != "2026-08-28" {
		t.Errorf("Date = %q, want 2026-08-28", day2.Date)
	}
	if day2.HighTemp != 74 || day2.LowTemp != 68 {
		t.Errorf("High/Low = %v/%v, want 74/68", day2.HighTemp, day2.LowTemp)
	}
}

func TestFetchForecastCapsAtFiveDays(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/forecast", testutil.NewJSONResponse(`{
		"list": [
			{"dt_txt": "2026-08-27 12:00:00", "pop": 0, "main": {"temp": 70}},
			{"dt_txt": "2026-08-28 12:00:00", "pop": 0, "main": {"temp": 70}},
			{"dt_txt": "2026-08-29 12:00:00", "pop": 0, "main": {"temp": 70}},
			{"dt_txt": "2026-08-30 12:00:00", "pop": 0, "main": {"temp": 70}},
			{"dt_txt": "2026-08-31 12:00:00", "pop": 0, "main": {"temp": 70}},
			{"dt_txt": "2026-09-01 12:00:00", "pop": 0, "main": {"temp": 70}}
		]
	}`))

	client := newTestClient(t, mock)
	forecast, err := client.FetchForecast(context.Background())
	if err != nil {
		t.Fatalf("FetchForecast failed: %v", err)
	}
	if len(forecast) != 5 {
		t.Errorf("got %d days, want 5", len(forecast))
	}
}

func TestFetchAirQuality(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/air_pollution", testutil.NewJSONResponse(`{
		"list": [{"components": {
			"pm2_5": 20.0, "pm10": 30.0, "o3": 80.0,
			"no2": 15.0, "so2": 5.0, "co": 400.0
		}}]
	}`))

	client := newTestClient(t, mock)
	aqi, err := client.FetchAirQuality(context.Background())
	if err != nil {
		t.Fatalf("FetchAirQuality failed: %v", err)
	}

	// PM2.5 of 20.0 falls in the 12.1-35.4 breakpoint.
	if aqi.AQI < 51 || aqi.AQI > 100 {
		t.Errorf("AQI = %d, want within 51-100", aqi.AQI)
	}
	if aqi.Category != "Moderate" {
		t.Errorf("Category = %q, want Moderate", aqi.Category)
	}
	if aqi.PM25 != 20.0 {
		t.Errorf("PM25 = %v, want 20.0", aqi.PM25)
	}
}

func TestFetchAirQualityEmptyList(t *testing.T) {
	mock := testutil.NewMockWeatherAPI()
	defer mock.Close()

	mock.SetResponse("/data/2.5/air_pollution", testutil.NewJSONResponse(`{"list": []}`))

	client := newTestClient(t, mock)
	_, err := client.FetchAirQuality(context.Background())
	if !errors.Is(err, ErrMalformedPayload) {
		t.Errorf("expected ErrMalformedPayload, got %v", err)
	}
}

func TestDegreesToCompass(t *testing.T) {
	tests := []struct {
		degrees float64
		want    string
	}{
		{0, "N"},
		{11.24, "N"},
		{11.25, "NNE"},
		{45, "NE"},
		{90, "E"},
		{180, "S"},
		{270, "W"},
		{348.75, "NNW"},
		{348.74, "NNW"},
		{359, "N"},
		{360, "N"},
	}

	for _, tt := range tests {
		if got := degreesToCompass(tt.degrees); got != tt.want {
			t.Errorf("degreesToCompass(%v) = %q, want %q", tt.degrees, got, tt.want)
		}
	}
}

func TestPM25ToAQI(t *testing.T) {
	tests := []struct {
		pm25 float64
		want int
	}{
		{0, 0},
		{12.0, 50},
		{35.4, 100},
		{55.4, 150},
		{150.4, 200},
		{250.4, 300},
		{500.4, 500},
		{600, 500},
	}

	for _, tt := range tests {
		if got := pm25ToAQI(tt.pm25); got != tt.want {
			t.Errorf("pm25ToAQI(%v) = %d, want %d", tt.pm25, got, tt.want)
		}
	}
}

func TestAQICategory(t *testing.T) {
	tests := []struct {
		aqi  int
		want string
	}{
		{0, "Good"},
		{50, "Good"},
		{51, "Moderate"},
		{100, "Moderate"},
		{150, "Unhealthy for Sensitive"},
		{200, "Unhealthy"},
		{300, "Very Unhealthy"},
		{301, "Hazardous"},
	}

	for _, tt := range tests {
		if got := aqiCategory(tt.aqi); got != tt.want {
			t.Errorf("aqiCategory(%d) = %q, want %q", tt.aqi, got, tt.want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"clear sky", "Clear Sky"},
		{"overcast clouds", "Overcast Clouds"},
		{"rain", "Rain"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.in); got != tt.want {
			t.Errorf("titleCase(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
