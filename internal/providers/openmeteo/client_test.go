package openmeteo

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"meteo-widget/internal/config"
)

func newTestClient(serverURL string) *Client {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewClient(config.OpenMeteoConfig{
		GeocodeURL:  serverURL,
		ForecastURL: serverURL,
		Language:    "en",
	}, logger)
}

func TestClient_SearchPlaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/search" {
			t.Errorf("expected path /v1/search, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		if got := q.Get("name"); got != "Berlin" {
			t.Errorf("expected name=Berlin, got %s", got)
		}
		if got := q.Get("count"); got != "5" {
			t.Errorf("expected count=5, got %s", got)
		}
		if got := q.Get("language"); got != "en" {
			t.Errorf("expected language=en, got %s", got)
		}
		if got := q.Get("format"); got != "json" {
			t.Errorf("expected format=json, got %s", got)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[
			{"id":2950159,"name":"Berlin","latitude":52.52437,"longitude":13.41053,"country":"Germany","admin1":"Land Berlin"},
			{"id":5083330,"name":"Berlin","latitude":44.46867,"longitude":-71.18508,"country":"United States","admin1":"New Hampshire"}
		],"generationtime_ms":0.5}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SearchPlaces(context.Background(), "Berlin", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(resp.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(resp.Results))
	}
	first := resp.Results[0]
	if first.Name != "Berlin" || first.Country != "Germany" || first.Admin1 != "Land Berlin" {
		t.Errorf("unexpected first result: %+v", first)
	}
	if first.Latitude != 52.52437 || first.Longitude != 13.41053 {
		t.Errorf("unexpected coordinates: %f, %f", first.Latitude, first.Longitude)
	}
}

func TestClient_SearchPlaces_NoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.2}`))
	}))
	defer srv.Close()

	resp, err := newTestClient(srv.URL).SearchPlaces(context.Background(), "Qwxyzzy", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 0 {
		t.Errorf("expected no results, got %d", len(resp.Results))
	}
}

func TestClient_SearchPlaces_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":true,"reason":"Parameter count must be between 1 and 100."}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).SearchPlaces(context.Background(), "Berlin", 0)
	if err == nil {
		t.Fatal("expected error for 400 response, got nil")
	}
	if !strings.Contains(err.Error(), "fetch returned status 400") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_GetForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("expected path /v1/forecast, got %s", r.URL.Path)
		}
		q := r.URL.Query()
		expected := map[string]string{
			"latitude":  "52.52",
			"longitude": "13.41",
			"current":   "temperature_2m,apparent_temperature,relative_humidity_2m,weather_code,wind_speed_10m",
			"daily":     "weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset",
			"timezone":  "auto",
		}
		for key, want := range expected {
			if got := q.Get(key); got != want {
				t.Errorf("expected %s=%s, got %s", key, want, got)
			}
		}

		resp := ForecastAPIResponse{
			Timezone: "Europe/Berlin",
			Current: Current{
				Time:                "2025-03-03T14:00",
				Temperature2M:       8.4,
				ApparentTemperature: 5.9,
				RelativeHumidity2M:  61,
				WeatherCode:         3,
				WindSpeed10M:        14.2,
			},
			Daily: Daily{
				Time:             []string{"2025-03-03", "2025-03-04"},
				WeatherCode:      []int{3, 61},
				Temperature2MMax: []float64{9.1, 21.6},
				Temperature2MMin: []float64{1.2, 14.3},
				Sunrise:          []string{"2025-03-03T06:52", "2025-03-04T06:50"},
				Sunset:           []string{"2025-03-03T17:52", "2025-03-04T17:54"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	got, err := newTestClient(srv.URL).GetForecast(context.Background(), 52.52, 13.41)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got.Timezone != "Europe/Berlin" {
		t.Errorf("expected timezone Europe/Berlin, got %s", got.Timezone)
	}
	if got.Current.Temperature2M != 8.4 {
		t.Errorf("expected temperature 8.4, got %f", got.Current.Temperature2M)
	}
	if got.Current.RelativeHumidity2M != 61 {
		t.Errorf("expected humidity 61, got %d", got.Current.RelativeHumidity2M)
	}
	if got.Daily.Days() != 2 {
		t.Errorf("expected 2 days, got %d", got.Daily.Days())
	}
	if got.Daily.WeatherCode[1] != 61 {
		t.Errorf("expected day 1 weather code 61, got %d", got.Daily.WeatherCode[1])
	}
}

func TestClient_GetForecast_InvalidJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current": "not an object"`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).GetForecast(context.Background(), 0, 0)
	if err == nil {
		t.Fatal("expected decode error, got nil")
	}
	if !strings.Contains(err.Error(), "failed to decode response") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestClient_GetForecast_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := newTestClient(srv.URL).GetForecast(ctx, 52.52, 13.41); err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestClient_RateLimit(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := NewClient(config.OpenMeteoConfig{
		GeocodeURL: srv.URL,
		RateLimit:  0.001,
		Burst:      1,
	}, logger)

	if _, err := client.SearchPlaces(context.Background(), "Paris", 5); err != nil {
		t.Fatalf("first request should pass the limiter: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := client.SearchPlaces(ctx, "Paris", 5); err == nil {
		t.Fatal("second request should be held back by the limiter")
	}
	if got := calls.Load(); got != 1 {
		t.Errorf("expected 1 upstream call, got %d", got)
	}
}

func TestDaily_Days(t *testing.T) {
	tests := []struct {
		name     string
		daily    Daily
		expected int
	}{
		{"empty", Daily{}, 0},
		{
			name: "uneven series",
			daily: Daily{
				Time:             []string{"a", "b", "c"},
				WeatherCode:      []int{1, 2, 3},
				Temperature2MMax: []float64{1, 2},
				Temperature2MMin: []float64{1, 2, 3},
				Sunrise:          []string{"a", "b", "c"},
				Sunset:           []string{"a", "b", "c"},
			},
			expected: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.daily.Days(); got != tt.expected {
				t.Errorf("Days() = %d, want %d", got, tt.expected)
			}
		})
	}
}
