package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"meteo-widget/internal/config"

	"golang.org/x/time/rate"
)

// API Docs: https://open-meteo.com/en/docs and https://open-meteo.com/en/docs/geocoding-api
const (
	baseGeocodeURL  = "https://geocoding-api.open-meteo.com"
	baseForecastURL = "https://api.open-meteo.com"
)

// Client talks to the Open-Meteo geocoding and forecast APIs. All requests
// share one token bucket so every widget session stays inside the fair-use
// limits together.
type Client struct {
	httpClient  *http.Client
	geocodeURL  string
	forecastURL string
	language    string
	limiter     *rate.Limiter
	logger      *slog.Logger
}

// NewClient creates a client from configuration. A zero RateLimit disables
// request limiting.
func NewClient(cfg config.OpenMeteoConfig, logger *slog.Logger) *Client {
	c := &Client{
		httpClient:  &http.Client{},
		geocodeURL:  cfg.GeocodeURL,
		forecastURL: cfg.ForecastURL,
		language:    cfg.Language,
		logger:      logger.With("component", "openmeteo-client"),
	}
	if c.geocodeURL == "" {
		c.geocodeURL = baseGeocodeURL
	}
	if c.forecastURL == "" {
		c.forecastURL = baseForecastURL
	}
	if c.language == "" {
		c.language = "en"
	}
	if cfg.RateLimit > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c
}

// getJSON waits for the limiter, performs a GET and decodes the JSON body into out
func (c *Client) getJSON(ctx context.Context, u *url.URL, out any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait canceled: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("Open-Meteo API returned error",
			"status_code", resp.StatusCode,
			"path", u.Path,
			"response_body", string(body),
		)
		return fmt.Errorf("fetch returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func formatCoordinate(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}
