package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Sample request: https://api.open-meteo.com/v1/forecast?latitude=52.52&longitude=13.41&current=temperature_2m,apparent_temperature,relative_humidity_2m,weather_code,wind_speed_10m&daily=weather_code,temperature_2m_max,temperature_2m_min,sunrise,sunset&timezone=auto

var (
	currentVars = []string{
		"temperature_2m",
		"apparent_temperature",
		"relative_humidity_2m",
		"weather_code",
		"wind_speed_10m",
	}

	dailyVars = []string{
		"weather_code",
		"temperature_2m_max",
		"temperature_2m_min",
		"sunrise",
		"sunset",
	}
)

// GetForecast fetches current conditions and the daily series for today and
// the following days, with times local to the location
func (c *Client) GetForecast(ctx context.Context, latitude, longitude float64) (*ForecastAPIResponse, error) {
	u, err := url.Parse(c.forecastURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("v1", "forecast")

	q := u.Query()
	q.Set("latitude", formatCoordinate(latitude))
	q.Set("longitude", formatCoordinate(longitude))
	q.Set("current", strings.Join(currentVars, ","))
	q.Set("daily", strings.Join(dailyVars, ","))
	q.Set("timezone", "auto")
	u.RawQuery = q.Encode()

	c.logger.Debug("fetching forecast",
		"latitude", latitude,
		"longitude", longitude,
	)

	var apiResp ForecastAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		c.logger.Error("failed to fetch forecast",
			"latitude", latitude,
			"longitude", longitude,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("successfully fetched forecast",
		"latitude", latitude,
		"longitude", longitude,
		"timezone", apiResp.Timezone,
		"days", apiResp.Daily.Days(),
	)

	return &apiResp, nil
}
