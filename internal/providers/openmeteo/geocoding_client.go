package openmeteo

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Sample request: https://geocoding-api.open-meteo.com/v1/search?name=Berlin&count=5&language=en&format=json

// SearchPlaces looks up at most count places matching name. A response
// without results is not an error; callers decide what "not found" means.
func (c *Client) SearchPlaces(ctx context.Context, name string, count int) (*GeocodingAPIResponse, error) {
	u, err := url.Parse(c.geocodeURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL: %w", err)
	}
	u = u.JoinPath("v1", "search")

	q := u.Query()
	q.Set("name", name)
	q.Set("count", strconv.Itoa(count))
	q.Set("language", c.language)
	q.Set("format", "json")
	u.RawQuery = q.Encode()

	c.logger.Debug("searching places",
		"name", name,
		"count", count,
	)

	var apiResp GeocodingAPIResponse
	if err := c.getJSON(ctx, u, &apiResp); err != nil {
		c.logger.Error("failed to search places",
			"name", name,
			"error", err,
		)
		return nil, err
	}

	c.logger.Debug("successfully searched places",
		"name", name,
		"results", len(apiResp.Results),
	)

	return &apiResp, nil
}
