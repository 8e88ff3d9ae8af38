package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync/atomic"
	"time"

	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/weather"
)

// Provider wraps the Open-Meteo providers and keeps their responses for a
// TTL. A failing store never fails a request; it only costs a fetch.
type Provider struct {
	forecast weather.ForecastProvider
	geocode  weather.GeocodeProvider
	store    Store
	ttl      time.Duration
	logger   *slog.Logger

	hits   atomic.Int64
	misses atomic.Int64
}

func NewProvider(
	forecast weather.ForecastProvider,
	geocode weather.GeocodeProvider,
	store Store,
	ttl time.Duration,
	logger *slog.Logger,
) *Provider {
	return &Provider{
		forecast: forecast,
		geocode:  geocode,
		store:    store,
		ttl:      ttl,
		logger:   logger.With("component", "response-cache"),
	}
}

func (p *Provider) GetForecast(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error) {
	key := "forecast:" + strconv.FormatFloat(latitude, 'f', -1, 64) + ":" + strconv.FormatFloat(longitude, 'f', -1, 64)
	return cached(ctx, p, key, func() (*openmeteo.ForecastAPIResponse, error) {
		return p.forecast.GetForecast(ctx, latitude, longitude)
	})
}

func (p *Provider) SearchPlaces(ctx context.Context, name string, count int) (*openmeteo.GeocodingAPIResponse, error) {
	key := fmt.Sprintf("geocode:%d:%s", count, name)
	return cached(ctx, p, key, func() (*openmeteo.GeocodingAPIResponse, error) {
		return p.geocode.SearchPlaces(ctx, name, count)
	})
}

// Stats returns the hit and miss counts since creation
func (p *Provider) Stats() (hits, misses int64) {
	return p.hits.Load(), p.misses.Load()
}

func cached[T any](ctx context.Context, p *Provider, key string, fetch func() (*T, error)) (*T, error) {
	data, err := p.store.Get(ctx, key)
	switch {
	case err == nil:
		var v T
		decodeErr := json.Unmarshal(data, &v)
		if decodeErr == nil {
			p.hits.Add(1)
			p.logger.Debug("cache hit", "key", key)
			return &v, nil
		}
		p.logger.Warn("discarding undecodable cache entry", "key", key, "error", decodeErr)
	case !errors.Is(err, ErrMiss):
		p.logger.Warn("cache read failed", "key", key, "error", err)
	}

	p.misses.Add(1)
	p.logger.Debug("cache miss", "key", key)

	v, err := fetch()
	if err != nil {
		return nil, err
	}

	data, err = json.Marshal(v)
	if err != nil {
		p.logger.Warn("failed to encode cache entry", "key", key, "error", err)
		return v, nil
	}
	if err := p.store.Set(ctx, key, data, p.ttl); err != nil {
		p.logger.Warn("cache write failed", "key", key, "error", err)
	}

	return v, nil
}
