package weather

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/timezone"
	"meteo-widget/internal/types"
)

type ForecastProvider interface {
	// GetForecast fetches current conditions and the daily series for a coordinate
	GetForecast(ctx context.Context, latitude, longitude float64) (*openmeteo.ForecastAPIResponse, error)
}

type GeocodeProvider interface {
	// SearchPlaces returns at most count places matching name
	SearchPlaces(ctx context.Context, name string, count int) (*openmeteo.GeocodingAPIResponse, error)
}

// Service fetches and shapes weather data without touching any display
type Service interface {
	// Fetch returns the render-ready view for a coordinate
	Fetch(ctx context.Context, coords types.Coords, name string) (*types.WeatherView, error)
	// FindPlace geocodes a city name to its best match
	FindPlace(ctx context.Context, city string) (*types.Place, error)
}

type weatherService struct {
	forecastProvider ForecastProvider
	geocodeProvider  GeocodeProvider
	timezoneService  timezone.Service
	now              func() time.Time
	logger           *slog.Logger
}

// NewWeatherService creates a service backed by the Open-Meteo client. The
// timezone service is optional and only consulted when a response carries no
// usable timezone.
func NewWeatherService(client *openmeteo.Client, logger *slog.Logger) Service {
	tzSvc, err := timezone.NewService()
	if err != nil {
		logger.Warn("timezone lookup unavailable, falling back to UTC", "error", err)
	}
	return NewWeatherServiceWithProviders(client, client, tzSvc, logger)
}

// NewWeatherServiceWithProviders creates a service with custom providers.
// This is useful for testing with mock providers.
func NewWeatherServiceWithProviders(
	forecastProvider ForecastProvider,
	geocodeProvider GeocodeProvider,
	timezoneService timezone.Service,
	logger *slog.Logger,
) Service {
	return &weatherService{
		forecastProvider: forecastProvider,
		geocodeProvider:  geocodeProvider,
		timezoneService:  timezoneService,
		now:              time.Now,
		logger:           logger.With("component", "weather-service"),
	}
}

func (s *weatherService) Fetch(ctx context.Context, coords types.Coords, name string) (*types.WeatherView, error) {
	apiResponse, err := s.forecastProvider.GetForecast(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		s.logger.Error("failed to get forecast from provider",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, fmt.Errorf("failed to get forecast: %w", err)
	}

	view, err := mapForecastAPIResponseToView(coords, name, apiResponse, s.now(), s.locationFor(coords, apiResponse.Timezone))
	if err != nil {
		s.logger.Error("failed to map forecast",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
		return nil, err
	}

	return view, nil
}

func (s *weatherService) FindPlace(ctx context.Context, city string) (*types.Place, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityNotFound
	}

	resp, err := s.geocodeProvider.SearchPlaces(ctx, city, 1)
	if err != nil {
		s.logger.Error("failed to geocode city", "city", city, "error", err)
		return nil, fmt.Errorf("failed to geocode %q: %w", city, err)
	}

	if len(resp.Results) == 0 {
		s.logger.Debug("no geocoding results", "city", city)
		return nil, ErrCityNotFound
	}

	place := placeFromResult(resp.Results[0])
	return &place, nil
}

// locationFor resolves where "today" is for the current-date line: the
// timezone Open-Meteo reported, else the one the coordinates fall in, else UTC
func (s *weatherService) locationFor(coords types.Coords, reported string) *time.Location {
	if reported != "" {
		if loc, err := time.LoadLocation(reported); err == nil {
			return loc
		}
		s.logger.Warn("unknown timezone in forecast response", "timezone", reported)
	}

	if s.timezoneService != nil {
		loc, err := s.timezoneService.GetLocation(coords.Latitude, coords.Longitude)
		if err == nil {
			return loc
		}
		s.logger.Warn("failed to determine timezone",
			"latitude", coords.Latitude,
			"longitude", coords.Longitude,
			"error", err,
		)
	}

	return time.UTC
}

// PlacesFromResponse converts geocoding results to place candidates
func PlacesFromResponse(resp *openmeteo.GeocodingAPIResponse) []types.Place {
	if resp == nil {
		return nil
	}
	places := make([]types.Place, 0, len(resp.Results))
	for _, r := range resp.Results {
		places = append(places, placeFromResult(r))
	}
	return places
}

func placeFromResult(r openmeteo.GeocodingResult) types.Place {
	return types.Place{
		Name:      r.Name,
		Country:   r.Country,
		Admin1:    r.Admin1,
		Latitude:  r.Latitude,
		Longitude: r.Longitude,
	}
}
