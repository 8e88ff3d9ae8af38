package location

import (
	"context"
	"fmt"
	"log/slog"

	"meteo-widget/internal/providers/openstreetmap"
	"meteo-widget/internal/types"
)

// Service names coordinates for display
type Service interface {
	// Name returns "locality, country" for the coordinate
	Name(ctx context.Context, coords types.Coords) (string, error)
}

// ReverseGeocodeProvider defines the interface for location data providers
type ReverseGeocodeProvider interface {
	Lookup(ctx context.Context, latitude, longitude float64) (*openstreetmap.LookupAPIResponse, error)
}

// locationService implements the Service interface
type locationService struct {
	locationProvider ReverseGeocodeProvider
	logger           *slog.Logger
}

// NewLocationService creates a new location service with the real provider client
func NewLocationService(client *openstreetmap.Client, logger *slog.Logger) Service {
	return NewLocationServiceWithProvider(client, logger)
}

// NewLocationServiceWithProvider creates a new location service with a custom provider.
// This is useful for testing with mock providers.
func NewLocationServiceWithProvider(locationProvider ReverseGeocodeProvider, logger *slog.Logger) Service {
	return &locationService{
		locationProvider: locationProvider,
		logger:           logger.With("component", "location-service"),
	}
}

func (s *locationService) Name(ctx context.Context, coords types.Coords) (string, error) {
	resp, err := s.locationProvider.Lookup(ctx, coords.Latitude, coords.Longitude)
	if err != nil {
		return "", fmt.Errorf("failed to get location: %w", err)
	}

	info, err := s.translateLocationInfo(resp)
	if err != nil {
		return "", err
	}

	name := info.DisplayName()
	if info.Country == "" {
		name = info.Name
	}

	s.logger.Debug("named coordinates",
		"latitude", coords.Latitude,
		"longitude", coords.Longitude,
		"name", name,
	)

	return name, nil
}

// translateLocationInfo converts a Nominatim reverse lookup into a place.
// The locality wins over the feature name so a point in a park still reads
// as the surrounding town.
func (s *locationService) translateLocationInfo(resp *openstreetmap.LookupAPIResponse) (types.Place, error) {
	if resp == nil {
		return types.Place{}, fmt.Errorf("lookup response is nil")
	}

	name := resp.Address.Locality()
	if name == "" {
		name = resp.Name
	}
	if name == "" {
		return types.Place{}, fmt.Errorf("lookup response has no usable name")
	}

	place := types.Place{
		Name:    name,
		Country: resp.Address.Country,
		Admin1:  resp.Address.State,
	}
	return place, nil
}
