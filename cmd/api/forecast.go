package main

import (
	"context"
	"errors"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

// GetForecastInput defines the query parameters for the forecast endpoint
type GetForecastInput struct {
	Latitude  float64 `query:"latitude" required:"true" minimum:"-90" maximum:"90" example:"52.52437" doc:"Latitude in decimal degrees"`
	Longitude float64 `query:"longitude" required:"true" minimum:"-180" maximum:"180" example:"13.41053" doc:"Longitude in decimal degrees"`
	Name      string  `query:"name" example:"Berlin, Germany" doc:"Display name, defaults to \"Your Location\""`
}

// SearchInput defines the query parameters for the search endpoint
type SearchInput struct {
	City string `query:"city" required:"true" minLength:"1" example:"Berlin" doc:"City name"`
}

// WeatherOutput represents a weather view response
type WeatherOutput struct {
	Body *types.WeatherView
}

func (app *App) handleGetForecast(ctx context.Context, input *GetForecastInput) (*WeatherOutput, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = weather.YourLocationLabel
	}

	view, err := app.weatherService.Fetch(ctx, types.NewCoords(input.Latitude, input.Longitude), name)
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &WeatherOutput{Body: view}, nil
}

func (app *App) handleSearch(ctx context.Context, input *SearchInput) (*WeatherOutput, error) {
	place, err := app.weatherService.FindPlace(ctx, input.City)
	if err != nil {
		return nil, toHTTPError(err)
	}

	view, err := app.weatherService.Fetch(ctx, place.Coords(), place.DisplayName())
	if err != nil {
		return nil, toHTTPError(err)
	}
	return &WeatherOutput{Body: view}, nil
}

// toHTTPError maps weather errors to the messages the widget shows
func toHTTPError(err error) error {
	if errors.Is(err, weather.ErrCityNotFound) {
		return huma.Error404NotFound(weather.MsgCityNotFound)
	}
	return huma.Error502BadGateway(weather.MsgFetchFailed)
}
