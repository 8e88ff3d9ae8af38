package main

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"meteo-widget/internal/types"
	"meteo-widget/internal/weather"
)

// GetPlacesInput defines the query parameters for the places endpoint
type GetPlacesInput struct {
	Name  string `query:"name" required:"true" minLength:"1" example:"Paris" doc:"Place name or prefix"`
	Count int    `query:"count" minimum:"1" maximum:"10" default:"5" doc:"Maximum number of places"`
}

// GetPlacesOutput represents the response for the places endpoint
type GetPlacesOutput struct {
	Body struct {
		Places []types.Place `json:"places" doc:"Matching places, best first"`
	}
}

func (app *App) handleGetPlaces(ctx context.Context, input *GetPlacesInput) (*GetPlacesOutput, error) {
	name := strings.TrimSpace(input.Name)

	resp, err := app.geocoder.SearchPlaces(ctx, name, input.Count)
	if err != nil {
		app.logger.Error("failed to search places", "name", name, "error", err)
		return nil, huma.Error502BadGateway("failed to fetch places")
	}

	out := &GetPlacesOutput{}
	out.Body.Places = weather.PlacesFromResponse(resp)
	if out.Body.Places == nil {
		out.Body.Places = []types.Place{}
	}
	return out, nil
}
