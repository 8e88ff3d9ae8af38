package main

import (
	"context"
)

// CacheStatus reports response cache usage
type CacheStatus struct {
	Hits   int64 `json:"hits" doc:"Responses served from the cache"`
	Misses int64 `json:"misses" doc:"Responses fetched from Open-Meteo"`
}

// PingOutput represents the response for the ping endpoint
type PingOutput struct {
	Body struct {
		Message string       `json:"message" example:"pong" doc:"Response message"`
		Cache   *CacheStatus `json:"cache,omitempty" doc:"Present when the response cache is enabled"`
	}
}

// handlePing is a health check endpoint that returns a simple pong message
func (app *App) handlePing(ctx context.Context, input *struct{}) (*PingOutput, error) {
	resp := &PingOutput{}
	resp.Body.Message = "pong"
	if app.cacheStats != nil {
		hits, misses := app.cacheStats()
		resp.Body.Cache = &CacheStatus{Hits: hits, Misses: misses}
	}
	return resp, nil
}
