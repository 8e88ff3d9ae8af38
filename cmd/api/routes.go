package main

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gin-gonic/gin"

	"meteo-widget/internal/widget"
)

// registerRoutes sets up all API endpoints
func (app *App) registerRoutes() {
	// Widget page and its session socket
	app.router.GET("/", gin.WrapH(widget.Page()))
	app.router.GET("/ws", gin.WrapH(app.widget))

	// Health check endpoint
	huma.Register(app.api, huma.Operation{
		OperationID: "ping",
		Method:      http.MethodGet,
		Path:        "/ping",
		Summary:     "Ping health check",
		Description: "Check if the API is running",
		Tags:        []string{"health"},
	}, app.handlePing)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-places",
		Method:      http.MethodGet,
		Path:        "/api/places",
		Summary:     "Suggest places",
		Description: "Return up to count places whose name matches, as shown in the suggestion list",
		Tags:        []string{"places"},
		Errors:      []int{http.StatusBadGateway},
	}, app.handleGetPlaces)

	huma.Register(app.api, huma.Operation{
		OperationID: "get-forecast",
		Method:      http.MethodGet,
		Path:        "/api/forecast",
		Summary:     "Get weather for a coordinate",
		Description: "Return current conditions and the next five days for a latitude and longitude",
		Tags:        []string{"weather"},
		Errors:      []int{http.StatusBadGateway},
	}, app.handleGetForecast)

	huma.Register(app.api, huma.Operation{
		OperationID: "search-weather",
		Method:      http.MethodGet,
		Path:        "/api/search",
		Summary:     "Get weather for a city",
		Description: "Geocode a city name to its best match and return its weather",
		Tags:        []string{"weather"},
		Errors:      []int{http.StatusNotFound, http.StatusBadGateway},
	}, app.handleSearch)
}
