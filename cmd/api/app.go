package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humagin"
	"github.com/gin-gonic/gin"

	"meteo-widget/internal/cache"
	"meteo-widget/internal/config"
	"meteo-widget/internal/location"
	"meteo-widget/internal/providers/openmeteo"
	"meteo-widget/internal/providers/openstreetmap"
	"meteo-widget/internal/suggest"
	"meteo-widget/internal/timezone"
	"meteo-widget/internal/weather"
	"meteo-widget/internal/widget"
)

// Providers are the outbound dependencies of the app
type Providers struct {
	Forecast weather.ForecastProvider
	Geocode  weather.GeocodeProvider
	Timezone timezone.Service   // optional
	Namer    weather.PlaceNamer // optional
}

// App encapsulates application dependencies
type App struct {
	router         *gin.Engine
	api            huma.API
	logger         *slog.Logger
	geocoder       weather.GeocodeProvider
	weatherService weather.Service
	widget         *widget.Handler
	cacheStats     func() (hits, misses int64)
	closers        []func() error
}

// NewApp creates the application with the Open-Meteo providers, wrapped in
// the response cache and paired with reverse geocoding when configured
func NewApp(cfg *config.Config, logger *slog.Logger) *App {
	client := openmeteo.NewClient(cfg.OpenMeteo, logger)
	providers := Providers{Forecast: client, Geocode: client}

	tzSvc, err := timezone.NewService()
	if err != nil {
		logger.Warn("timezone lookup unavailable, falling back to UTC", "error", err)
	} else {
		providers.Timezone = tzSvc
	}

	var (
		closers    []func() error
		cacheStats func() (int64, int64)
	)
	if cfg.Cache.Enabled {
		store := cache.NewRedisStore(cfg.Cache)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		err := store.Ping(ctx)
		cancel()
		if err != nil {
			logger.Warn("response cache disabled, redis unreachable", "addr", cfg.Cache.RedisAddr, "error", err)
			_ = store.Close()
		} else {
			cached := cache.NewProvider(client, client, store, cfg.Cache.TTL, logger)
			providers.Forecast, providers.Geocode = cached, cached
			closers = append(closers, store.Close)
			cacheStats = cached.Stats
			logger.Info("response cache enabled", "addr", cfg.Cache.RedisAddr, "ttl", cfg.Cache.TTL)
		}
	}

	if cfg.Widget.ReverseGeocode {
		providers.Namer = location.NewLocationService(openstreetmap.NewClient(cfg.Nominatim, logger), logger)
	}

	app := NewAppWithProviders(cfg, logger, providers)
	app.closers = closers
	app.cacheStats = cacheStats
	return app
}

// NewAppWithProviders creates the application with injected providers.
// This is useful for testing with mock providers.
func NewAppWithProviders(cfg *config.Config, logger *slog.Logger, providers Providers) *App {
	gin.SetMode(cfg.Server.GinMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Create Huma API with the gin adapter
	humaConfig := huma.DefaultConfig("Meteo Widget API", "1.0.0")
	humaConfig.Info.Description = "Place suggestions and current weather with a 5-day forecast, backed by Open-Meteo"
	humaConfig.Servers = []*huma.Server{
		{URL: "http://localhost" + cfg.GetServerAddr(), Description: "Development server"},
	}

	api := humagin.New(router, humaConfig)

	service := weather.NewWeatherServiceWithProviders(providers.Forecast, providers.Geocode, providers.Timezone, logger)

	app := &App{
		router:         router,
		api:            api,
		logger:         logger,
		geocoder:       providers.Geocode,
		weatherService: service,
		widget:         widget.NewHandler(service, providers.Geocode, providers.Namer, suggest.OptionsFromConfig(cfg.Widget), logger),
	}

	logger.Info("application initialized",
		"reverseGeocode", providers.Namer != nil,
		"debounce", cfg.Widget.Debounce,
	)

	// Register routes
	app.registerRoutes()

	return app
}

// Run starts the HTTP server
func (app *App) Run(addr string) error {
	defer app.Close()
	return http.ListenAndServe(addr, app.router)
}

// Close releases connections held by the providers
func (app *App) Close() {
	for _, closeFn := range app.closers {
		if err := closeFn(); err != nil {
			app.logger.Warn("failed to close provider", "error", err)
		}
	}
	app.closers = nil
}
