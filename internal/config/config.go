package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	OpenMeteo OpenMeteoConfig
	Nominatim NominatimConfig
	Widget    WidgetConfig
	Cache     CacheConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port    int
	GinMode string // debug, release, test
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, text
}

// OpenMeteoConfig holds the geocoding and forecast API settings
type OpenMeteoConfig struct {
	GeocodeURL  string
	ForecastURL string
	Language    string
	RateLimit   float64 // requests per second shared by all sessions
	Burst       int
}

// NominatimConfig holds the reverse geocoding API settings
type NominatimConfig struct {
	URL       string
	UserAgent string
}

// WidgetConfig holds the suggestion and presentation settings
type WidgetConfig struct {
	Debounce                time.Duration
	MinQueryLength          int
	SuggestionCount         int
	DiscardStaleSuggestions bool
	ReverseGeocode          bool
}

// CacheConfig holds the optional response cache settings
type CacheConfig struct {
	Enabled   bool
	RedisAddr string
	Password  string
	DB        int
	TTL       time.Duration
}

// Load reads configuration from file and environment variables
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads configuration from the given file, or searches the default
// locations when path is empty
func LoadFile(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("$HOME/.meteo-widget")
	}

	setDefaults()

	// Read from environment variables
	viper.SetEnvPrefix("METEO_WIDGET")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// It's okay if config file doesn't exist, we have defaults
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.ginmode", "release")
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	viper.SetDefault("openmeteo.geocodeurl", "https://geocoding-api.open-meteo.com")
	viper.SetDefault("openmeteo.forecasturl", "https://api.open-meteo.com")
	viper.SetDefault("openmeteo.language", "en")
	viper.SetDefault("openmeteo.ratelimit", 10.0)
	viper.SetDefault("openmeteo.burst", 5)

	viper.SetDefault("nominatim.url", "https://nominatim.openstreetmap.org")
	viper.SetDefault("nominatim.useragent", "meteo-widget")

	viper.SetDefault("widget.debounce", 300*time.Millisecond)
	viper.SetDefault("widget.minquerylength", 2)
	viper.SetDefault("widget.suggestioncount", 5)
	viper.SetDefault("widget.discardstalesuggestions", false)
	viper.SetDefault("widget.reversegeocode", false)

	viper.SetDefault("cache.enabled", false)
	viper.SetDefault("cache.redisaddr", "localhost:6379")
	viper.SetDefault("cache.password", "")
	viper.SetDefault("cache.db", 0)
	viper.SetDefault("cache.ttl", 10*time.Minute)
}

// Validate rejects settings the widget cannot run with
func (c *Config) Validate() error {
	switch c.Server.GinMode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("server.ginMode must be debug, release or test, got %q", c.Server.GinMode)
	}
	if c.Widget.Debounce < 0 {
		return fmt.Errorf("widget.debounce must not be negative, got %s", c.Widget.Debounce)
	}
	if c.Widget.MinQueryLength < 1 {
		return fmt.Errorf("widget.minQueryLength must be at least 1, got %d", c.Widget.MinQueryLength)
	}
	if c.Widget.SuggestionCount < 1 {
		return fmt.Errorf("widget.suggestionCount must be at least 1, got %d", c.Widget.SuggestionCount)
	}
	if c.OpenMeteo.RateLimit <= 0 {
		return fmt.Errorf("openMeteo.rateLimit must be positive, got %v", c.OpenMeteo.RateLimit)
	}
	if c.Cache.Enabled && c.Cache.TTL <= 0 {
		return fmt.Errorf("cache.ttl must be positive when the cache is enabled, got %s", c.Cache.TTL)
	}
	return nil
}

// GetServerAddr returns the server address in the format ":port"
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger creates a new slog.Logger based on the configuration
func (c *Config) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn", "warning":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Choose handler based on format
	var handler slog.Handler
	switch strings.ToLower(c.Log.Format) {
	case "json":
		handler = slog.NewJSONHandler(os.Stderr, opts)
	default: // "text" or anything else
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
