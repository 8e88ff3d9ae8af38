package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"

	"meteo-widget/internal/config"
)

func main() {
	// A .env file is optional; real environment variables take precedence
	if err := godotenv.Load(); err == nil {
		log.Println("loaded environment from .env")
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := cfg.NewLogger()
	slog.SetDefault(logger) // Set as default logger for the application

	// Create app
	app := NewApp(cfg, logger)

	// Start server
	logger.Info("starting server", "addr", cfg.GetServerAddr())
	if err := app.Run(cfg.GetServerAddr()); err != nil {
		logger.Error("server failed", "error", err)
		log.Fatal(err)
	}
}
