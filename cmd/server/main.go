package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"weatherdesk/internal/api"
	"weatherdesk/internal/config"
	"weatherdesk/internal/scheduler"
	"weatherdesk/internal/services"
	"weatherdesk/pkg/client"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting weatherdesk")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	clientConfig := client.ClientConfig{
		Timeout:        cfg.Upstream.HTTPTimeout,
		RateLimitRPS:   cfg.Upstream.RateLimitRPS,
		RateLimitBurst: cfg.Upstream.RateLimitBurst,
		BreakerTimeout: cfg.Upstream.BreakerTimeout,
	}

	geocoding := client.NewGeocodingClient(cfg.Upstream.GeocodingURL, clientConfig, logger)
	forecast := client.NewForecastClient(cfg.Upstream.ForecastURL, clientConfig, logger)

	// Wire the session
	searchCtrl := services.NewSearchController(geocoding, cfg.Search.Debounce, logger)
	weatherCtrl := services.NewWeatherController(forecast, cfg.Weather.FetchTimeout, logger)
	session := services.NewSession(searchCtrl, weatherCtrl, logger)

	// Periodic refresh of the selected place
	refresher := scheduler.NewRefresher(weatherCtrl, cfg.Weather.RefreshInterval, logger)
	if err := refresher.Start(); err != nil {
		logger.Fatal("Failed to start refresh scheduler", zap.Error(err))
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: errorHandler,
	})

	// Setup handlers and routes
	handler := api.NewHandler(session, logger)
	api.SetupRoutes(app, handler, logger)

	// Start server in goroutine
	go func() {
		addr := ":" + cfg.Server.Port
		logger.Info("Starting server", zap.String("address", addr))

		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Stop scheduler
	refresher.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	logger.Info("Server stopped")
}

func errorHandler(c *fiber.Ctx, err error) error {
	zap.L().Error("HTTP error",
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err))

	// Default to 500 status code
	code := fiber.StatusInternalServerError

	// Check if it's a Fiber error
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   err.Error(),
		"success": false,
	})
}
