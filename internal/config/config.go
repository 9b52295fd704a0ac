package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port         string
		ReadTimeout  time.Duration
		WriteTimeout time.Duration
	}

	Upstream struct {
		GeocodingURL   string
		ForecastURL    string
		HTTPTimeout    time.Duration
		RateLimitRPS   float64
		RateLimitBurst int
		BreakerTimeout time.Duration
	}

	Search struct {
		Debounce time.Duration
	}

	Weather struct {
		FetchTimeout    time.Duration
		RefreshInterval time.Duration
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		zap.L().Info("No .env file found, using environment variables")
	}

	cfg := &Config{}

	// Server configuration
	cfg.Server.Port = getEnv("FIBER_PORT", "8080")
	cfg.Server.ReadTimeout = parseDuration(getEnv("FIBER_READ_TIMEOUT", "10s"))
	cfg.Server.WriteTimeout = parseDuration(getEnv("FIBER_WRITE_TIMEOUT", "10s"))

	// Upstream API configuration
	cfg.Upstream.GeocodingURL = getEnv("GEOCODING_URL", "https://geocoding-api.open-meteo.com/v1")
	cfg.Upstream.ForecastURL = getEnv("FORECAST_URL", "https://api.open-meteo.com/v1")
	cfg.Upstream.HTTPTimeout = parseDuration(getEnv("HTTP_TIMEOUT", "10s"))
	cfg.Upstream.RateLimitRPS = parseFloat(getEnv("RATE_LIMIT_RPS", "5"))
	cfg.Upstream.RateLimitBurst = parseInt(getEnv("RATE_LIMIT_BURST", "5"))
	cfg.Upstream.BreakerTimeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Search configuration
	cfg.Search.Debounce = parseDuration(getEnv("SEARCH_DEBOUNCE", "300ms"))

	// Weather configuration
	cfg.Weather.FetchTimeout = parseDuration(getEnv("WEATHER_FETCH_TIMEOUT", "15s"))
	cfg.Weather.RefreshInterval = parseDuration(getEnv("WEATHER_REFRESH_INTERVAL", "15m"))

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(value string) time.Duration {
	duration, err := time.ParseDuration(value)
	if err != nil {
		zap.L().Warn("Failed to parse duration", zap.String("value", value), zap.Error(err))
		return 0
	}
	return duration
}

func parseInt(value string) int {
	intValue, err := strconv.Atoi(value)
	if err != nil {
		zap.L().Warn("Failed to parse int", zap.String("value", value), zap.Error(err))
		return 0
	}
	return intValue
}

func parseFloat(value string) float64 {
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		zap.L().Warn("Failed to parse float", zap.String("value", value), zap.Error(err))
		return 0
	}
	return floatValue
}
