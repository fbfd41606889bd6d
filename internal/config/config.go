package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type Config struct {
	Server struct {
		Port            string
		ReadTimeout     time.Duration
		WriteTimeout    time.Duration
		ShutdownTimeout time.Duration
		LogLevel        string
		AllowOrigins    string
	}

	WeatherAPI struct {
		APIKey       string
		BaseURL      string
		GeoURL       string
		Timeout      time.Duration
		FetchTimeout time.Duration
		SearchLimit  int
	}

	Scheduler struct {
		Enabled       bool
		Schedule      string
		Lang          string
		CacheDuration time.Duration
	}

	Session struct {
		TTL             time.Duration
		CleanupInterval time.Duration
		MaxSessions     int
	}

	SearchCache struct {
		Duration        time.Duration
		CleanupInterval time.Duration
	}

	RateLimit struct {
		RequestsPerSecond float64
		Burst             int
	}

	CircuitBreaker struct {
		Threshold int
		Timeout   time.Duration
	}

	Retry struct {
		MaxRetries int
		Delay      time.Duration
		Multiplier float64
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
	cfg.Server.ShutdownTimeout = parseDuration(getEnv("SHUTDOWN_TIMEOUT", "30s"))
	cfg.Server.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.Server.AllowOrigins = getEnv("CORS_ALLOW_ORIGINS", "*")

	// Weather API configuration
	cfg.WeatherAPI.APIKey = getEnv("OPENWEATHER_API_KEY", "")
	cfg.WeatherAPI.BaseURL = getEnv("OPENWEATHER_URL", "https://api.openweathermap.org/data/2.5")
	cfg.WeatherAPI.GeoURL = getEnv("OPENWEATHER_GEO_URL", "https://api.openweathermap.org/geo/1.0")
	cfg.WeatherAPI.Timeout = parseDuration(getEnv("OPENWEATHER_TIMEOUT", "10s"))
	cfg.WeatherAPI.FetchTimeout = parseDuration(getEnv("FETCH_TIMEOUT", "20s"))
	cfg.WeatherAPI.SearchLimit = parseInt(getEnv("SEARCH_LIMIT", "5"))

	// Featured city refresh
	cfg.Scheduler.Enabled = parseBool(getEnv("FEATURED_REFRESH_ENABLED", "true"))
	cfg.Scheduler.Schedule = getEnv("FEATURED_REFRESH_SCHEDULE", "@every 15m")
	cfg.Scheduler.Lang = getEnv("FEATURED_REFRESH_LANG", "en")
	cfg.Scheduler.CacheDuration = parseDuration(getEnv("FEATURED_CACHE_DURATION", "1h"))

	// Session configuration
	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "30m"))
	cfg.Session.CleanupInterval = parseDuration(getEnv("SESSION_CLEANUP_INTERVAL", "1m"))
	cfg.Session.MaxSessions = parseInt(getEnv("MAX_SESSIONS", "1000"))

	// Search cache configuration
	cfg.SearchCache.Duration = parseDuration(getEnv("SEARCH_CACHE_DURATION", "10m"))
	cfg.SearchCache.CleanupInterval = parseDuration(getEnv("SEARCH_CACHE_CLEANUP", "20m"))

	// Outbound rate limit (free tier allows 60 calls/minute)
	cfg.RateLimit.RequestsPerSecond = parseFloat(getEnv("RATE_LIMIT_RPS", "1"))
	cfg.RateLimit.Burst = parseInt(getEnv("RATE_LIMIT_BURST", "5"))

	// Circuit breaker configuration
	cfg.CircuitBreaker.Threshold = parseInt(getEnv("CIRCUIT_BREAKER_THRESHOLD", "3"))
	cfg.CircuitBreaker.Timeout = parseDuration(getEnv("CIRCUIT_BREAKER_TIMEOUT", "30s"))

	// Retry configuration. Zero keeps the single-attempt fetch contract.
	cfg.Retry.MaxRetries = parseInt(getEnv("MAX_RETRIES", "0"))
	cfg.Retry.Delay = parseDuration(getEnv("RETRY_DELAY", "1s"))
	cfg.Retry.Multiplier = parseFloat(getEnv("RETRY_MULTIPLIER", "2"))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c *Config) Validate() error {
	if c.WeatherAPI.APIKey == "" {
		return fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	if c.WeatherAPI.SearchLimit <= 0 {
		return fmt.Errorf("SEARCH_LIMIT must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.RateLimit.RequestsPerSecond <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}
	if c.Retry.MaxRetries < 0 {
		return fmt.Errorf("MAX_RETRIES must not be negative")
	}
	return nil
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

func parseBool(value string) bool {
	boolValue, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		zap.L().Warn("Failed to parse bool", zap.String("value", value), zap.Error(err))
		return false
	}
	return boolValue
}
