package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/bobby-s-dev/weather-map/internal/api"
	"github.com/bobby-s-dev/weather-map/internal/config"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/bobby-s-dev/weather-map/internal/scheduler"
	"github.com/bobby-s-dev/weather-map/internal/services"
	"github.com/bobby-s-dev/weather-map/pkg/client"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger := newLogger(os.Getenv("LOG_LEVEL"))
	defer logger.Sync()

	zap.ReplaceGlobals(logger)
	logger.Info("Starting Weather Map Service")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	clock := clockwork.NewRealClock()
	metrics := observability.NewMetrics()

	// Upstream clients. The featured refresh has its own limiter and breaker.
	owm := newWeatherClient("openweather", cfg, metrics, logger)
	featuredOWM := newWeatherClient("openweather-featured", cfg, metrics, logger)

	// Services
	weather := services.NewWeatherService(owm, clock, logger)
	search := services.NewSearchService(
		owm,
		cfg.WeatherAPI.SearchLimit,
		cfg.SearchCache.Duration,
		cfg.SearchCache.CleanupInterval,
		metrics,
		logger,
	)
	sessions := services.NewSessionManager(weather, search, services.SessionConfig{
		TTL:             cfg.Session.TTL,
		CleanupInterval: cfg.Session.CleanupInterval,
		FetchTimeout:    cfg.WeatherAPI.FetchTimeout,
		MaxSessions:     cfg.Session.MaxSessions,
	}, clock, metrics, logger)
	snapshots := services.NewSnapshotCache(cfg.Scheduler.CacheDuration, clock, logger)
	featuredWeather := services.NewWeatherService(featuredOWM, clock, logger)

	// Featured city refresh
	featuredScheduler := scheduler.NewScheduler(
		featuredWeather,
		snapshots,
		cfg.Scheduler.Schedule,
		cfg.Scheduler.Lang,
		metrics,
		clock,
		logger,
	)

	// Create Fiber app
	app := newApp(cfg)

	// Setup handlers and routes
	handler := api.NewHandler(sessions, weather, snapshots, clock, logger)
	handler.RegisterStats("weather", weather.GetStats)
	handler.RegisterStats("featured_weather", featuredWeather.GetStats)
	handler.RegisterStats("search", search.GetStats)
	handler.RegisterStats("sessions", sessions.GetStats)
	handler.RegisterStats("featured_cache", snapshots.GetStats)
	handler.RegisterStats("scheduler", featuredScheduler.GetStatus)
	api.SetupRoutes(app, handler, cfg.Server.AllowOrigins)

	// Start background loops
	sessions.Start()
	snapshots.Start()
	if cfg.Scheduler.Enabled {
		if err := featuredScheduler.Start(); err != nil {
			logger.Fatal("Failed to start scheduler", zap.Error(err))
		}
	}

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
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Stop background loops
	featuredScheduler.Stop()
	snapshots.Stop()

	// Shutdown Fiber app
	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
	}

	sessions.Stop()

	logger.Info("Server stopped")
}

func newApp(cfg *config.Config) *fiber.App {
	return fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: api.ErrorHandler,
	})
}

func newWeatherClient(name string, cfg *config.Config, metrics *observability.Metrics, logger *zap.Logger) *client.OpenWeatherClient {
	return client.NewOpenWeatherClient(
		name,
		cfg.WeatherAPI.APIKey,
		cfg.WeatherAPI.BaseURL,
		cfg.WeatherAPI.GeoURL,
		client.ClientConfig{
			Timeout:        cfg.WeatherAPI.Timeout,
			MaxRetries:     cfg.Retry.MaxRetries,
			RetryDelay:     cfg.Retry.Delay,
			Multiplier:     cfg.Retry.Multiplier,
			Threshold:      cfg.CircuitBreaker.Threshold,
			BreakerTimeout: cfg.CircuitBreaker.Timeout,
			RateLimit:      cfg.RateLimit.RequestsPerSecond,
			Burst:          cfg.RateLimit.Burst,
		},
		metrics,
		logger,
	)
}

func newLogger(level string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if level == "debug" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
