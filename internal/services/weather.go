package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type WeatherClient interface {
	GetCurrentWeather(ctx context.Context, coord models.Coordinate, lang string) (*models.WeatherSnapshot, error)
	GetForecast(ctx context.Context, coord models.Coordinate, lang string) (*models.ForecastSeries, error)
}

// WeatherService performs the two-call weather fetch for a coordinate.
type WeatherService struct {
	client        WeatherClient
	clock         clockwork.Clock
	logger        *zap.Logger
	mu            sync.RWMutex
	lastFetchTime time.Time
	successCount  int
	failureCount  int
}

func NewWeatherService(client WeatherClient, clock clockwork.Clock, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		client: client,
		clock:  clock,
		logger: logger,
	}
}

// Fetch issues one current-conditions request and, if that succeeds, one
// forecast request. Either failure fails the whole fetch and no partial
// report is returned.
func (w *WeatherService) Fetch(ctx context.Context, coord models.Coordinate, lang string) (*models.WeatherReport, error) {
	start := w.clock.Now()

	current, err := w.client.GetCurrentWeather(ctx, coord, lang)
	if err != nil {
		w.recordFailure(start)
		return nil, fmt.Errorf("current conditions at %.4f,%.4f: %w", coord.Lat, coord.Lon, err)
	}

	forecast, err := w.client.GetForecast(ctx, coord, lang)
	if err != nil {
		w.recordFailure(start)
		return nil, fmt.Errorf("forecast at %.4f,%.4f: %w", coord.Lat, coord.Lon, err)
	}

	w.mu.Lock()
	w.lastFetchTime = start
	w.successCount++
	w.mu.Unlock()

	w.logger.Debug("Weather fetched",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.String("lang", lang),
		zap.Int("forecast_entries", len(forecast.Entries)),
		zap.Duration("duration", w.clock.Since(start)))

	return &models.WeatherReport{
		Current:   current,
		Forecast:  forecast,
		FetchedAt: w.clock.Now(),
	}, nil
}

// FetchMany fetches every coordinate concurrently. The result is keyed by
// index into coords and holds only the successful fetches.
func (w *WeatherService) FetchMany(ctx context.Context, coords []models.Coordinate, lang string) (map[int]*models.WeatherReport, error) {
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		reports = make(map[int]*models.WeatherReport, len(coords))
		failed  int
	)

	startTime := w.clock.Now()

	for i, coord := range coords {
		wg.Add(1)
		go func(i int, coord models.Coordinate) {
			defer wg.Done()

			report, err := w.Fetch(ctx, coord, lang)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				w.logger.Warn("Failed to fetch weather for location",
					zap.Int("index", i),
					zap.Error(err))
				failed++
				return
			}
			reports[i] = report
		}(i, coord)
	}

	wg.Wait()

	w.logger.Info("Weather batch fetch completed",
		zap.Int("locations", len(coords)),
		zap.Int("success", len(reports)),
		zap.Int("failure", failed),
		zap.Duration("duration", w.clock.Since(startTime)))

	if failed > 0 {
		return reports, fmt.Errorf("%d of %d locations failed to fetch", failed, len(coords))
	}
	return reports, nil
}

func (w *WeatherService) recordFailure(start time.Time) {
	w.mu.Lock()
	w.lastFetchTime = start
	w.failureCount++
	w.mu.Unlock()
}

func (w *WeatherService) GetStats() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	return map[string]interface{}{
		"last_fetch_time": w.lastFetchTime,
		"success_count":   w.successCount,
		"failure_count":   w.failureCount,
	}
}
