package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type BatchFetcher interface {
	FetchMany(ctx context.Context, coords []models.Coordinate, lang string) (map[int]*models.WeatherReport, error)
}

type SnapshotStore interface {
	Set(index int, report *models.WeatherReport)
}

// Scheduler refreshes the featured city snapshots on a cron schedule.
type Scheduler struct {
	fetcher    BatchFetcher
	store      SnapshotStore
	metrics    *observability.Metrics
	clock      clockwork.Clock
	logger     *zap.Logger
	cron       *cron.Cron
	schedule   string
	lang       string
	timeout    time.Duration
	mu         sync.Mutex
	running    bool
	refreshing bool
	entryID    cron.EntryID
	lastRun    time.Time
}

func NewScheduler(fetcher BatchFetcher, store SnapshotStore, schedule, lang string, metrics *observability.Metrics, clock clockwork.Clock, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		store:    store,
		metrics:  metrics,
		clock:    clock,
		logger:   logger,
		cron:     cron.New(),
		schedule: schedule,
		lang:     lang,
		timeout:  60 * time.Second,
	}
}

// Start registers the refresh job and runs it once immediately.
func (s *Scheduler) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return nil
	}

	id, err := s.cron.AddFunc(s.schedule, s.runRefresh)
	if err != nil {
		s.mu.Unlock()
		return fmt.Errorf("invalid refresh schedule %q: %w", s.schedule, err)
	}
	s.entryID = id
	s.running = true
	s.mu.Unlock()

	s.cron.Start()
	s.logger.Info("Scheduler started",
		zap.String("schedule", s.schedule),
		zap.Time("next_run", s.cron.Entry(id).Next))

	go s.runRefresh()
	return nil
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

func (s *Scheduler) runRefresh() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		s.logger.Error("Featured city refresh failed", zap.Error(err))
	}
}

// RunOnce refreshes every featured city and stores the successful reports.
// A run that starts while another is in progress is skipped.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	s.mu.Lock()
	if s.refreshing {
		s.mu.Unlock()
		s.logger.Debug("Skipping refresh, previous run still in progress")
		return nil
	}
	s.refreshing = true
	s.lastRun = s.clock.Now()
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.refreshing = false
		s.mu.Unlock()
	}()

	coords := make([]models.Coordinate, len(models.FeaturedCities))
	for i, c := range models.FeaturedCities {
		coords[i] = c.Coordinate
	}

	startTime := s.clock.Now()
	reports, err := s.fetcher.FetchMany(ctx, coords, s.lang)
	for i, report := range reports {
		s.store.Set(i, report)
	}

	s.metrics.FeaturedRefresh.WithLabelValues("success").Add(float64(len(reports)))
	s.metrics.FeaturedRefresh.WithLabelValues("error").Add(float64(len(coords) - len(reports)))

	s.logger.Info("Featured city refresh completed",
		zap.Int("cities", len(coords)),
		zap.Int("refreshed", len(reports)),
		zap.Duration("duration", s.clock.Since(startTime)))

	return err
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":  s.running,
		"schedule": s.schedule,
		"lang":     s.lang,
		"last_run": s.lastRun,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}
