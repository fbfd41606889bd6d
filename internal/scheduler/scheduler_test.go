package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeBatchFetcher struct {
	mu      sync.Mutex
	calls   int
	langs   []string
	failIdx map[int]bool
	block   chan struct{}
}

func (f *fakeBatchFetcher) FetchMany(ctx context.Context, coords []models.Coordinate, lang string) (map[int]*models.WeatherReport, error) {
	f.mu.Lock()
	f.calls++
	f.langs = append(f.langs, lang)
	block := f.block
	f.mu.Unlock()

	if block != nil {
		<-block
	}

	reports := make(map[int]*models.WeatherReport)
	for i, c := range coords {
		if f.failIdx[i] {
			continue
		}
		reports[i] = &models.WeatherReport{Current: &models.WeatherSnapshot{Coordinate: c}}
	}
	if len(reports) < len(coords) {
		return reports, errors.New("some locations failed")
	}
	return reports, nil
}

type memoryStore struct {
	mu    sync.Mutex
	items map[int]*models.WeatherReport
}

func (m *memoryStore) Set(index int, report *models.WeatherReport) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.items == nil {
		m.items = make(map[int]*models.WeatherReport)
	}
	m.items[index] = report
}

func TestScheduler_RunOnce(t *testing.T) {
	fetcher := &fakeBatchFetcher{failIdx: map[int]bool{2: true}}
	store := &memoryStore{}
	metrics := observability.NewMetricsForTesting()
	clock := clockwork.NewFakeClockAt(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
	s := NewScheduler(fetcher, store, "@every 15m", "tr", metrics, clock, zap.NewNop())

	err := s.RunOnce(context.Background())

	require.Error(t, err)
	assert.Len(t, store.items, len(models.FeaturedCities)-1)
	assert.Equal(t, models.FeaturedCities[0].Coordinate, store.items[0].Current.Coordinate)
	assert.Nil(t, store.items[2])
	assert.Equal(t, []string{"tr"}, fetcher.langs)
	assert.Equal(t, float64(len(models.FeaturedCities)-1), testutil.ToFloat64(metrics.FeaturedRefresh.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.FeaturedRefresh.WithLabelValues("error")))
	assert.Equal(t, clock.Now(), s.GetStatus()["last_run"])
}

func TestScheduler_SkipsOverlappingRuns(t *testing.T) {
	block := make(chan struct{})
	fetcher := &fakeBatchFetcher{block: block}
	s := NewScheduler(fetcher, &memoryStore{}, "@every 15m", "en", observability.NewMetricsForTesting(), clockwork.NewFakeClock(), zap.NewNop())

	done := make(chan error, 1)
	go func() { done <- s.RunOnce(context.Background()) }()

	require.Eventually(t, func() bool {
		fetcher.mu.Lock()
		defer fetcher.mu.Unlock()
		return fetcher.calls == 1
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, s.RunOnce(context.Background()))
	close(block)
	require.NoError(t, <-done)

	fetcher.mu.Lock()
	defer fetcher.mu.Unlock()
	assert.Equal(t, 1, fetcher.calls)
}

func TestScheduler_StartRejectsBadSchedule(t *testing.T) {
	s := NewScheduler(&fakeBatchFetcher{}, &memoryStore{}, "every now and then", "en", observability.NewMetricsForTesting(), clockwork.NewFakeClock(), zap.NewNop())

	err := s.Start()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid refresh schedule")
	assert.Equal(t, false, s.GetStatus()["running"])
}

func TestScheduler_StartAndStop(t *testing.T) {
	fetcher := &fakeBatchFetcher{}
	store := &memoryStore{}
	s := NewScheduler(fetcher, store, "@every 1h", "en", observability.NewMetricsForTesting(), clockwork.NewFakeClock(), zap.NewNop())

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())

	require.Eventually(t, func() bool {
		store.mu.Lock()
		defer store.mu.Unlock()
		return len(store.items) == len(models.FeaturedCities)
	}, time.Second, 5*time.Millisecond)

	status := s.GetStatus()
	assert.Equal(t, true, status["running"])
	assert.Contains(t, status, "next_run")

	s.Stop()
	assert.Equal(t, false, s.GetStatus()["running"])
}
