package services

import (
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type CacheItem struct {
	Report    *models.WeatherReport
	ExpiresAt time.Time
}

// SnapshotCache keeps the latest report for each featured city, keyed by
// index into models.FeaturedCities.
type SnapshotCache struct {
	mu              sync.RWMutex
	items           map[int]CacheItem
	clock           clockwork.Clock
	logger          *zap.Logger
	defaultDuration time.Duration
	cleanupInterval time.Duration
	stopCleanup     chan struct{}
	stopOnce        sync.Once
}

func NewSnapshotCache(defaultDuration time.Duration, clock clockwork.Clock, logger *zap.Logger) *SnapshotCache {
	return &SnapshotCache{
		items:           make(map[int]CacheItem),
		clock:           clock,
		logger:          logger,
		defaultDuration: defaultDuration,
		cleanupInterval: time.Minute,
		stopCleanup:     make(chan struct{}),
	}
}

// Start launches the background expiry loop.
func (c *SnapshotCache) Start() {
	go c.startCleanup()
}

func (c *SnapshotCache) Set(index int, report *models.WeatherReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.clock.Now().Add(c.defaultDuration)
	c.items[index] = CacheItem{
		Report:    report,
		ExpiresAt: expiresAt,
	}

	c.logger.Debug("Featured city snapshot cached",
		zap.Int("index", index),
		zap.Time("expires_at", expiresAt))
}

// Snapshots returns the current conditions of every unexpired entry.
func (c *SnapshotCache) Snapshots() map[int]*models.WeatherSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.clock.Now()
	out := make(map[int]*models.WeatherSnapshot, len(c.items))
	for index, item := range c.items {
		if now.After(item.ExpiresAt) || item.Report == nil {
			continue
		}
		out[index] = item.Report.Current
	}
	return out
}

func (c *SnapshotCache) startCleanup() {
	ticker := c.clock.NewTicker(c.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			c.cleanup()
		case <-c.stopCleanup:
			return
		}
	}
}

func (c *SnapshotCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	expiredCount := 0

	for index, item := range c.items {
		if now.After(item.ExpiresAt) {
			delete(c.items, index)
			expiredCount++
		}
	}

	if expiredCount > 0 {
		c.logger.Debug("Cleaned expired snapshots",
			zap.Int("count", expiredCount))
	}
}

func (c *SnapshotCache) Stop() {
	c.stopOnce.Do(func() { close(c.stopCleanup) })
}

func (c *SnapshotCache) GetStats() map[string]interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return map[string]interface{}{
		"items":            len(c.items),
		"default_duration": c.defaultDuration.String(),
	}
}
