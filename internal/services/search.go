package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/bobby-s-dev/weather-map/pkg/client"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

type Geocoder interface {
	Geocode(ctx context.Context, query string, limit int) ([]models.SearchResult, error)
}

// SearchService resolves place names, caching results per normalized query.
type SearchService struct {
	geocoder Geocoder
	cache    *cache.Cache
	limit    int
	metrics  *observability.Metrics
	logger   *zap.Logger
}

func NewSearchService(geocoder Geocoder, limit int, duration, cleanupInterval time.Duration, metrics *observability.Metrics, logger *zap.Logger) *SearchService {
	return &SearchService{
		geocoder: geocoder,
		cache:    cache.New(duration, cleanupInterval),
		limit:    limit,
		metrics:  metrics,
		logger:   logger,
	}
}

func (s *SearchService) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, client.ErrEmptyQuery
	}

	key := strings.ToLower(query) + "|" + strconv.Itoa(s.limit)
	if cached, found := s.cache.Get(key); found {
		s.metrics.SearchCache.WithLabelValues("hit").Inc()
		s.logger.Debug("Search cache hit", zap.String("query", query))
		return cached.([]models.SearchResult), nil
	}
	s.metrics.SearchCache.WithLabelValues("miss").Inc()

	results, err := s.geocoder.Geocode(ctx, query, s.limit)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	s.cache.Set(key, results, cache.DefaultExpiration)
	return results, nil
}

func (s *SearchService) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"cached_queries": s.cache.ItemCount(),
		"limit":          s.limit,
	}
}
