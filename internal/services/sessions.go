package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/bobby-s-dev/weather-map/internal/state"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
)

type WeatherFetcher interface {
	Fetch(ctx context.Context, coord models.Coordinate, lang string) (*models.WeatherReport, error)
}

type LocationSearcher interface {
	Search(ctx context.Context, query string) ([]models.SearchResult, error)
}

type SessionConfig struct {
	TTL             time.Duration
	CleanupInterval time.Duration
	FetchTimeout    time.Duration
	MaxSessions     int
}

type session struct {
	mu       sync.Mutex
	state    state.State
	lastSeen time.Time
}

// SessionManager owns the UI state of every live session. Each session is
// a single writer: actions are applied under its mutex, and effects run in
// goroutines that feed their results back through the same path.
type SessionManager struct {
	weather     WeatherFetcher
	search      LocationSearcher
	config      SessionConfig
	clock       clockwork.Clock
	metrics     *observability.Metrics
	logger      *zap.Logger
	mu          sync.RWMutex
	sessions    map[string]*session
	inflight    sync.WaitGroup
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewSessionManager(weather WeatherFetcher, search LocationSearcher, config SessionConfig, clock clockwork.Clock, metrics *observability.Metrics, logger *zap.Logger) *SessionManager {
	if config.CleanupInterval <= 0 {
		config.CleanupInterval = time.Minute
	}
	if config.FetchTimeout <= 0 {
		config.FetchTimeout = 20 * time.Second
	}
	return &SessionManager{
		weather:     weather,
		search:      search,
		config:      config,
		clock:       clock,
		metrics:     metrics,
		logger:      logger,
		sessions:    make(map[string]*session),
		stopCleanup: make(chan struct{}),
	}
}

// Start launches the idle-session eviction loop.
func (m *SessionManager) Start() {
	go m.startCleanup()
}

// Stop ends the eviction loop and waits for in-flight effects.
func (m *SessionManager) Stop() {
	m.stopOnce.Do(func() { close(m.stopCleanup) })
	m.inflight.Wait()
}

// Wait blocks until every effect started so far has fed back its result.
func (m *SessionManager) Wait() {
	m.inflight.Wait()
}

func (m *SessionManager) Create(lang state.Lang) (string, state.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.config.MaxSessions > 0 && len(m.sessions) >= m.config.MaxSessions {
		return "", state.State{}, ErrTooManySessions
	}

	id := uuid.New().String()
	s := &session{
		state:    state.New(state.DefaultSettings(lang)),
		lastSeen: m.clock.Now(),
	}
	m.sessions[id] = s
	m.metrics.ActiveSessions.Set(float64(len(m.sessions)))

	m.logger.Debug("Session created", zap.String("session_id", id), zap.String("lang", string(lang)))
	return id, s.state, nil
}

func (m *SessionManager) Get(id string) (state.State, error) {
	s, err := m.lookup(id)
	if err != nil {
		return state.State{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = m.clock.Now()
	return s.state, nil
}

func (m *SessionManager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	return nil
}

func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Dispatch applies action to the session and starts any resulting effects.
// It returns the state as it stands right after the action.
func (m *SessionManager) Dispatch(id string, action state.Action) (state.State, error) {
	s, err := m.lookup(id)
	if err != nil {
		return state.State{}, err
	}

	s.mu.Lock()
	next, effects := state.Reduce(s.state, action)
	s.state = next
	s.lastSeen = m.clock.Now()
	s.mu.Unlock()

	if q, ok := action.(state.SubmitSearch); ok && strings.TrimSpace(q.Query) == "" {
		m.logger.Debug("Search ignored",
			zap.String("session_id", id),
			zap.String("reason", string(state.EmptySearchQuery)))
	}

	for _, e := range effects {
		m.run(id, e)
	}
	return next, nil
}

func (m *SessionManager) lookup(id string) (*session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *SessionManager) run(id string, effect state.Effect) {
	m.inflight.Add(1)
	go func() {
		defer m.inflight.Done()

		ctx, cancel := context.WithTimeout(context.Background(), m.config.FetchTimeout)
		defer cancel()

		switch e := effect.(type) {
		case state.FetchWeather:
			m.fetchWeather(ctx, id, e)
		case state.SearchLocations:
			m.searchLocations(ctx, id, e)
		}
	}()
}

func (m *SessionManager) fetchWeather(ctx context.Context, id string, e state.FetchWeather) {
	report, err := m.weather.Fetch(ctx, e.Coordinate, string(e.Lang))

	var action state.Action
	outcome := "applied"
	if err != nil {
		m.logger.Warn("Weather fetch failed",
			zap.String("session_id", id),
			zap.Uint64("generation", e.Generation),
			zap.Error(err))
		action = state.WeatherFetchFailed{Generation: e.Generation, Reason: err.Error()}
		outcome = "failed"
	} else {
		action = state.WeatherFetched{Generation: e.Generation, Report: *report}
	}

	s, err := m.lookup(id)
	if err != nil {
		m.logger.Debug("Dropping fetch result for closed session", zap.String("session_id", id))
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.state.Accepts(e.Generation) {
		m.metrics.FetchResults.WithLabelValues("stale").Inc()
		m.logger.Debug("Dropping superseded fetch result",
			zap.String("session_id", id),
			zap.Uint64("generation", e.Generation),
			zap.Uint64("latest", s.state.Generation))
		return
	}

	s.state, _ = state.Reduce(s.state, action)
	m.metrics.FetchResults.WithLabelValues(outcome).Inc()
}

func (m *SessionManager) searchLocations(ctx context.Context, id string, e state.SearchLocations) {
	results, err := m.search.Search(ctx, e.Query)

	var action state.Action
	if err != nil {
		m.logger.Warn("Location search failed",
			zap.String("session_id", id),
			zap.String("query", e.Query),
			zap.Error(err))
		action = state.SearchRejected{Seq: e.Seq, Reason: err.Error()}
	} else {
		action = state.SearchResolved{Seq: e.Seq, Results: results}
	}

	s, err := m.lookup(id)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.state, _ = state.Reduce(s.state, action)
	s.mu.Unlock()
}

func (m *SessionManager) startCleanup() {
	ticker := m.clock.NewTicker(m.config.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			m.cleanup()
		case <-m.stopCleanup:
			return
		}
	}
}

func (m *SessionManager) cleanup() {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.clock.Now()
	expiredCount := 0

	for id, s := range m.sessions {
		s.mu.Lock()
		idle := now.Sub(s.lastSeen)
		s.mu.Unlock()

		if idle > m.config.TTL {
			delete(m.sessions, id)
			expiredCount++
		}
	}

	m.metrics.ActiveSessions.Set(float64(len(m.sessions)))
	if expiredCount > 0 {
		m.logger.Info("Evicted idle sessions",
			zap.Int("count", expiredCount),
			zap.Int("remaining", len(m.sessions)))
	}
}

func (m *SessionManager) GetStats() map[string]interface{} {
	return map[string]interface{}{
		"active_sessions": m.Count(),
		"ttl":             m.config.TTL.String(),
		"max_sessions":    m.config.MaxSessions,
	}
}
