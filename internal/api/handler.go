package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/panel"
	"github.com/bobby-s-dev/weather-map/internal/services"
	"github.com/bobby-s-dev/weather-map/internal/state"
	"github.com/gofiber/fiber/v2"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

type SessionStore interface {
	Create(lang state.Lang) (string, state.State, error)
	Get(id string) (state.State, error)
	Delete(id string) error
	Dispatch(id string, action state.Action) (state.State, error)
}

type SnapshotSource interface {
	Snapshots() map[int]*models.WeatherSnapshot
}

// StatsFunc reports the internal counters of one component for /health.
type StatsFunc func() map[string]interface{}

type Handler struct {
	sessions  SessionStore
	weather   services.WeatherFetcher
	snapshots SnapshotSource
	clock     clockwork.Clock
	logger    *zap.Logger
	stats     map[string]StatsFunc
	startTime time.Time
}

func NewHandler(sessions SessionStore, weather services.WeatherFetcher, snapshots SnapshotSource, clock clockwork.Clock, logger *zap.Logger) *Handler {
	return &Handler{
		sessions:  sessions,
		weather:   weather,
		snapshots: snapshots,
		clock:     clock,
		logger:    logger,
		stats:     make(map[string]StatsFunc),
		startTime: clock.Now(),
	}
}

// RegisterStats adds a component to the health report. It must be called
// before the server starts.
func (h *Handler) RegisterStats(name string, fn StatsFunc) {
	h.stats[name] = fn
}

type coordinateRequest struct {
	Lat *float64 `json:"lat"`
	Lon *float64 `json:"lon"`
}

type geolocationRequest struct {
	coordinateRequest
	Error string `json:"error"`
}

type searchRequest struct {
	Query string `json:"query"`
}

type settingsRequest struct {
	Lang     string `json:"lang"`
	TempUnit string `json:"temp_unit"`
	WindUnit string `json:"wind_unit"`
	Theme    string `json:"theme"`
}

type createSessionRequest struct {
	Lang string `json:"lang"`
}

// GetHealth handles GET /api/v1/health
func (h *Handler) GetHealth(c *fiber.Ctx) error {
	now := h.clock.Now()
	stats := make(map[string]interface{}, len(h.stats))
	for name, fn := range h.stats {
		stats[name] = fn()
	}

	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": now,
		"uptime":    now.Sub(h.startTime).String(),
		"stats":     stats,
	})
}

// GetCities handles GET /api/v1/cities
func (h *Handler) GetCities(c *fiber.Ctx) error {
	settings, err := h.settingsFromQuery(c)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"cities": panel.FeaturedCities(settings, h.snapshots.Snapshots()),
	})
}

// GetWeather handles GET /api/v1/weather. It fetches once and renders the
// full panel without creating a session.
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	coord, err := parseCoordinate(c.Query("lat"), c.Query("lon"))
	if err != nil {
		return err
	}
	settings, err := h.settingsFromQuery(c)
	if err != nil {
		return err
	}

	h.logger.Info("Fetching weather",
		zap.Float64("lat", coord.Lat),
		zap.Float64("lon", coord.Lon),
		zap.String("lang", string(settings.Lang)))

	report, err := h.weather.Fetch(c.UserContext(), coord, string(settings.Lang))
	if err != nil {
		h.logger.Error("Failed to fetch weather",
			zap.Float64("lat", coord.Lat),
			zap.Float64("lon", coord.Lon),
			zap.Error(err))
		return fiber.NewError(fiber.StatusBadGateway, panel.For(settings.Lang).ErrorMessage(&state.UserError{Kind: state.NetworkFailure}))
	}

	s := state.New(settings)
	s.Selected = &coord
	s.Location = state.WeatherLoaded
	s.Weather = report.Current
	s.Forecast = report.Forecast
	s.FetchedAt = report.FetchedAt
	s.ShowDetails = true

	return c.JSON(panel.Build(s))
}

// CreateSession handles POST /api/v1/sessions
func (h *Handler) CreateSession(c *fiber.Ctx) error {
	var req createSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
	}

	lang := panel.MatchLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if req.Lang != "" {
		parsed, ok := state.ParseLang(req.Lang)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported language: "+req.Lang)
		}
		lang = parsed
	}

	id, s, err := h.sessions.Create(lang)
	if err != nil {
		return err
	}

	h.logger.Info("Session created", zap.String("session_id", id), zap.String("lang", string(lang)))
	return c.Status(fiber.StatusCreated).JSON(h.sessionView(id, s))
}

// GetSession handles GET /api/v1/sessions/:id
func (h *Handler) GetSession(c *fiber.Ctx) error {
	id := c.Params("id")
	s, err := h.sessions.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(h.sessionView(id, s))
}

// DeleteSession handles DELETE /api/v1/sessions/:id
func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	if err := h.sessions.Delete(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectLocation handles POST /api/v1/sessions/:id/select
func (h *Handler) SelectLocation(c *fiber.Ctx) error {
	var req coordinateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	coord, err := req.coordinate()
	if err != nil {
		return err
	}
	return h.dispatch(c, state.MapClick{Coordinate: coord})
}

// SelectCity handles POST /api/v1/sessions/:id/cities/:index
func (h *Handler) SelectCity(c *fiber.Ctx) error {
	index, err := c.ParamsInt("index")
	if err != nil || index < 0 || index >= len(models.FeaturedCities) {
		return fiber.NewError(fiber.StatusNotFound, "Unknown featured city")
	}
	return h.dispatch(c, state.SelectFeaturedCity{Index: index})
}

// ReportGeolocation handles POST /api/v1/sessions/:id/geolocation
func (h *Handler) ReportGeolocation(c *fiber.Ctx) error {
	var req geolocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if req.Error != "" {
		return h.dispatch(c, state.GeolocationFailed{Reason: req.Error})
	}

	coord, err := req.coordinate()
	if err != nil {
		return err
	}
	return h.dispatch(c, state.GeolocationResolved{Coordinate: coord})
}

// Search handles POST /api/v1/sessions/:id/search
func (h *Handler) Search(c *fiber.Ctx) error {
	var req searchRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	// A blank query leaves the session unchanged.
	return h.dispatch(c, state.SubmitSearch{Query: req.Query})
}

// ChooseSearchResult handles POST /api/v1/sessions/:id/search/results/:index
func (h *Handler) ChooseSearchResult(c *fiber.Ctx) error {
	id := c.Params("id")
	s, err := h.sessions.Get(id)
	if err != nil {
		return err
	}

	index, err := c.ParamsInt("index")
	if err != nil || index < 0 || index >= len(s.Search.Results) {
		return fiber.NewError(fiber.StatusNotFound, "Unknown search result")
	}
	return h.dispatch(c, state.ChooseSearchResult{Index: index})
}

// DismissSearch handles POST /api/v1/sessions/:id/search/dismiss
func (h *Handler) DismissSearch(c *fiber.Ctx) error {
	return h.dispatch(c, state.DismissSearch{})
}

// UpdateSettings handles PUT /api/v1/sessions/:id/settings
func (h *Handler) UpdateSettings(c *fiber.Ctx) error {
	var req settingsRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	var action state.ChangeSettings
	if req.Lang != "" {
		lang, ok := state.ParseLang(req.Lang)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported language: "+req.Lang)
		}
		action.Lang = lang
	}
	if req.TempUnit != "" {
		unit, ok := meteo.ParseTempUnit(req.TempUnit)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported temperature unit: "+req.TempUnit)
		}
		action.TempUnit = unit
	}
	if req.WindUnit != "" {
		unit, ok := meteo.ParseWindUnit(req.WindUnit)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported wind unit: "+req.WindUnit)
		}
		action.WindUnit = unit
	}
	if req.Theme != "" {
		theme, ok := state.ParseTheme(req.Theme)
		if !ok {
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported theme: "+req.Theme)
		}
		action.Theme = theme
	}

	return h.dispatch(c, action)
}

// ToggleDetails handles POST /api/v1/sessions/:id/details/toggle
func (h *Handler) ToggleDetails(c *fiber.Ctx) error {
	return h.dispatch(c, state.ToggleDetails{})
}

// OpenMenu handles POST /api/v1/sessions/:id/menus/:menu
func (h *Handler) OpenMenu(c *fiber.Ctx) error {
	menu, ok := state.ParseMenu(c.Params("menu"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Unknown menu")
	}

	var region state.Rect
	if err := c.BodyParser(&region); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if region.W < 0 || region.H < 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Region size must not be negative")
	}
	return h.dispatch(c, state.OpenMenu{Menu: menu, Region: region})
}

// CloseMenu handles DELETE /api/v1/sessions/:id/menus/:menu
func (h *Handler) CloseMenu(c *fiber.Ctx) error {
	menu, ok := state.ParseMenu(c.Params("menu"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "Unknown menu")
	}
	return h.dispatch(c, state.CloseMenu{Menu: menu})
}

// Click handles POST /api/v1/sessions/:id/click
func (h *Handler) Click(c *fiber.Ctx) error {
	var p state.Point
	if err := c.BodyParser(&p); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return h.dispatch(c, state.Click{Point: p})
}

func (h *Handler) dispatch(c *fiber.Ctx, action state.Action) error {
	id := c.Params("id")
	s, err := h.sessions.Dispatch(id, action)
	if err != nil {
		return err
	}
	return c.JSON(h.sessionView(id, s))
}

func (h *Handler) sessionView(id string, s state.State) fiber.Map {
	view := panel.Build(s)
	view.Cities = panel.FeaturedCities(s.Settings, h.snapshots.Snapshots())
	return fiber.Map{
		"id":   id,
		"view": view,
	}
}

// settingsFromQuery reads lang, temp_unit and wind_unit. A missing lang
// falls back to Accept-Language.
func (h *Handler) settingsFromQuery(c *fiber.Ctx) (state.Settings, error) {
	lang := panel.MatchLanguage(c.Get(fiber.HeaderAcceptLanguage))
	if q := c.Query("lang"); q != "" {
		parsed, ok := state.ParseLang(q)
		if !ok {
			return state.Settings{}, fiber.NewError(fiber.StatusBadRequest, "Unsupported language: "+q)
		}
		lang = parsed
	}

	settings := state.DefaultSettings(lang)
	if q := c.Query("temp_unit"); q != "" {
		unit, ok := meteo.ParseTempUnit(q)
		if !ok {
			return state.Settings{}, fiber.NewError(fiber.StatusBadRequest, "Unsupported temperature unit: "+q)
		}
		settings.TempUnit = unit
	}
	if q := c.Query("wind_unit"); q != "" {
		unit, ok := meteo.ParseWindUnit(q)
		if !ok {
			return state.Settings{}, fiber.NewError(fiber.StatusBadRequest, "Unsupported wind unit: "+q)
		}
		settings.WindUnit = unit
	}
	return settings, nil
}

func (r coordinateRequest) coordinate() (models.Coordinate, error) {
	if r.Lat == nil || r.Lon == nil {
		return models.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon are required")
	}
	return validCoordinate(*r.Lat, *r.Lon)
}

func parseCoordinate(lat, lon string) (models.Coordinate, error) {
	if lat == "" || lon == "" {
		return models.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lat and lon are required")
	}
	latValue, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return models.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lat must be a number")
	}
	lonValue, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return models.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "lon must be a number")
	}
	return validCoordinate(latValue, lonValue)
}

func validCoordinate(lat, lon float64) (models.Coordinate, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return models.Coordinate{}, fiber.NewError(fiber.StatusBadRequest, "Coordinate out of range")
	}
	return models.Coordinate{Lat: lat, Lon: lon}, nil
}

// ErrorHandler renders every handler error as {"error", "success": false}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.Is(err, services.ErrSessionNotFound):
		code = fiber.StatusNotFound
	case errors.Is(err, services.ErrTooManySessions):
		code = fiber.StatusServiceUnavailable
	}

	if code >= fiber.StatusInternalServerError {
		zap.L().Error("HTTP error",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(err))
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   message,
		"success": false,
	})
}
