package state

import (
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
)

type LocationPhase string

const (
	NoLocation       LocationPhase = "no_location"
	LocationSelected LocationPhase = "location_selected"
	WeatherLoaded    LocationPhase = "weather_loaded"
)

type SearchPhase string

const (
	SearchIdle      SearchPhase = "idle"
	Searching       SearchPhase = "searching"
	ResultsShown    SearchPhase = "results_shown"
	SearchDismissed SearchPhase = "dismissed"
)

type ErrorKind string

const (
	NetworkFailure    ErrorKind = "network_failure"
	GeolocationDenied ErrorKind = "geolocation_denied"
	SearchFailed      ErrorKind = "search_failed"
	// EmptySearchQuery names the ignored blank search. It is never stored on the state.
	EmptySearchQuery ErrorKind = "empty_search_query"
)

// UserError is the one message shown to the user. Detail carries text from
// the collaborator that failed, such as the browser's geolocation reason.
type UserError struct {
	Kind   ErrorKind `json:"kind"`
	Detail string    `json:"detail,omitempty"`
}

type Lang string

const (
	LangEN Lang = "en"
	LangTR Lang = "tr"
)

func ParseLang(s string) (Lang, bool) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case LangEN:
		return LangEN, true
	case LangTR:
		return LangTR, true
	}
	return "", false
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func ParseTheme(s string) (Theme, bool) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeDark:
		return ThemeDark, true
	case ThemeLight:
		return ThemeLight, true
	}
	return "", false
}

type Settings struct {
	Lang     Lang           `json:"lang"`
	TempUnit meteo.TempUnit `json:"temp_unit"`
	WindUnit meteo.WindUnit `json:"wind_unit"`
	Theme    Theme          `json:"theme"`
}

func DefaultSettings(lang Lang) Settings {
	if lang == "" {
		lang = LangEN
	}
	return Settings{
		Lang:     lang,
		TempUnit: meteo.Celsius,
		WindUnit: meteo.MetersPerSecond,
		Theme:    ThemeDark,
	}
}

type SearchState struct {
	Phase   SearchPhase           `json:"phase"`
	Query   string                `json:"query"`
	Results []models.SearchResult `json:"results"`

	// Seq identifies the newest geocoding request; older replies are dropped.
	Seq uint64 `json:"-"`
}

// State is the whole UI state of one session. It is treated as a value:
// Reduce never mutates the State it is given.
type State struct {
	Location     LocationPhase           `json:"location"`
	Selected     *models.Coordinate      `json:"selected,omitempty"`
	UserLocation *models.Coordinate      `json:"user_location,omitempty"`
	DistanceKm   *float64                `json:"distance_km,omitempty"`
	Weather      *models.WeatherSnapshot `json:"weather,omitempty"`
	Forecast     *models.ForecastSeries  `json:"forecast,omitempty"`
	FetchedAt    time.Time               `json:"fetched_at,omitempty"`
	Loading      bool                    `json:"loading"`

	// Generation is the number of the newest weather fetch issued.
	Generation  uint64        `json:"generation"`
	Search      SearchState   `json:"search"`
	Error       *UserError    `json:"error,omitempty"`
	Settings    Settings      `json:"settings"`
	ShowDetails bool          `json:"show_details"`
	Regions     map[Menu]Rect `json:"regions,omitempty"`
}

func New(settings Settings) State {
	return State{
		Location: NoLocation,
		Search:   SearchState{Phase: SearchIdle},
		Settings: settings,
	}
}

// Accepts reports whether a fetch result tagged with generation is still
// the newest one issued.
func (s State) Accepts(generation uint64) bool {
	return generation == s.Generation
}

// MenuOpen reports whether menu is currently shown.
func (s State) MenuOpen(menu Menu) bool {
	if menu == MenuSearch {
		return s.Search.Phase == ResultsShown
	}
	_, ok := s.Regions[menu]
	return ok
}
