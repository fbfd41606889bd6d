package panel

import (
	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/state"
)

// View is everything a client needs to draw one session.
type View struct {
	Settings    state.Settings      `json:"settings"`
	Location    state.LocationPhase `json:"location"`
	Loading     bool                `json:"loading"`
	Prompt      string              `json:"prompt,omitempty"`
	Error       *ErrorView          `json:"error,omitempty"`
	Marker      *Marker             `json:"marker,omitempty"`
	Popup       *Popup              `json:"popup,omitempty"`
	Details     *Details            `json:"details,omitempty"`
	DetailsOpen bool                `json:"details_open"`
	Search      SearchView          `json:"search"`
	Menus       Menus               `json:"menus"`
	Cities      []CityMarker        `json:"cities"`
}

type ErrorView struct {
	Kind    state.ErrorKind `json:"kind"`
	Message string          `json:"message"`
}

type Marker struct {
	Coordinate models.Coordinate `json:"coordinate"`
	Icon       string            `json:"icon,omitempty"`
	IconURL    string            `json:"icon_url,omitempty"`
}

type Popup struct {
	Name         string  `json:"name"`
	Country      string  `json:"country,omitempty"`
	Description  string  `json:"description"`
	Icon         string  `json:"icon"`
	Temperature  float64 `json:"temperature"`
	TempText     string  `json:"temperature_text"`
	FeelsLike    string  `json:"feels_like"`
	Humidity     string  `json:"humidity"`
	Wind         string  `json:"wind"`
	Distance     string  `json:"distance,omitempty"`
	DetailsLabel string  `json:"details_label"`
}

// Reading is a labelled display value.
type Reading struct {
	Label string `json:"label"`
	Value string `json:"value"`
	Level string `json:"level,omitempty"`
}

type WindView struct {
	Label     string  `json:"label"`
	Speed     string  `json:"speed"`
	Gust      string  `json:"gust,omitempty"`
	Direction string  `json:"direction"`
	Degrees   float64 `json:"degrees"`
}

type SunView struct {
	Label     string `json:"label"`
	Sunrise   string `json:"sunrise"`
	Sunset    string `json:"sunset"`
	DayLength string `json:"day_length"`
}

type TrendView struct {
	Label     string               `json:"label"`
	Direction meteo.TrendDirection `json:"direction"`
	Text      string               `json:"text"`
	Delta     string               `json:"delta"`
}

type Trends struct {
	Label       string    `json:"label"`
	Temperature TrendView `json:"temperature"`
	Wind        TrendView `json:"wind"`
	Pressure    TrendView `json:"pressure"`
}

type HourView struct {
	Hour          string `json:"hour"`
	Icon          string `json:"icon"`
	Description   string `json:"description"`
	Temperature   string `json:"temperature"`
	Precipitation int    `json:"precipitation"` // percent
	Clouds        int    `json:"clouds"`
	Wind          string `json:"wind"`
}

type ChartPoint struct {
	Hour  string  `json:"hour"`
	Value float64 `json:"value"`
}

type Chart struct {
	Label  string       `json:"label"`
	Unit   string       `json:"unit"`
	Points []ChartPoint `json:"points"`
}

type Charts struct {
	Temperature   Chart `json:"temperature"`
	Precipitation Chart `json:"precipitation"`
	Wind          Chart `json:"wind"`
}

type Details struct {
	Title      string     `json:"title"`
	Visibility Reading    `json:"visibility"`
	Wind       WindView   `json:"wind"`
	DewPoint   *Reading   `json:"dew_point,omitempty"`
	Humidity   Reading    `json:"humidity"`
	Pressure   Reading    `json:"pressure"`
	CloudCover Reading    `json:"cloud_cover"`
	Sun        *SunView   `json:"sun,omitempty"`
	Trends     Trends     `json:"trends"`
	NextHours  string     `json:"next_hours_label"`
	Hourly     []HourView `json:"hourly"`
	Charts     Charts     `json:"charts"`
}

type SearchResultView struct {
	Index    int    `json:"index"`
	Name     string `json:"name"`
	Subtitle string `json:"subtitle"`
}

type SearchView struct {
	Phase       state.SearchPhase  `json:"phase"`
	Query       string             `json:"query"`
	Placeholder string             `json:"placeholder"`
	Open        bool               `json:"open"`
	Results     []SearchResultView `json:"results"`
}

type Menus struct {
	Language bool `json:"language"`
	Settings bool `json:"settings"`
}

type CityMarker struct {
	Index       int                     `json:"index"`
	Name        string                  `json:"name"`
	Country     string                  `json:"country"`
	Coordinate  models.Coordinate       `json:"coordinate"`
	ActionLabel string                  `json:"action_label"`
	Current     *models.WeatherSnapshot `json:"current,omitempty"`
	Temperature string                  `json:"temperature,omitempty"`
}
