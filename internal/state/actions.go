package state

import (
	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
)

// Action is an input event applied by Reduce.
type Action interface {
	action()
}

type MapClick struct {
	Coordinate models.Coordinate
}

// SelectFeaturedCity picks one of models.FeaturedCities by index and opens
// the detail panel.
type SelectFeaturedCity struct {
	Index int
}

type GeolocationResolved struct {
	Coordinate models.Coordinate
}

type GeolocationFailed struct {
	Reason string
}

type SubmitSearch struct {
	Query string
}

type SearchResolved struct {
	Seq     uint64
	Results []models.SearchResult
}

type SearchRejected struct {
	Seq    uint64
	Reason string
}

type ChooseSearchResult struct {
	Index int
}

type DismissSearch struct{}

type WeatherFetched struct {
	Generation uint64
	Report     models.WeatherReport
}

type WeatherFetchFailed struct {
	Generation uint64
	Reason     string
}

// ChangeSettings applies every non-zero field.
type ChangeSettings struct {
	Lang     Lang
	TempUnit meteo.TempUnit
	WindUnit meteo.WindUnit
	Theme    Theme
}

type ToggleDetails struct{}

// OpenMenu opens menu and records its hit region. For MenuSearch it only
// records the region of the search box; results open through SubmitSearch.
type OpenMenu struct {
	Menu   Menu
	Region Rect
}

type CloseMenu struct {
	Menu Menu
}

// Click closes every open menu whose region does not contain Point.
type Click struct {
	Point Point
}

func (MapClick) action()            {}
func (SelectFeaturedCity) action()  {}
func (GeolocationResolved) action() {}
func (GeolocationFailed) action()   {}
func (SubmitSearch) action()        {}
func (SearchResolved) action()      {}
func (SearchRejected) action()      {}
func (ChooseSearchResult) action()  {}
func (DismissSearch) action()       {}
func (WeatherFetched) action()      {}
func (WeatherFetchFailed) action()  {}
func (ChangeSettings) action()      {}
func (ToggleDetails) action()       {}
func (OpenMenu) action()            {}
func (CloseMenu) action()           {}
func (Click) action()               {}

// Effect is work Reduce asks the caller to perform. Results come back as
// actions.
type Effect interface {
	effect()
}

type FetchWeather struct {
	Generation uint64
	Coordinate models.Coordinate
	Lang       Lang
}

type SearchLocations struct {
	Seq   uint64
	Query string
}

func (FetchWeather) effect()    {}
func (SearchLocations) effect() {}
