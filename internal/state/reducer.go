package state

import (
	"strings"

	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
)

// Reduce applies a to s and returns the next state together with the
// effects the caller must run. Unknown or inapplicable actions leave the
// state unchanged.
func Reduce(s State, a Action) (State, []Effect) {
	switch a := a.(type) {
	case MapClick:
		return s.selectLocation(a.Coordinate)

	case SelectFeaturedCity:
		if a.Index < 0 || a.Index >= len(models.FeaturedCities) {
			return s, nil
		}
		next, effects := s.selectLocation(models.FeaturedCities[a.Index].Coordinate)
		next.ShowDetails = true
		return next, effects

	case GeolocationResolved:
		coord := a.Coordinate
		s.UserLocation = &coord
		return s.selectLocation(coord)

	case GeolocationFailed:
		s.Error = &UserError{Kind: GeolocationDenied, Detail: a.Reason}
		return s, nil

	case SubmitSearch:
		query := strings.TrimSpace(a.Query)
		if query == "" {
			return s, nil
		}
		s.Search.Seq++
		s.Search.Phase = Searching
		s.Search.Query = query
		s.Error = nil
		return s, []Effect{SearchLocations{Seq: s.Search.Seq, Query: query}}

	case SearchResolved:
		if a.Seq != s.Search.Seq || s.Search.Phase != Searching {
			return s, nil
		}
		s.Search.Results = a.Results
		s.Search.Phase = ResultsShown
		return s, nil

	case SearchRejected:
		if a.Seq != s.Search.Seq || s.Search.Phase != Searching {
			return s, nil
		}
		s.Search.Results = nil
		s.Search.Phase = SearchIdle
		s.Error = &UserError{Kind: SearchFailed, Detail: a.Reason}
		return s, nil

	case ChooseSearchResult:
		if a.Index < 0 || a.Index >= len(s.Search.Results) {
			return s, nil
		}
		result := s.Search.Results[a.Index]
		next, effects := s.selectLocation(result.Coordinate)
		next.ShowDetails = false
		next.Search.Query = ""
		next.Search.Phase = SearchDismissed
		return next, effects

	case DismissSearch:
		return s.dismissSearch(), nil

	case WeatherFetched:
		if !s.Accepts(a.Generation) {
			return s, nil
		}
		s.Weather = a.Report.Current
		s.Forecast = a.Report.Forecast
		s.FetchedAt = a.Report.FetchedAt
		s.Location = WeatherLoaded
		s.Loading = false
		s.Error = nil
		return s, nil

	case WeatherFetchFailed:
		if !s.Accepts(a.Generation) {
			return s, nil
		}
		s.Loading = false
		s.Error = &UserError{Kind: NetworkFailure, Detail: a.Reason}
		return s, nil

	case ChangeSettings:
		return s.changeSettings(a)

	case ToggleDetails:
		s.ShowDetails = !s.ShowDetails
		return s, nil

	case OpenMenu:
		return s.withRegion(a.Menu, a.Region), nil

	case CloseMenu:
		if a.Menu == MenuSearch {
			return s.dismissSearch(), nil
		}
		return s.withoutRegion(a.Menu), nil

	case Click:
		return s.clickOutside(a.Point), nil
	}

	return s, nil
}

func (s State) selectLocation(coord models.Coordinate) (State, []Effect) {
	s.Selected = &coord
	s.Location = LocationSelected
	s.Loading = true
	s.Error = nil
	s.Generation++

	if s.UserLocation != nil {
		d := meteo.DistanceKm(*s.UserLocation, coord)
		s.DistanceKm = &d
	} else {
		s.DistanceKm = nil
	}

	return s, []Effect{s.fetch()}
}

func (s State) fetch() FetchWeather {
	return FetchWeather{
		Generation: s.Generation,
		Coordinate: *s.Selected,
		Lang:       s.Settings.Lang,
	}
}

func (s State) changeSettings(a ChangeSettings) (State, []Effect) {
	langChanged := a.Lang != "" && a.Lang != s.Settings.Lang

	if a.Lang != "" {
		s.Settings.Lang = a.Lang
	}
	if a.TempUnit != "" {
		s.Settings.TempUnit = a.TempUnit
	}
	if a.WindUnit != "" {
		s.Settings.WindUnit = a.WindUnit
	}
	if a.Theme != "" {
		s.Settings.Theme = a.Theme
	}

	// Descriptions come back localized, so a language switch refetches.
	if langChanged && s.Selected != nil {
		return s.selectLocation(*s.Selected)
	}
	return s, nil
}

func (s State) dismissSearch() State {
	if s.Search.Phase == ResultsShown {
		s.Search.Phase = SearchDismissed
	}
	return s
}

func (s State) clickOutside(p Point) State {
	if s.Search.Phase == ResultsShown {
		r, ok := s.Regions[MenuSearch]
		if !ok || !r.Contains(p) {
			s = s.dismissSearch()
		}
	}
	for _, menu := range []Menu{MenuLanguage, MenuSettings} {
		if r, ok := s.Regions[menu]; ok && !r.Contains(p) {
			s = s.withoutRegion(menu)
		}
	}
	return s
}
