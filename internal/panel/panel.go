package panel

import (
	"fmt"
	"math"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/state"
)

// HourlySlots is the number of 3-hour forecast entries covering the next
// 24 hours.
const HourlySlots = 8

const iconURLFormat = "https://openweathermap.org/img/wn/%s@2x.png"

// Build renders s into a view model. It reads s only.
func Build(s state.State) View {
	m := For(s.Settings.Lang)

	v := View{
		Settings:    s.Settings,
		Location:    s.Location,
		Loading:     s.Loading,
		DetailsOpen: s.ShowDetails,
		Search:      buildSearch(s, m),
		Menus: Menus{
			Language: s.MenuOpen(state.MenuLanguage),
			Settings: s.MenuOpen(state.MenuSettings),
		},
		Cities: FeaturedCities(s.Settings, nil),
	}

	if s.Location == state.NoLocation {
		v.Prompt = m.SelectLocation
	}
	if s.Error != nil {
		v.Error = &ErrorView{Kind: s.Error.Kind, Message: m.ErrorMessage(s.Error)}
	}

	if s.Selected != nil {
		v.Marker = &Marker{Coordinate: *s.Selected}
	}
	// While a fetch is in flight the earlier report stays hidden. A failed
	// fetch clears Loading and brings it back.
	if s.Weather != nil && !s.Loading {
		if v.Marker != nil {
			v.Marker.Icon = s.Weather.Condition.Icon
			v.Marker.IconURL = iconURL(s.Weather.Condition.Icon)
		}
		v.Popup = buildPopup(s, m)
		if s.ShowDetails {
			details := BuildDetails(s.Weather, s.Forecast, s.Settings)
			v.Details = &details
		}
	}

	return v
}

// FeaturedCities lists the pinned city markers. snapshots is keyed by
// index into models.FeaturedCities and may be nil.
func FeaturedCities(settings state.Settings, snapshots map[int]*models.WeatherSnapshot) []CityMarker {
	m := For(settings.Lang)
	cities := make([]CityMarker, 0, len(models.FeaturedCities))
	for i, c := range models.FeaturedCities {
		marker := CityMarker{
			Index:       i,
			Name:        LocalizedName(c.Name, settings.Lang),
			Country:     c.Country,
			Coordinate:  c.Coordinate,
			ActionLabel: m.ViewWeather,
		}
		if snap, ok := snapshots[i]; ok && snap != nil {
			marker.Current = snap
			marker.Temperature = settings.TempUnit.Format(snap.Temperature)
		}
		cities = append(cities, marker)
	}
	return cities
}

func buildSearch(s state.State, m Messages) SearchView {
	sv := SearchView{
		Phase:       s.Search.Phase,
		Query:       s.Search.Query,
		Placeholder: m.SearchPlaceholder,
		Open:        s.MenuOpen(state.MenuSearch) && len(s.Search.Results) > 0,
		Results:     make([]SearchResultView, 0, len(s.Search.Results)),
	}
	for i, r := range s.Search.Results {
		subtitle := r.Country
		if r.State != "" {
			subtitle = r.State + ", " + r.Country
		}
		sv.Results = append(sv.Results, SearchResultView{Index: i, Name: r.Name, Subtitle: subtitle})
	}
	return sv
}

func buildPopup(s state.State, m Messages) *Popup {
	w := s.Weather
	p := &Popup{
		Name:         w.Name,
		Country:      w.Country,
		Description:  w.Condition.Description,
		Icon:         w.Condition.Icon,
		Temperature:  s.Settings.TempUnit.Convert(w.Temperature),
		TempText:     s.Settings.TempUnit.Format(w.Temperature),
		FeelsLike:    s.Settings.TempUnit.Format(w.FeelsLike),
		Humidity:     fmt.Sprintf("%.0f%%", w.Humidity),
		Wind:         s.Settings.WindUnit.Format(w.WindSpeed),
		DetailsLabel: m.ShowDetails,
	}
	// Open water has no place name.
	if p.Name == "" && s.Selected != nil {
		p.Name = fmt.Sprintf("%.4f, %.4f", s.Selected.Lat, s.Selected.Lon)
	}
	if s.DistanceKm != nil {
		p.Distance = meteo.FormatDistance(*s.DistanceKm)
	}
	return p
}

// BuildDetails renders the detail panel for one report. forecast may be nil.
func BuildDetails(w *models.WeatherSnapshot, forecast *models.ForecastSeries, settings state.Settings) Details {
	m := For(settings.Lang)

	d := Details{
		Title: m.Forecast,
		Visibility: Reading{
			Label: m.Visibility,
			Value: fmt.Sprintf("%.1f km", w.Visibility/1000),
			Level: m.VisibilityLevels[meteo.VisibilityBucket(w.Visibility)],
		},
		Wind: WindView{
			Label:     m.WindDirection,
			Speed:     settings.WindUnit.Format(w.WindSpeed),
			Direction: meteo.CompassDirection(w.WindDegree),
			Degrees:   w.WindDegree,
		},
		Humidity: Reading{
			Label: m.Humidity,
			Value: fmt.Sprintf("%.0f%%", w.Humidity),
		},
		Pressure: Reading{
			Label: m.Pressure,
			Value: fmt.Sprintf("%.0f hPa", w.Pressure),
			Level: m.PressureLevels[meteo.PressureBucket(w.Pressure)],
		},
		CloudCover: Reading{
			Label: m.CloudCover,
			Value: fmt.Sprintf("%.0f%%", w.CloudCover),
			Level: m.CloudLevels[meteo.CloudBucket(w.CloudCover)],
		},
		Trends:    buildTrends(forecast, settings, m),
		NextHours: m.NextHours,
	}

	if w.WindGust > 0 {
		d.Wind.Gust = settings.WindUnit.Format(w.WindGust)
	}

	if dp, err := meteo.DewPointC(w.Temperature, w.Humidity); err == nil {
		d.DewPoint = &Reading{Label: m.DewPoint, Value: settings.TempUnit.Format(dp)}
	}

	if !w.Sunrise.IsZero() && !w.Sunset.IsZero() {
		zone := time.FixedZone("", w.UTCOffset)
		hours, minutes := meteo.DayLength(w.Sunrise, w.Sunset)
		d.Sun = &SunView{
			Label:     m.SunInfo,
			Sunrise:   w.Sunrise.In(zone).Format("15:04"),
			Sunset:    w.Sunset.In(zone).Format("15:04"),
			DayLength: fmt.Sprintf("%d %s %d %s", hours, m.Hours, minutes, m.Minutes),
		}
	}

	d.Hourly, d.Charts = buildHourly(forecast, settings, m)
	return d
}

func buildTrends(forecast *models.ForecastSeries, settings state.Settings, m Messages) Trends {
	var cur, prev models.ForecastEntry
	if entries := forecast.Next(2); len(entries) == 2 {
		cur, prev = entries[0], entries[1]
	}

	tempDelta := cur.Temperature - prev.Temperature
	windDelta := cur.WindSpeed - prev.WindSpeed
	pressureDelta := cur.Pressure - prev.Pressure

	trend := func(label string, dir meteo.TrendDirection, delta string) TrendView {
		return TrendView{Label: label, Direction: dir, Text: m.TrendLabels[dir], Delta: delta}
	}

	return Trends{
		Label: m.WeatherTrend,
		Temperature: trend(m.TemperatureTrend,
			meteo.TempTrend(cur.Temperature, prev.Temperature),
			fmt.Sprintf("%+.1f°%s", unsignedZero(settings.TempUnit.ConvertDelta(tempDelta)), settings.TempUnit)),
		Wind: trend(m.WindTrend,
			meteo.WindTrend(cur.WindSpeed, prev.WindSpeed),
			fmt.Sprintf("%+.1f %s", unsignedZero(settings.WindUnit.Convert(windDelta)), settings.WindUnit.Symbol())),
		Pressure: trend(m.PressureTrend,
			meteo.PressureTrend(cur.Pressure, prev.Pressure),
			fmt.Sprintf("%+.0f hPa", unsignedZero(math.Round(pressureDelta)))),
	}
}

func buildHourly(forecast *models.ForecastSeries, settings state.Settings, m Messages) ([]HourView, Charts) {
	entries := forecast.Next(HourlySlots)
	charts := Charts{
		Temperature:   Chart{Label: m.HourlyTemp, Unit: "°" + string(settings.TempUnit), Points: make([]ChartPoint, 0, len(entries))},
		Precipitation: Chart{Label: m.PrecipitationProb, Unit: "%", Points: make([]ChartPoint, 0, len(entries))},
		Wind:          Chart{Label: m.WindSpeed, Unit: settings.WindUnit.Symbol(), Points: make([]ChartPoint, 0, len(entries))},
	}
	hours := make([]HourView, 0, len(entries))

	offset := 0
	if forecast != nil {
		offset = forecast.UTCOffset
	}
	zone := time.FixedZone("", offset)

	for _, e := range entries {
		hour := fmt.Sprintf("%d:00", e.Time.In(zone).Hour())
		pop := int(math.Round(e.PrecipitationProbability * 100))

		hours = append(hours, HourView{
			Hour:          hour,
			Icon:          e.Condition.Icon,
			Description:   e.Condition.Description,
			Temperature:   settings.TempUnit.Format(e.Temperature),
			Precipitation: pop,
			Clouds:        int(math.Round(e.CloudCover)),
			Wind:          settings.WindUnit.Format(e.WindSpeed),
		})

		charts.Temperature.Points = append(charts.Temperature.Points, ChartPoint{Hour: hour, Value: settings.TempUnit.Convert(e.Temperature)})
		charts.Precipitation.Points = append(charts.Precipitation.Points, ChartPoint{Hour: hour, Value: float64(pop)})
		charts.Wind.Points = append(charts.Wind.Points, ChartPoint{Hour: hour, Value: settings.WindUnit.Convert(e.WindSpeed)})
	}

	return hours, charts
}

// unsignedZero turns -0 into 0 so deltas never render as "-0.0".
func unsignedZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}

func iconURL(icon string) string {
	if icon == "" {
		return ""
	}
	return fmt.Sprintf(iconURLFormat, icon)
}
