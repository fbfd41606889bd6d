package panel

import (
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/meteo"
	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var istanbul = models.Coordinate{Lat: 41.0082, Lon: 28.9784}

func snapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Name:        "Istanbul",
		Country:     "TR",
		Coordinate:  istanbul,
		Temperature: 18.4,
		FeelsLike:   17.9,
		Humidity:    68,
		Pressure:    1014,
		WindSpeed:   4.6,
		WindDegree:  40,
		WindGust:    7.2,
		Visibility:  10000,
		CloudCover:  20,
		Sunrise:     time.Date(2024, 6, 1, 2, 32, 0, 0, time.UTC),
		Sunset:      time.Date(2024, 6, 1, 17, 40, 0, 0, time.UTC),
		UTCOffset:   3 * 60 * 60,
		Condition:   models.Condition{ID: 801, Main: "Clouds", Description: "few clouds", Icon: "02d"},
	}
}

func forecast(n int) *models.ForecastSeries {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	series := &models.ForecastSeries{City: "Istanbul", Country: "TR", UTCOffset: 3 * 60 * 60}
	for i := 0; i < n; i++ {
		series.Entries = append(series.Entries, models.ForecastEntry{
			Time:                     start.Add(time.Duration(i) * 3 * time.Hour),
			Temperature:              19.0 - 1.5*float64(i),
			WindSpeed:                5.1 - 2.1*float64(i%2),
			Pressure:                 1013 - float64(i),
			CloudCover:               75,
			PrecipitationProbability: 0.42,
			Condition:                models.Condition{Icon: "10d", Description: "light rain"},
		})
	}
	return series
}

func loadedState(settings state.Settings) state.State {
	s := state.New(settings)
	s, effects := state.Reduce(s, state.MapClick{Coordinate: istanbul})
	gen := effects[0].(state.FetchWeather).Generation
	s, _ = state.Reduce(s, state.WeatherFetched{
		Generation: gen,
		Report:     models.WeatherReport{Current: snapshot(), Forecast: forecast(10)},
	})
	return s
}

func TestBuild_NoLocation(t *testing.T) {
	v := Build(state.New(state.DefaultSettings(state.LangTR)))

	assert.Equal(t, state.NoLocation, v.Location)
	assert.Equal(t, "Lütfen haritada bir konum seçin veya arama yapın", v.Prompt)
	assert.Nil(t, v.Marker)
	assert.Nil(t, v.Popup)
	assert.Nil(t, v.Details)
	assert.Equal(t, "Şehir ara...", v.Search.Placeholder)
	require.Len(t, v.Cities, len(models.FeaturedCities))
	assert.Equal(t, "İstanbul", v.Cities[0].Name)
	assert.Equal(t, "Hava Durumunu Gör", v.Cities[0].ActionLabel)
}

func TestBuild_Popup(t *testing.T) {
	s := loadedState(state.DefaultSettings(state.LangEN))
	v := Build(s)

	require.NotNil(t, v.Marker)
	assert.Equal(t, istanbul, v.Marker.Coordinate)
	assert.Equal(t, "https://openweathermap.org/img/wn/02d@2x.png", v.Marker.IconURL)

	require.NotNil(t, v.Popup)
	assert.Equal(t, "Istanbul", v.Popup.Name)
	assert.Equal(t, 18.4, v.Popup.Temperature)
	assert.Equal(t, "18.4°C", v.Popup.TempText)
	assert.Equal(t, "17.9°C", v.Popup.FeelsLike)
	assert.Equal(t, "68%", v.Popup.Humidity)
	assert.Equal(t, "4.6 m/s", v.Popup.Wind)
	assert.Empty(t, v.Popup.Distance)
	assert.Nil(t, v.Details, "details stay closed until toggled")
}

func TestBuild_LoadingHidesPreviousReport(t *testing.T) {
	s := loadedState(state.DefaultSettings(state.LangEN))
	s.ShowDetails = true
	ankara := models.Coordinate{Lat: 39.9334, Lon: 32.8597}

	s, effects := state.Reduce(s, state.MapClick{Coordinate: ankara})
	require.Len(t, effects, 1)
	gen := effects[0].(state.FetchWeather).Generation

	v := Build(s)
	assert.True(t, v.Loading)
	require.NotNil(t, v.Marker)
	assert.Equal(t, ankara, v.Marker.Coordinate)
	assert.Empty(t, v.Marker.Icon)
	assert.Nil(t, v.Popup)
	assert.Nil(t, v.Details)

	s, _ = state.Reduce(s, state.WeatherFetchFailed{Generation: gen, Reason: "timeout"})

	v = Build(s)
	assert.False(t, v.Loading)
	require.NotNil(t, v.Popup)
	assert.Equal(t, "Istanbul", v.Popup.Name)
	require.NotNil(t, v.Error)
}

func TestBuild_PopupUnitsAndDistance(t *testing.T) {
	settings := state.DefaultSettings(state.LangEN)
	settings.TempUnit = meteo.Fahrenheit
	settings.WindUnit = meteo.Knots

	s := loadedState(settings)
	user := models.Coordinate{Lat: 41.0082, Lon: 28.98}
	s.UserLocation = &user
	d := meteo.DistanceKm(user, istanbul)
	s.DistanceKm = &d

	v := Build(s)
	assert.Equal(t, 65.1, v.Popup.Temperature)
	assert.Equal(t, "65.1°F", v.Popup.TempText)
	assert.Equal(t, "8.9 knot", v.Popup.Wind)
	assert.Equal(t, "134 m", v.Popup.Distance)
}

func TestBuild_UnnamedLocation(t *testing.T) {
	s := loadedState(state.DefaultSettings(state.LangEN))
	w := *s.Weather
	w.Name = ""
	s.Weather = &w

	v := Build(s)
	assert.Equal(t, "41.0082, 28.9784", v.Popup.Name)
}

func TestBuild_Details(t *testing.T) {
	s := loadedState(state.DefaultSettings(state.LangEN))
	s, _ = state.Reduce(s, state.ToggleDetails{})

	v := Build(s)
	require.NotNil(t, v.Details)
	d := v.Details

	assert.Equal(t, "Detailed Weather", d.Title)
	assert.Equal(t, "10.0 km", d.Visibility.Value)
	assert.Equal(t, "Excellent", d.Visibility.Level)
	assert.Equal(t, "NE", d.Wind.Direction)
	assert.Equal(t, 40.0, d.Wind.Degrees)
	assert.Equal(t, "7.2 m/s", d.Wind.Gust)
	require.NotNil(t, d.DewPoint)
	assert.Equal(t, "12.4°C", d.DewPoint.Value)
	assert.Equal(t, "1014 hPa", d.Pressure.Value)
	assert.Equal(t, "High", d.Pressure.Level)
	assert.Equal(t, "20%", d.CloudCover.Value)
	assert.Equal(t, "Few Clouds", d.CloudCover.Level)

	require.NotNil(t, d.Sun)
	assert.Equal(t, "05:32", d.Sun.Sunrise)
	assert.Equal(t, "20:40", d.Sun.Sunset)
	assert.Equal(t, "15 h 8 min", d.Sun.DayLength)

	assert.Equal(t, meteo.Rising, d.Trends.Temperature.Direction)
	assert.Equal(t, "Rising", d.Trends.Temperature.Text)
	assert.Equal(t, "+1.5°C", d.Trends.Temperature.Delta)
	assert.Equal(t, meteo.Rising, d.Trends.Wind.Direction)
	assert.Equal(t, "+2.1 m/s", d.Trends.Wind.Delta)
	assert.Equal(t, meteo.Stable, d.Trends.Pressure.Direction)
	assert.Equal(t, "+1 hPa", d.Trends.Pressure.Delta)

	require.Len(t, d.Hourly, HourlySlots)
	assert.Equal(t, "12:00", d.Hourly[0].Hour)
	assert.Equal(t, "15:00", d.Hourly[1].Hour)
	assert.Equal(t, 42, d.Hourly[0].Precipitation)
	assert.Equal(t, 75, d.Hourly[0].Clouds)
	assert.Equal(t, "19.0°C", d.Hourly[0].Temperature)

	require.Len(t, d.Charts.Temperature.Points, HourlySlots)
	require.Len(t, d.Charts.Precipitation.Points, HourlySlots)
	require.Len(t, d.Charts.Wind.Points, HourlySlots)
	assert.Equal(t, 19.0, d.Charts.Temperature.Points[0].Value)
	assert.Equal(t, 42.0, d.Charts.Precipitation.Points[0].Value)
	assert.Equal(t, "°C", d.Charts.Temperature.Unit)
}

func TestBuildDetails_ConvertedDeltas(t *testing.T) {
	settings := state.DefaultSettings(state.LangTR)
	settings.TempUnit = meteo.Fahrenheit
	settings.WindUnit = meteo.Knots

	d := BuildDetails(snapshot(), forecast(2), settings)

	assert.Equal(t, "+2.7°F", d.Trends.Temperature.Delta)
	assert.Equal(t, "+4.1 knot", d.Trends.Wind.Delta)
	assert.Equal(t, "Yükseliyor", d.Trends.Temperature.Text)
	assert.Equal(t, "15 sa 8 dk", d.Sun.DayLength)
	assert.Equal(t, "Mükemmel", d.Visibility.Level)
	assert.Len(t, d.Hourly, 2)
}

func TestBuildDetails_SparseInputs(t *testing.T) {
	w := snapshot()
	w.Humidity = 0
	w.Sunrise = time.Time{}

	d := BuildDetails(w, nil, state.DefaultSettings(state.LangEN))

	assert.Nil(t, d.DewPoint)
	assert.Nil(t, d.Sun)
	assert.Empty(t, d.Hourly)
	assert.Equal(t, meteo.Stable, d.Trends.Temperature.Direction)
	assert.Equal(t, "+0.0°C", d.Trends.Temperature.Delta)
	assert.Equal(t, "+0 hPa", d.Trends.Pressure.Delta)

	d = BuildDetails(snapshot(), forecast(1), state.DefaultSettings(state.LangEN))
	assert.Equal(t, meteo.Stable, d.Trends.Wind.Direction)
	assert.Len(t, d.Hourly, 1)
}

func TestBuild_ErrorLocalized(t *testing.T) {
	s := state.New(state.DefaultSettings(state.LangTR))
	s, _ = state.Reduce(s, state.GeolocationFailed{Reason: "User denied Geolocation"})

	v := Build(s)
	require.NotNil(t, v.Error)
	assert.Equal(t, state.GeolocationDenied, v.Error.Kind)
	assert.Equal(t, "Konum alınamadı: User denied Geolocation", v.Error.Message)

	s, _ = state.Reduce(s, state.ChangeSettings{Lang: state.LangEN})
	v = Build(s)
	assert.Equal(t, "Could not get location: User denied Geolocation", v.Error.Message)
}

func TestBuild_SearchResults(t *testing.T) {
	s := state.New(state.DefaultSettings(state.LangEN))
	s, effects := state.Reduce(s, state.SubmitSearch{Query: "Ankara"})
	s, _ = state.Reduce(s, state.SearchResolved{
		Seq: effects[0].(state.SearchLocations).Seq,
		Results: []models.SearchResult{
			{Name: "Ankara", Country: "TR", State: "Ankara"},
			{Name: "Ankara", Country: "US"},
		},
	})

	v := Build(s)
	assert.True(t, v.Search.Open)
	require.Len(t, v.Search.Results, 2)
	assert.Equal(t, "Ankara, TR", v.Search.Results[0].Subtitle)
	assert.Equal(t, "US", v.Search.Results[1].Subtitle)
	assert.Equal(t, 1, v.Search.Results[1].Index)
}

func TestFeaturedCities_WithSnapshots(t *testing.T) {
	settings := state.DefaultSettings(state.LangEN)
	cities := FeaturedCities(settings, map[int]*models.WeatherSnapshot{1: {Temperature: 22.25}})

	require.Len(t, cities, len(models.FeaturedCities))
	assert.Nil(t, cities[0].Current)
	require.NotNil(t, cities[1].Current)
	assert.Equal(t, "Tokyo", cities[1].Name)
	assert.Equal(t, "22.3°C", cities[1].Temperature)
}
