package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const currentFixture = `{
  "coord": {"lon": 28.9784, "lat": 41.0082},
  "weather": [{"id": 801, "main": "Clouds", "description": "few clouds", "icon": "02d"}],
  "main": {"temp": 18.4, "feels_like": 17.9, "temp_min": 17.1, "temp_max": 19.6, "pressure": 1014, "humidity": 68},
  "visibility": 10000,
  "wind": {"speed": 4.6, "deg": 40, "gust": 7.2},
  "clouds": {"all": 20},
  "dt": 1717236000,
  "sys": {"country": "TR", "sunrise": 1717207560, "sunset": 1717261380},
  "timezone": 10800,
  "name": "Istanbul"
}`

const forecastFixture = `{
  "cnt": 2,
  "list": [
    {"dt": 1717243200, "main": {"temp": 19.0, "feels_like": 18.5, "temp_min": 18, "temp_max": 19, "pressure": 1013, "humidity": 65},
     "weather": [{"id": 500, "main": "Rain", "description": "light rain", "icon": "10d"}],
     "clouds": {"all": 75}, "wind": {"speed": 5.1, "deg": 30}, "visibility": 9000, "pop": 0.42, "dt_txt": "2024-06-01 12:00:00"},
    {"dt": 1717254000, "main": {"temp": 17.5, "feels_like": 17.0, "temp_min": 17, "temp_max": 18, "pressure": 1012, "humidity": 70},
     "weather": [], "clouds": {"all": 90}, "wind": {"speed": 3.0, "deg": 10}, "visibility": 8000, "pop": 0.1, "dt_txt": "2024-06-01 15:00:00"}
  ],
  "city": {"name": "Istanbul", "country": "TR", "coord": {"lat": 41.0082, "lon": 28.9784}, "timezone": 10800}
}`

const geoFixture = `[
  {"name": "Ankara", "local_names": {"tr": "Ankara"}, "lat": 39.9208, "lon": 32.8541, "country": "TR", "state": "Ankara"},
  {"name": "Ankara", "lat": 36.1, "lon": -80.2, "country": "US", "state": "North Carolina"}
]`

type requestLog struct {
	mu   sync.Mutex
	reqs []*http.Request
}

func (l *requestLog) all() []*http.Request {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]*http.Request(nil), l.reqs...)
}

func newOpenWeatherTestServer(t *testing.T, log *requestLog) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	record := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			log.mu.Lock()
			log.reqs = append(log.reqs, r)
			log.mu.Unlock()
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(body))
		}
	}
	mux.HandleFunc("/data/2.5/weather", record(currentFixture))
	mux.HandleFunc("/data/2.5/forecast", record(forecastFixture))
	mux.HandleFunc("/geo/1.0/direct", record(geoFixture))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestOpenWeatherClient(srv *httptest.Server) *OpenWeatherClient {
	return NewOpenWeatherClient("openweather", "secret", srv.URL+"/data/2.5/", srv.URL+"/geo/1.0",
		testClientConfig(), observability.NewMetricsForTesting(), zap.NewNop())
}

var istanbul = models.Coordinate{Lat: 41.0082, Lon: 28.9784}

func TestOpenWeatherClient_GetCurrentWeather(t *testing.T) {
	log := &requestLog{}
	c := newTestOpenWeatherClient(newOpenWeatherTestServer(t, log))

	snapshot, err := c.GetCurrentWeather(context.Background(), istanbul, "tr")
	require.NoError(t, err)

	requests := log.all()
	require.Len(t, requests, 1)
	q := requests[0].URL.Query()
	assert.Equal(t, "41.0082", q.Get("lat"))
	assert.Equal(t, "28.9784", q.Get("lon"))
	assert.Equal(t, "secret", q.Get("appid"))
	assert.Equal(t, "metric", q.Get("units"))
	assert.Equal(t, "tr", q.Get("lang"))

	assert.Equal(t, "Istanbul", snapshot.Name)
	assert.Equal(t, "TR", snapshot.Country)
	assert.Equal(t, 18.4, snapshot.Temperature)
	assert.Equal(t, 68.0, snapshot.Humidity)
	assert.Equal(t, 10000.0, snapshot.Visibility)
	assert.Equal(t, 20.0, snapshot.CloudCover)
	assert.Equal(t, 40.0, snapshot.WindDegree)
	assert.Equal(t, "02d", snapshot.Condition.Icon)
	assert.Equal(t, time.Unix(1717207560, 0).UTC(), snapshot.Sunrise)
	assert.Equal(t, time.Unix(1717261380, 0).UTC(), snapshot.Sunset)
	assert.Equal(t, 10800, snapshot.UTCOffset)
}

func TestOpenWeatherClient_GetForecast(t *testing.T) {
	log := &requestLog{}
	c := newTestOpenWeatherClient(newOpenWeatherTestServer(t, log))

	series, err := c.GetForecast(context.Background(), istanbul, "en")
	require.NoError(t, err)

	requests := log.all()
	require.Len(t, requests, 1)
	assert.Equal(t, "/data/2.5/forecast", requests[0].URL.Path)
	assert.Equal(t, "en", requests[0].URL.Query().Get("lang"))

	require.Len(t, series.Entries, 2)
	assert.Equal(t, "Istanbul", series.City)
	assert.Equal(t, 10800, series.UTCOffset)
	assert.Equal(t, 0.42, series.Entries[0].PrecipitationProbability)
	assert.Equal(t, 75.0, series.Entries[0].CloudCover)
	assert.Equal(t, "light rain", series.Entries[0].Condition.Description)
	assert.Equal(t, models.Condition{}, series.Entries[1].Condition)
	assert.True(t, series.Entries[0].Time.Before(series.Entries[1].Time))
}

func TestOpenWeatherClient_Geocode(t *testing.T) {
	t.Run("returns ranked candidates", func(t *testing.T) {
		log := &requestLog{}
		c := newTestOpenWeatherClient(newOpenWeatherTestServer(t, log))

		results, err := c.Geocode(context.Background(), "  Ankara ", 5)
		require.NoError(t, err)

		requests := log.all()
		require.Len(t, requests, 1)
		q := requests[0].URL.Query()
		assert.Equal(t, "Ankara", q.Get("q"))
		assert.Equal(t, "5", q.Get("limit"))
		assert.Equal(t, "secret", q.Get("appid"))

		require.Len(t, results, 2)
		assert.Equal(t, "TR", results[0].Country)
		assert.Equal(t, "North Carolina", results[1].State)
		assert.Equal(t, models.Coordinate{Lat: 39.9208, Lon: 32.8541}, results[0].Coordinate)
	})

	t.Run("blank query is rejected without a request", func(t *testing.T) {
		log := &requestLog{}
		c := newTestOpenWeatherClient(newOpenWeatherTestServer(t, log))

		_, err := c.Geocode(context.Background(), "   ", 5)

		assert.ErrorIs(t, err, ErrEmptyQuery)
		assert.Empty(t, log.all())
	})
}

func TestOpenWeatherClient_UpstreamFailure(t *testing.T) {
	srv, _ := newCountingServer(t, http.StatusUnauthorized, `{"cod":401,"message":"Invalid API key"}`)
	c := NewOpenWeatherClient("openweather", "bad", srv.URL, srv.URL, testClientConfig(), observability.NewMetricsForTesting(), zap.NewNop())

	_, err := c.GetCurrentWeather(context.Background(), istanbul, "en")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to fetch current weather")
	assert.Contains(t, err.Error(), "HTTP 401")
}
