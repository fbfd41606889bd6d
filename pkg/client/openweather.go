package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bobby-s-dev/weather-map/internal/models"
	"github.com/bobby-s-dev/weather-map/internal/observability"
	"go.uber.org/zap"
)

const (
	endpointWeather  = "weather"
	endpointForecast = "forecast"
	endpointGeocode  = "geocode"
)

var ErrEmptyQuery = errors.New("search query is empty")

type OpenWeatherClient struct {
	*BaseClient
	apiKey  string
	baseURL string
	geoURL  string
}

type owmCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

type owmMain struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  float64 `json:"pressure"`
	Humidity  float64 `json:"humidity"`
}

type owmWind struct {
	Speed float64 `json:"speed"`
	Deg   float64 `json:"deg"`
	Gust  float64 `json:"gust"`
}

type OpenWeatherCurrentResponse struct {
	Coord struct {
		Lon float64 `json:"lon"`
		Lat float64 `json:"lat"`
	} `json:"coord"`
	Weather    []owmCondition `json:"weather"`
	Main       owmMain        `json:"main"`
	Visibility float64        `json:"visibility"`
	Wind       owmWind        `json:"wind"`
	Clouds     struct {
		All float64 `json:"all"`
	} `json:"clouds"`
	Dt  int64 `json:"dt"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Timezone int    `json:"timezone"`
	Name     string `json:"name"`
}

type OpenWeatherForecastResponse struct {
	Cnt  int `json:"cnt"`
	List []struct {
		Dt      int64          `json:"dt"`
		Main    owmMain        `json:"main"`
		Weather []owmCondition `json:"weather"`
		Clouds  struct {
			All float64 `json:"all"`
		} `json:"clouds"`
		Wind       owmWind `json:"wind"`
		Visibility float64 `json:"visibility"`
		Pop        float64 `json:"pop"`
		DtTxt      string  `json:"dt_txt"`
	} `json:"list"`
	City struct {
		Name    string `json:"name"`
		Country string `json:"country"`
		Coord   struct {
			Lat float64 `json:"lat"`
			Lon float64 `json:"lon"`
		} `json:"coord"`
		Timezone int `json:"timezone"`
	} `json:"city"`
}

type openWeatherGeoResult struct {
	Name       string            `json:"name"`
	LocalNames map[string]string `json:"local_names"`
	Lat        float64           `json:"lat"`
	Lon        float64           `json:"lon"`
	Country    string            `json:"country"`
	State      string            `json:"state"`
}

// NewOpenWeatherClient builds a client with its own rate limiter and circuit
// breaker. name labels both in metrics and logs.
func NewOpenWeatherClient(name, apiKey, baseURL, geoURL string, config ClientConfig, metrics *observability.Metrics, logger *zap.Logger) *OpenWeatherClient {
	baseClient := NewBaseClient(name, config, metrics, logger)
	return &OpenWeatherClient{
		BaseClient: baseClient,
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		geoURL:     strings.TrimRight(geoURL, "/"),
	}
}

// GetCurrentWeather fetches current conditions at coord, localized to lang.
func (c *OpenWeatherClient) GetCurrentWeather(ctx context.Context, coord models.Coordinate, lang string) (*models.WeatherSnapshot, error) {
	data, err := c.Get(ctx, endpointWeather, c.weatherURL("weather", coord, lang))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch current weather: %w", err)
	}

	var response OpenWeatherCurrentResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	snapshot := &models.WeatherSnapshot{
		Name:        response.Name,
		Country:     response.Sys.Country,
		Coordinate:  models.Coordinate{Lat: response.Coord.Lat, Lon: response.Coord.Lon},
		Temperature: response.Main.Temp,
		FeelsLike:   response.Main.FeelsLike,
		TempMin:     response.Main.TempMin,
		TempMax:     response.Main.TempMax,
		Humidity:    response.Main.Humidity,
		Pressure:    response.Main.Pressure,
		WindSpeed:   response.Wind.Speed,
		WindDegree:  response.Wind.Deg,
		WindGust:    response.Wind.Gust,
		Visibility:  response.Visibility,
		CloudCover:  response.Clouds.All,
		Condition:   firstCondition(response.Weather),
		Timestamp:   time.Unix(response.Dt, 0).UTC(),
		UTCOffset:   response.Timezone,
	}
	if response.Sys.Sunrise > 0 && response.Sys.Sunset > 0 {
		snapshot.Sunrise = time.Unix(response.Sys.Sunrise, 0).UTC()
		snapshot.Sunset = time.Unix(response.Sys.Sunset, 0).UTC()
	}

	return snapshot, nil
}

// GetForecast fetches the 5 day / 3 hour forecast at coord.
func (c *OpenWeatherClient) GetForecast(ctx context.Context, coord models.Coordinate, lang string) (*models.ForecastSeries, error) {
	data, err := c.Get(ctx, endpointForecast, c.weatherURL("forecast", coord, lang))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch forecast: %w", err)
	}

	var response OpenWeatherForecastResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse forecast response: %w", err)
	}

	series := &models.ForecastSeries{
		City:      response.City.Name,
		Country:   response.City.Country,
		UTCOffset: response.City.Timezone,
		Entries:   make([]models.ForecastEntry, 0, len(response.List)),
	}

	for _, item := range response.List {
		series.Entries = append(series.Entries, models.ForecastEntry{
			Time:                     time.Unix(item.Dt, 0).UTC(),
			Temperature:              item.Main.Temp,
			FeelsLike:                item.Main.FeelsLike,
			Humidity:                 item.Main.Humidity,
			Pressure:                 item.Main.Pressure,
			WindSpeed:                item.Wind.Speed,
			WindDegree:               item.Wind.Deg,
			WindGust:                 item.Wind.Gust,
			Visibility:               item.Visibility,
			CloudCover:               item.Clouds.All,
			PrecipitationProbability: item.Pop,
			Condition:                firstCondition(item.Weather),
		})
	}

	return series, nil
}

// Geocode resolves a free-text place name into ranked candidates.
func (c *OpenWeatherClient) Geocode(ctx context.Context, query string, limit int) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	params := url.Values{}
	params.Add("q", query)
	params.Add("limit", strconv.Itoa(limit))
	params.Add("appid", c.apiKey)

	data, err := c.Get(ctx, endpointGeocode, c.geoURL+"/direct?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("failed to geocode %q: %w", query, err)
	}

	var response []openWeatherGeoResult
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("failed to parse geocoding response: %w", err)
	}

	results := make([]models.SearchResult, 0, len(response))
	for _, r := range response {
		results = append(results, models.SearchResult{
			Name:       r.Name,
			Country:    r.Country,
			State:      r.State,
			Coordinate: models.Coordinate{Lat: r.Lat, Lon: r.Lon},
		})
	}

	return results, nil
}

func (c *OpenWeatherClient) weatherURL(path string, coord models.Coordinate, lang string) string {
	params := url.Values{}
	params.Add("lat", strconv.FormatFloat(coord.Lat, 'f', -1, 64))
	params.Add("lon", strconv.FormatFloat(coord.Lon, 'f', -1, 64))
	params.Add("appid", c.apiKey)
	params.Add("units", "metric")
	if lang != "" {
		params.Add("lang", lang)
	}
	return fmt.Sprintf("%s/%s?%s", c.baseURL, path, params.Encode())
}

func firstCondition(conditions []owmCondition) models.Condition {
	if len(conditions) == 0 {
		return models.Condition{}
	}
	w := conditions[0]
	return models.Condition{
		ID:          w.ID,
		Main:        w.Main,
		Description: w.Description,
		Icon:        w.Icon,
	}
}
