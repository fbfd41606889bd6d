package models

import (
	"time"
)

type Condition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// WeatherSnapshot is a single point-in-time reading. It is replaced
// wholesale on every fetch and never mutated.
type WeatherSnapshot struct {
	Name        string     `json:"name"`
	Country     string     `json:"country"`
	Coordinate  Coordinate `json:"coordinate"`
	Temperature float64    `json:"temperature"`
	FeelsLike   float64    `json:"feels_like"`
	TempMin     float64    `json:"temp_min"`
	TempMax     float64    `json:"temp_max"`
	Humidity    float64    `json:"humidity"`
	Pressure    float64    `json:"pressure"`
	WindSpeed   float64    `json:"wind_speed"`
	WindDegree  float64    `json:"wind_degree"`
	WindGust    float64    `json:"wind_gust,omitempty"`
	Visibility  float64    `json:"visibility"`
	CloudCover  float64    `json:"cloud_cover"`
	Sunrise     time.Time  `json:"sunrise,omitempty"`
	Sunset      time.Time  `json:"sunset,omitempty"`
	UTCOffset   int        `json:"utc_offset"` // seconds east of UTC
	Condition   Condition  `json:"condition"`
	Timestamp   time.Time  `json:"timestamp"`
}

type ForecastEntry struct {
	Time                     time.Time `json:"time"`
	Temperature              float64   `json:"temperature"`
	FeelsLike                float64   `json:"feels_like"`
	Humidity                 float64   `json:"humidity"`
	Pressure                 float64   `json:"pressure"`
	WindSpeed                float64   `json:"wind_speed"`
	WindDegree               float64   `json:"wind_degree"`
	WindGust                 float64   `json:"wind_gust,omitempty"`
	Visibility               float64   `json:"visibility"`
	CloudCover               float64   `json:"cloud_cover"`
	PrecipitationProbability float64   `json:"pop"` // 0..1
	Condition                Condition `json:"condition"`
}

// ForecastSeries holds entries in ascending time order at a fixed 3-hour step.
type ForecastSeries struct {
	City      string          `json:"city"`
	Country   string          `json:"country"`
	UTCOffset int             `json:"utc_offset"`
	Entries   []ForecastEntry `json:"entries"`
}

// Next returns at most n leading entries.
func (f *ForecastSeries) Next(n int) []ForecastEntry {
	if f == nil {
		return nil
	}
	if n > len(f.Entries) {
		n = len(f.Entries)
	}
	return f.Entries[:n]
}

// WeatherReport pairs the two results of one fetch.
type WeatherReport struct {
	Current   *WeatherSnapshot `json:"current"`
	Forecast  *ForecastSeries  `json:"forecast"`
	FetchedAt time.Time        `json:"fetched_at"`
}
