package models

// Coordinate is a WGS84 position in degrees.
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// SearchResult is one geocoding hit. It is consumed once to set a Coordinate.
type SearchResult struct {
	Name       string     `json:"name"`
	Country    string     `json:"country"`
	State      string     `json:"state,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
}

type LocalizedName struct {
	EN string `json:"en"`
	TR string `json:"tr"`
}

// FeaturedCity is a pinned marker shown on the map regardless of selection.
type FeaturedCity struct {
	Name       LocalizedName `json:"name"`
	Country    string        `json:"country"`
	Coordinate Coordinate    `json:"coordinate"`
}

var FeaturedCities = []FeaturedCity{
	{Name: LocalizedName{EN: "Istanbul", TR: "İstanbul"}, Country: "TR", Coordinate: Coordinate{Lat: 41.0082, Lon: 28.9784}},
	{Name: LocalizedName{EN: "Tokyo", TR: "Tokyo"}, Country: "JP", Coordinate: Coordinate{Lat: 35.6762, Lon: 139.6503}},
	{Name: LocalizedName{EN: "Shanghai", TR: "Şanghay"}, Country: "CN", Coordinate: Coordinate{Lat: 31.2304, Lon: 121.4737}},
	{Name: LocalizedName{EN: "London", TR: "Londra"}, Country: "GB", Coordinate: Coordinate{Lat: 51.5074, Lon: -0.1278}},
	{Name: LocalizedName{EN: "Paris", TR: "Paris"}, Country: "FR", Coordinate: Coordinate{Lat: 48.8566, Lon: 2.3522}},
	{Name: LocalizedName{EN: "New York", TR: "New York"}, Country: "US", Coordinate: Coordinate{Lat: 40.7128, Lon: -74.0060}},
	{Name: LocalizedName{EN: "Los Angeles", TR: "Los Angeles"}, Country: "US", Coordinate: Coordinate{Lat: 34.0522, Lon: -118.2437}},
}
