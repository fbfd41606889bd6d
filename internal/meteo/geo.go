package meteo

import (
	"fmt"
	"math"

	"github.com/bobby-s-dev/weather-map/internal/models"
)

const earthRadiusKm = 6371.0

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// DistanceKm returns the haversine great-circle distance between two coordinates.
func DistanceKm(a, b models.Coordinate) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLon := toRadians(b.Lon - a.Lon)
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Sin(dLon/2)*math.Sin(dLon/2)*math.Cos(lat1)*math.Cos(lat2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// CompassDirection maps a bearing in degrees to one of eight compass labels.
func CompassDirection(degrees float64) string {
	// Bring negative or >360 bearings back into range before bucketing
	normalized := math.Mod(degrees, 360)
	if normalized < 0 {
		normalized += 360
	}
	index := int(math.Round(normalized/45)) % 8
	return compassPoints[index]
}

// FormatDistance renders metres below one kilometre and kilometres otherwise.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%.0f m", km*1000)
	}
	return fmt.Sprintf("%.1f km", km)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
