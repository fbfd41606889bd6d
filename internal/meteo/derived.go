package meteo

import (
	"errors"
	"math"
	"time"
)

// Magnus formula constants
const (
	magnusA = 17.27
	magnusB = 237.7
)

const (
	DefaultTrendThreshold  = 0.5
	PressureTrendThreshold = 1.0
)

var ErrNonPositiveHumidity = errors.New("relative humidity must be greater than zero")

type TrendDirection string

const (
	Rising  TrendDirection = "rising"
	Falling TrendDirection = "falling"
	Stable  TrendDirection = "stable"
)

type VisibilityLevel string

const (
	VisibilityExcellent VisibilityLevel = "excellent"
	VisibilityGood      VisibilityLevel = "good"
	VisibilityModerate  VisibilityLevel = "moderate"
)

type CloudLevel string

const (
	CloudClear     CloudLevel = "clear"
	CloudFew       CloudLevel = "few"
	CloudScattered CloudLevel = "scattered"
	CloudBroken    CloudLevel = "broken"
	CloudOvercast  CloudLevel = "overcast"
)

type PressureLevel string

const (
	PressureHigh   PressureLevel = "high"
	PressureNormal PressureLevel = "normal"
	PressureLow    PressureLevel = "low"
)

// StandardPressureHPa is mean sea-level pressure.
const StandardPressureHPa = 1013.0

// DewPointC approximates the dew point in Celsius. The logarithm in the
// Magnus formula is undefined for humidity <= 0.
func DewPointC(tempC, relHumidityPct float64) (float64, error) {
	if relHumidityPct <= 0 {
		return 0, ErrNonPositiveHumidity
	}
	alpha := (magnusA*tempC)/(magnusB+tempC) + math.Log(relHumidityPct/100)
	return (magnusB * alpha) / (magnusA - alpha), nil
}

// Trend classifies the change from previous to current against threshold.
func Trend(current, previous, threshold float64) TrendDirection {
	diff := current - previous
	switch {
	case diff > threshold:
		return Rising
	case diff < -threshold:
		return Falling
	default:
		return Stable
	}
}

func TempTrend(current, previous float64) TrendDirection {
	return Trend(current, previous, DefaultTrendThreshold)
}

func WindTrend(current, previous float64) TrendDirection {
	return Trend(current, previous, DefaultTrendThreshold)
}

func PressureTrend(current, previous float64) TrendDirection {
	return Trend(current, previous, PressureTrendThreshold)
}

func VisibilityBucket(meters float64) VisibilityLevel {
	switch {
	case meters >= 10000:
		return VisibilityExcellent
	case meters >= 5000:
		return VisibilityGood
	default:
		return VisibilityModerate
	}
}

func CloudBucket(pct float64) CloudLevel {
	switch {
	case pct < 10:
		return CloudClear
	case pct < 25:
		return CloudFew
	case pct < 50:
		return CloudScattered
	case pct < 75:
		return CloudBroken
	default:
		return CloudOvercast
	}
}

func PressureBucket(hpa float64) PressureLevel {
	switch {
	case hpa > StandardPressureHPa:
		return PressureHigh
	case hpa < StandardPressureHPa:
		return PressureLow
	default:
		return PressureNormal
	}
}

// DayLength splits the span between sunrise and sunset into hours and minutes.
// A span that ends before it starts yields zero.
func DayLength(sunrise, sunset time.Time) (hours, minutes int) {
	span := sunset.Sub(sunrise)
	if span <= 0 {
		return 0, 0
	}
	total := span.Hours()
	hours = int(math.Floor(total))
	minutes = int(math.Round((total - float64(hours)) * 60))
	if minutes == 60 {
		hours++
		minutes = 0
	}
	return hours, minutes
}
