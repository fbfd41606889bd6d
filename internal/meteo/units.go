package meteo

import (
	"fmt"
	"math"
)

type TempUnit string

const (
	Celsius    TempUnit = "C"
	Fahrenheit TempUnit = "F"
)

type WindUnit string

const (
	MetersPerSecond WindUnit = "ms"
	Knots           WindUnit = "knot"
	KmPerHour       WindUnit = "kph"
)

func CelsiusToFahrenheit(c float64) float64 {
	return c*9/5 + 32
}

func MsToKnots(ms float64) float64 {
	return ms * 1.94384
}

func MsToKph(ms float64) float64 {
	return ms * 3.6
}

// Round1 rounds to one decimal place for display.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ParseTempUnit returns the unit for s, or false if s names no known unit.
func ParseTempUnit(s string) (TempUnit, bool) {
	switch TempUnit(s) {
	case Celsius, Fahrenheit:
		return TempUnit(s), true
	}
	return "", false
}

func ParseWindUnit(s string) (WindUnit, bool) {
	switch WindUnit(s) {
	case MetersPerSecond, Knots, KmPerHour:
		return WindUnit(s), true
	}
	return "", false
}

// Convert takes a Celsius reading and returns it in u, rounded to one decimal.
func (u TempUnit) Convert(c float64) float64 {
	if u == Fahrenheit {
		return Round1(CelsiusToFahrenheit(c))
	}
	return Round1(c)
}

// ConvertDelta converts a temperature difference. Offsets do not apply to deltas.
func (u TempUnit) ConvertDelta(dc float64) float64 {
	if u == Fahrenheit {
		return Round1(dc * 9 / 5)
	}
	return Round1(dc)
}

func (u TempUnit) Format(c float64) string {
	return fmt.Sprintf("%.1f°%s", u.Convert(c), string(u))
}

// Convert takes a speed in m/s and returns it in u, rounded to one decimal.
func (u WindUnit) Convert(ms float64) float64 {
	switch u {
	case Knots:
		return Round1(MsToKnots(ms))
	case KmPerHour:
		return Round1(MsToKph(ms))
	default:
		return Round1(ms)
	}
}

func (u WindUnit) Symbol() string {
	switch u {
	case Knots:
		return "knot"
	case KmPerHour:
		return "km/h"
	default:
		return "m/s"
	}
}

func (u WindUnit) Format(ms float64) string {
	return fmt.Sprintf("%.1f %s", u.Convert(ms), u.Symbol())
}
