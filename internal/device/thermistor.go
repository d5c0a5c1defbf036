package device

import (
	"math"

	"codeberg.org/mutker/tempmon/internal/control"
)

const (
	// DefaultFullScale is the maximum reading of a 10-bit converter.
	DefaultFullScale = 1023

	// Nominal B constant of the Grove temperature sensor thermistor.
	thermistorB = 4275
	// Reference temperature (25°C) in Kelvin.
	referenceKelvin = 298.15
	kelvinOffset    = 273.15
)

// Temperature converts a raw ADC reading into degrees on the given scale.
// Readings at either end of the range map to absolute zero and readings
// above full scale yield NaN.
func Temperature(raw, fullScale int, scale control.Scale) float64 {
	r := float64(fullScale)/float64(raw) - 1.0
	celsius := 1.0/(math.Log(r)/thermistorB+1.0/referenceKelvin) - kelvinOffset

	if scale == control.Fahrenheit {
		return CelsiusToFahrenheit(celsius)
	}

	return celsius
}

func CelsiusToFahrenheit(c float64) float64 {
	return c*9.0/5.0 + 32.0
}
