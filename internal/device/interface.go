// Package device provides the temperature sensor and push button the agent
// polls, along with the thermistor conversion.
package device

// Sensor reads raw values from an analog-to-digital converter.
type Sensor interface {
	// ReadRaw returns one conversion in the range [0, FullScale()].
	ReadRaw() (int, error)
	// FullScale returns the converter's maximum raw value.
	FullScale() int
	Close() error
}

// Button reports the state of a momentary push button.
type Button interface {
	// IsPressed polls the input once. It must not block.
	IsPressed() bool
	Close() error
}

// Source names accepted in configuration.
const (
	SourceIIO  = "iio"
	SourceSim  = "sim"
	SourceGPIO = "gpio"
	SourceNone = "none"
)

// SensorConfig selects and parameterises the sensor implementation.
type SensorConfig struct {
	Source    string `mapstructure:"source"`
	Path      string `mapstructure:"path"`
	FullScale int    `mapstructure:"full_scale"`
	SimValues []int  `mapstructure:"sim_values"`
}

// ButtonConfig selects and parameterises the button implementation.
type ButtonConfig struct {
	Source string `mapstructure:"source"`
	Pin    string `mapstructure:"pin"`
	Path   string `mapstructure:"path"`
}
