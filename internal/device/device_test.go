package device_test

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemperatureKnownValues(t *testing.T) {
	assert.InDelta(t, 25.0407, device.Temperature(512, 1023, control.Celsius), 1e-3)
	assert.InDelta(t, 77.0732, device.Temperature(512, 1023, control.Fahrenheit), 1e-3)
	assert.InDelta(t, 41.9995, device.Temperature(700, 1023, control.Celsius), 1e-3)
	assert.InDelta(t, 45.9796, device.Temperature(300, 1023, control.Fahrenheit), 1e-3)
}

func TestFahrenheitMatchesCelsius(t *testing.T) {
	for raw := 1; raw < device.DefaultFullScale; raw++ {
		c := device.Temperature(raw, device.DefaultFullScale, control.Celsius)
		f := device.Temperature(raw, device.DefaultFullScale, control.Fahrenheit)
		require.InDelta(t, c*9/5+32, f, 1e-9, "raw=%d", raw)
	}
}

func TestTemperatureAtRangeEnds(t *testing.T) {
	// Both ends collapse to absolute zero; past full scale the log is undefined.
	assert.InDelta(t, -273.15, device.Temperature(0, device.DefaultFullScale, control.Celsius), 1e-9)
	assert.InDelta(t, -273.15, device.Temperature(device.DefaultFullScale, device.DefaultFullScale, control.Celsius), 1e-9)
	assert.True(t, math.IsNaN(device.Temperature(device.DefaultFullScale+1, device.DefaultFullScale, control.Celsius)))
}

func TestIIOSensor(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in_voltage0_raw")
	require.NoError(t, os.WriteFile(path, []byte("512\n"), 0o600))

	s, err := device.OpenIIOSensor(path, 1023)
	require.NoError(t, err)
	defer s.Close()

	raw, err := s.ReadRaw()
	require.NoError(t, err)
	assert.Equal(t, 512, raw)
	assert.Equal(t, 1023, s.FullScale())

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err = s.ReadRaw()
	assert.True(t, errors.HasCode(err, device.ErrSensorReadFailed))
}

func TestIIOSensorMissing(t *testing.T) {
	_, err := device.OpenIIOSensor(filepath.Join(t.TempDir(), "absent"), 1023)
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, device.ErrDeviceNotFound))

	_, err = device.OpenIIOSensor("unused", 0)
	assert.True(t, errors.HasCode(err, device.ErrInvalidFullScale))
}

func TestSimulatedSensorRepeatsLastValue(t *testing.T) {
	s, err := device.NewSimulatedSensor(1023, 500, 510)
	require.NoError(t, err)

	for _, want := range []int{500, 510, 510} {
		raw, err := s.ReadRaw()
		require.NoError(t, err)
		assert.Equal(t, want, raw)
	}

	_, err = device.NewSimulatedSensor(1023)
	assert.True(t, errors.HasCode(err, device.ErrNoSimulatedValues))
}

func TestFileButton(t *testing.T) {
	path := filepath.Join(t.TempDir(), "press")
	b := device.NewFileButton(path)
	assert.False(t, b.IsPressed())

	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.True(t, b.IsPressed())

	assert.False(t, device.NewFileButton("").IsPressed())
}

func TestOpenSelectsSource(t *testing.T) {
	s, err := device.OpenSensor(device.SensorConfig{Source: device.SourceSim, SimValues: []int{512}})
	require.NoError(t, err)
	assert.Equal(t, device.DefaultFullScale, s.FullScale())

	b, err := device.OpenButton(device.ButtonConfig{Source: device.SourceNone})
	require.NoError(t, err)
	assert.False(t, b.IsPressed())

	_, err = device.OpenSensor(device.SensorConfig{Source: "thermocouple"})
	assert.True(t, errors.HasCode(err, device.ErrUnknownSource))

	_, err = device.OpenButton(device.ButtonConfig{Source: "usb"})
	assert.True(t, errors.HasCode(err, device.ErrUnknownSource))
}
