package device

import (
	"os"
	"strconv"
	"strings"

	"codeberg.org/mutker/tempmon/internal/errors"
)

// DefaultIIOPath is channel 0 of the first Industrial I/O ADC.
const DefaultIIOPath = "/sys/bus/iio/devices/iio:device0/in_voltage0_raw"

// iioSensor reads a Linux IIO ADC channel through sysfs. Each read of the
// attribute triggers one conversion.
type iioSensor struct {
	path      string
	fullScale int
}

// OpenIIOSensor checks that the channel is readable and returns a Sensor.
func OpenIIOSensor(path string, fullScale int) (Sensor, error) {
	errFactory := errors.New()

	if fullScale <= 0 {
		return nil, errFactory.WithData(ErrInvalidFullScale, fullScale)
	}

	s := &iioSensor{path: path, fullScale: fullScale}
	if _, err := s.ReadRaw(); err != nil {
		return nil, errFactory.Wrap(ErrDeviceNotFound, err)
	}

	return s, nil
}

func (s *iioSensor) ReadRaw() (int, error) {
	errFactory := errors.New()

	data, err := os.ReadFile(s.path)
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorReadFailed, err)
	}

	raw, err := strconv.Atoi(strings.TrimSpace(string(data)))
	if err != nil {
		return 0, errFactory.Wrap(ErrSensorReadFailed, err)
	}

	return raw, nil
}

func (s *iioSensor) FullScale() int {
	return s.fullScale
}

func (*iioSensor) Close() error {
	return nil
}
