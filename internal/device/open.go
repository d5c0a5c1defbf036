package device

import "codeberg.org/mutker/tempmon/internal/errors"

// OpenSensor builds the sensor selected by cfg.
func OpenSensor(cfg SensorConfig) (Sensor, error) {
	fullScale := cfg.FullScale
	if fullScale == 0 {
		fullScale = DefaultFullScale
	}

	switch cfg.Source {
	case SourceIIO, "":
		path := cfg.Path
		if path == "" {
			path = DefaultIIOPath
		}
		return OpenIIOSensor(path, fullScale)
	case SourceSim:
		return NewSimulatedSensor(fullScale, cfg.SimValues...)
	default:
		return nil, errors.New().WithData(ErrUnknownSource, cfg.Source)
	}
}

// OpenButton builds the button selected by cfg. The "none" source never
// reads as pressed.
func OpenButton(cfg ButtonConfig) (Button, error) {
	switch cfg.Source {
	case SourceGPIO, "":
		return OpenGPIOButton(cfg.Pin)
	case SourceSim:
		return NewFileButton(cfg.Path), nil
	case SourceNone:
		return NewFileButton(""), nil
	default:
		return nil, errors.New().WithData(ErrUnknownSource, cfg.Source)
	}
}
