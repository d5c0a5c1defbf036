package device

import (
	"codeberg.org/mutker/tempmon/internal/errors"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

type gpioButton struct {
	pin gpio.PinIO
}

// OpenGPIOButton configures the named pin as an input. A high level reads
// as pressed.
func OpenGPIOButton(name string) (Button, error) {
	errFactory := errors.New()

	if _, err := host.Init(); err != nil {
		return nil, errFactory.Wrap(ErrInitFailed, err)
	}

	pin := gpioreg.ByName(name)
	if pin == nil {
		return nil, errFactory.WithData(ErrDeviceNotFound, name)
	}

	if err := pin.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, errFactory.Wrap(ErrButtonConfigFailed, err)
	}

	return &gpioButton{pin: pin}, nil
}

func (b *gpioButton) IsPressed() bool {
	return b.pin.Read() == gpio.High
}

func (b *gpioButton) Close() error {
	if err := b.pin.Halt(); err != nil {
		return errors.New().Wrap(ErrCloseFailed, err)
	}
	return nil
}
