package agent

import (
	"math"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/history"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
)

// Sampler reads the sensor once per period and emits a record while
// reporting is enabled.
type Sampler struct {
	state      *control.State
	sensor     device.Sensor
	emitter    *report.Emitter
	history    history.Recorder
	periodUnit time.Duration
	now        func() time.Time
	logger     logger.Logger
}

// Run loops until shutdown is requested. A sensor or log failure ends the
// loop with an error.
func (s *Sampler) Run() error {
	for {
		if s.state.IsShutdownRequested() {
			return nil
		}

		if s.state.IsReportingEnabled() {
			if err := s.sample(); err != nil {
				return err
			}
		}

		s.sleep(s.interval())
	}
}

func (s *Sampler) sample() error {
	at := s.now()

	raw, err := s.sensor.ReadRaw()
	if err != nil {
		return errors.New().Wrap(errors.ErrReadSensor, err)
	}

	scale := s.state.Scale()
	sample := report.Sample{
		Time:        at,
		Raw:         raw,
		Temperature: device.Temperature(raw, s.sensor.FullScale(), scale),
		Scale:       scale,
	}

	if err := s.emitter.Emit(sample.String()); err != nil {
		return err
	}

	if err := s.history.Record(&sample); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to record sample history")
	}

	s.logger.Debug().
		Int("raw", raw).
		Float64("temperature", sample.Temperature).
		Str("scale", scale.String()).
		Msg("Sample emitted")

	return nil
}

// interval converts the current period to a duration, saturating instead
// of overflowing.
func (s *Sampler) interval() time.Duration {
	period := s.state.Period()
	if period > int64(math.MaxInt64/s.periodUnit) {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(period) * s.periodUnit
}

// sleep waits for d or until shutdown is requested, whichever is first.
func (s *Sampler) sleep(d time.Duration) {
	if d <= 0 {
		return
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-s.state.Done():
	}
}
