// Package agent runs the sampler, the button watcher and the command
// reader concurrently and coordinates their shutdown.
//
// Shutdown is requested through control.State by whichever trigger comes
// first: the run context (SIGINT), an OFF command or a button press. Run
// waits for the sampler to stop, emits the single SHUTDOWN record, then
// waits for the other two activities.
package agent

import (
	"context"
	"io"
	"sync"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/history"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
)

const (
	DefaultButtonPollInterval = 10 * time.Millisecond
	DefaultInputTimeout       = 10 * time.Millisecond
	DefaultChunkSize          = 128
)

type Agent struct {
	state   *control.State
	sensor  device.Sensor
	button  device.Button
	input   io.Reader
	emitter *report.Emitter
	history history.Recorder

	buttonPollInterval time.Duration
	inputTimeout       time.Duration
	chunkSize          int
	periodUnit         time.Duration
	now                func() time.Time
	logger             logger.Logger
}

// Option configures an Agent.
type Option func(*Agent)

// WithHistory records every emitted sample.
func WithHistory(rec history.Recorder) Option {
	return func(a *Agent) {
		a.history = rec
	}
}

func WithButtonPollInterval(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.buttonPollInterval = d
		}
	}
}

func WithInputTimeout(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.inputTimeout = d
		}
	}
}

// WithChunkSize sets the maximum number of bytes taken per input read.
func WithChunkSize(n int) Option {
	return func(a *Agent) {
		if n > 0 {
			a.chunkSize = n
		}
	}
}

// WithPeriodUnit sets the duration of one period step. It is one second
// outside of tests.
func WithPeriodUnit(d time.Duration) Option {
	return func(a *Agent) {
		if d > 0 {
			a.periodUnit = d
		}
	}
}

// WithClock replaces time.Now for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(a *Agent) {
		a.now = now
	}
}

func WithLogger(log logger.Logger) Option {
	return func(a *Agent) {
		a.logger = log
	}
}

func New(
	state *control.State,
	sensor device.Sensor,
	button device.Button,
	input io.Reader,
	emitter *report.Emitter,
	opts ...Option,
) *Agent {
	a := &Agent{
		state:              state,
		sensor:             sensor,
		button:             button,
		input:              input,
		emitter:            emitter,
		history:            noHistory{},
		buttonPollInterval: DefaultButtonPollInterval,
		inputTimeout:       DefaultInputTimeout,
		chunkSize:          DefaultChunkSize,
		periodUnit:         time.Second,
		now:                time.Now,
		logger:             logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Run starts all activities and blocks until they have stopped. Cancelling
// ctx requests shutdown and does nothing else.
//
// A non-nil error is fatal: Run returns as soon as any activity fails,
// without emitting the SHUTDOWN record or waiting for the others.
func (a *Agent) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		a.state.RequestShutdown(control.CauseInterrupt)
	})
	defer stop()

	sampler := &Sampler{
		state:      a.state,
		sensor:     a.sensor,
		emitter:    a.emitter,
		history:    a.history,
		periodUnit: a.periodUnit,
		now:        a.now,
		logger:     a.logger,
	}
	watcher := &ButtonWatcher{
		state:    a.state,
		button:   a.button,
		interval: a.buttonPollInterval,
		logger:   a.logger,
	}
	reader := &CommandReader{
		state:     a.state,
		input:     a.input,
		emitter:   a.emitter,
		timeout:   a.inputTimeout,
		chunkSize: a.chunkSize,
		logger:    a.logger,
	}

	// One slot per activity that can fail.
	fatal := make(chan error, 2)
	samplerDone := make(chan struct{})
	var wg sync.WaitGroup

	go func() {
		defer close(samplerDone)
		if err := sampler.Run(); err != nil {
			fatal <- err
		}
	}()

	wg.Add(2)
	go func() {
		defer wg.Done()
		watcher.Run()
	}()
	go func() {
		defer wg.Done()
		if err := reader.Run(); err != nil {
			fatal <- err
		}
	}()

	a.logger.Debug().
		Int64("period", a.state.Period()).
		Str("scale", a.state.Scale().String()).
		Msg("Agent started")

	select {
	case err := <-fatal:
		return a.fail(err)
	case <-samplerDone:
	}

	select {
	case err := <-fatal:
		return a.fail(err)
	default:
	}

	a.logger.Info().Str("cause", a.state.Cause().String()).Msg("Shutting down")

	if err := a.emitter.Emit(report.ShutdownRecord(a.now())); err != nil {
		return a.fail(err)
	}

	others := make(chan struct{})
	go func() {
		wg.Wait()
		close(others)
	}()

	select {
	case err := <-fatal:
		return a.fail(err)
	case <-others:
	}

	return nil
}

// fail stops the remaining activities before a fatal error is returned.
func (a *Agent) fail(err error) error {
	a.state.RequestShutdown(control.CauseFailure)
	return err
}

type noHistory struct{}

func (noHistory) Record(*report.Sample) error { return nil }
func (noHistory) Close() error                { return nil }
