package report

import (
	"io"
	"sync"

	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/logger"
)

// Emitter writes records to stdout and, when configured, to a log. Log
// writes from the sampler and the command reader are serialized by mu.
//
// Log write failures are returned to the caller, which treats them as
// fatal. Stdout write failures are only logged.
type Emitter struct {
	stdout io.Writer
	log    io.Writer
	pad    int
	mu     sync.Mutex
	logger logger.Logger
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithLog mirrors every record to w.
func WithLog(w io.Writer) Option {
	return func(e *Emitter) {
		e.log = w
	}
}

// WithPadding NUL-pads log records to size bytes.
func WithPadding(size int) Option {
	return func(e *Emitter) {
		e.pad = size
	}
}

func NewEmitter(stdout io.Writer, log logger.Logger, opts ...Option) *Emitter {
	e := &Emitter{stdout: stdout, logger: log}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// HasLog reports whether a log destination is configured.
func (e *Emitter) HasLog() bool {
	return e.log != nil
}

// Emit writes rec to stdout and the log.
func (e *Emitter) Emit(rec string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := io.WriteString(e.stdout, rec); err != nil {
		e.logger.Warn().Err(err).Msg("Failed to write record to stdout")
	}

	if e.log == nil {
		return nil
	}

	if _, err := e.log.Write(pad([]byte(rec), e.pad)); err != nil {
		return errors.New().Wrap(errors.ErrWriteLog, err)
	}

	return nil
}

// Mirror appends raw command input to the log verbatim.
func (e *Emitter) Mirror(raw []byte) error {
	if e.log == nil {
		return nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if _, err := e.log.Write(raw); err != nil {
		return errors.New().Wrap(errors.ErrWriteLog, err)
	}

	return nil
}
