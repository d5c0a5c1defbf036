// Package control holds the configuration shared by the sampler, the
// button watcher and the command reader.
//
// Every field is an independent atomic value: writers perform a single
// store and readers may see the previous value until their next poll.
// There is deliberately no mutex spanning fields.
package control

import (
	"math"
	"sync"
	"sync/atomic"
	"time"
)

// MaxPeriod is the longest sample period, in seconds, that still fits in a
// time.Duration.
const MaxPeriod = int64(math.MaxInt64 / int64(time.Second))

// ValidPeriod reports whether n seconds is an acceptable sample period.
func ValidPeriod(n int64) bool {
	return n >= 1 && n <= MaxPeriod
}

// Cause records which trigger requested shutdown first.
type Cause int32

const (
	CauseNone Cause = iota
	CauseInterrupt
	CauseCommand
	CauseButton
	CauseFailure
)

func (c Cause) String() string {
	switch c {
	case CauseInterrupt:
		return "interrupt"
	case CauseCommand:
		return "command"
	case CauseButton:
		return "button"
	case CauseFailure:
		return "failure"
	default:
		return "none"
	}
}

// State is the shared control state. The zero value is not usable; use New.
type State struct {
	period    atomic.Int64
	scale     atomic.Int32
	reporting atomic.Bool
	shutdown  atomic.Bool
	cause     atomic.Int32

	done     chan struct{}
	doneOnce sync.Once
}

// New returns a State with reporting enabled.
func New(period int64, scale Scale) *State {
	s := &State{done: make(chan struct{})}
	s.period.Store(period)
	s.scale.Store(int32(scale))
	s.reporting.Store(true)

	return s
}

// Period returns the sample period in seconds.
func (s *State) Period() int64 {
	return s.period.Load()
}

func (s *State) SetPeriod(seconds int64) {
	s.period.Store(seconds)
}

func (s *State) Scale() Scale {
	return Scale(s.scale.Load())
}

func (s *State) SetScale(scale Scale) {
	s.scale.Store(int32(scale))
}

func (s *State) IsReportingEnabled() bool {
	return s.reporting.Load()
}

func (s *State) SetReportingEnabled(enabled bool) {
	s.reporting.Store(enabled)
}

func (s *State) IsShutdownRequested() bool {
	return s.shutdown.Load()
}

// RequestShutdown sets the write-once shutdown flag. It is safe to call
// any number of times from any goroutine; only the first cause is kept.
func (s *State) RequestShutdown(cause Cause) {
	s.cause.CompareAndSwap(int32(CauseNone), int32(cause))
	s.shutdown.Store(true)
	s.doneOnce.Do(func() { close(s.done) })
}

// Cause returns the trigger of the first shutdown request, or CauseNone.
func (s *State) Cause() Cause {
	return Cause(s.cause.Load())
}

// Done is closed once shutdown has been requested. Pollers use it to cut a
// sleep short; the flag remains the source of truth.
func (s *State) Done() <-chan struct{} {
	return s.done
}
