package agent

import (
	"io"
	"time"

	"codeberg.org/mutker/tempmon/internal/command"
	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
	"github.com/muesli/cancelreader"
)

// CommandReader applies commands read from the interactive input.
//
// Reads happen on a separate goroutine that hands chunks over a channel,
// so the loop itself only ever waits for at most one timeout before it
// re-checks the shutdown flag.
type CommandReader struct {
	state     *control.State
	input     io.Reader
	emitter   *report.Emitter
	timeout   time.Duration
	chunkSize int
	logger    logger.Logger
}

type chunk struct {
	data []byte
	err  error
}

// Run loops until shutdown is requested or OFF is read. Input read errors
// and log mirror failures end the loop with an error. End of input only
// stops reading.
func (r *CommandReader) Run() error {
	in, cancel := r.openInput()
	defer cancel()

	chunks := make(chan chunk)
	quit := make(chan struct{})
	defer close(quit)
	go r.pump(in, chunks, quit)

	timer := time.NewTimer(r.timeout)
	defer timer.Stop()

	for {
		if r.state.IsShutdownRequested() {
			return nil
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(r.timeout)

		select {
		case c, ok := <-chunks:
			if !ok {
				r.logger.Debug().Msg("Command input closed")
				chunks = nil
				continue
			}
			if c.err != nil {
				return errors.New().Wrap(errors.ErrReadInput, c.err)
			}
			done, err := r.handle(c.data)
			if err != nil || done {
				return err
			}
		case <-timer.C:
		case <-r.state.Done():
		}
	}
}

// openInput wraps the input so a blocked read can be cancelled on exit.
// Inputs that cannot be polled (regular files) are read directly.
func (r *CommandReader) openInput() (io.Reader, func()) {
	cr, err := cancelreader.NewReader(r.input)
	if err != nil {
		r.logger.Debug().Err(err).Msg("Command input is not cancellable")
		return r.input, func() {}
	}

	return cr, func() {
		if cr.Cancel() {
			cr.Close()
		}
	}
}

func (r *CommandReader) pump(in io.Reader, out chan<- chunk, quit <-chan struct{}) {
	defer close(out)

	for {
		buf := make([]byte, r.chunkSize)
		n, err := in.Read(buf)
		if n > 0 {
			select {
			case out <- chunk{data: buf[:n]}:
			case <-quit:
				return
			}
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, cancelreader.ErrCanceled) {
				return
			}
			select {
			case out <- chunk{err: err}:
			case <-quit:
			}
			return
		}
	}
}

// handle mirrors a chunk to the log and applies each line in it. It
// reports done once OFF has been applied or shutdown was requested.
func (r *CommandReader) handle(data []byte) (bool, error) {
	if err := r.emitter.Mirror(data); err != nil {
		return true, err
	}

	for _, line := range command.Split(data) {
		if r.state.IsShutdownRequested() {
			return true, nil
		}
		if r.apply(command.Parse(line)) {
			return true, nil
		}
	}

	return false, nil
}

func (r *CommandReader) apply(cmd command.Command) bool {
	switch cmd.Kind {
	case command.Off:
		r.state.RequestShutdown(control.CauseCommand)
		r.logger.Info().Msg("OFF received")
		return true
	case command.Stop:
		r.state.SetReportingEnabled(false)
	case command.Start:
		r.state.SetReportingEnabled(true)
	case command.SetScale:
		r.state.SetScale(cmd.Scale)
	case command.SetPeriod:
		r.state.SetPeriod(cmd.Period)
	default:
		// Error level so the diagnostic survives any configured log level.
		r.logger.Error().Str("command", cmd.Raw).Msg("Bad command")
		return false
	}

	r.logger.Debug().Str("command", cmd.Raw).Msg("Command applied")
	return false
}
