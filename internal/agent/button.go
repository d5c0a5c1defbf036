package agent

import (
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/device"
	"codeberg.org/mutker/tempmon/internal/logger"
)

// ButtonWatcher polls the button and requests shutdown on the first press.
type ButtonWatcher struct {
	state    *control.State
	button   device.Button
	interval time.Duration
	logger   logger.Logger
}

func (w *ButtonWatcher) Run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		if w.state.IsShutdownRequested() {
			return
		}

		if w.button.IsPressed() {
			w.logger.Info().Msg("Button pressed")
			w.state.RequestShutdown(control.CauseButton)
			return
		}

		select {
		case <-ticker.C:
		case <-w.state.Done():
		}
	}
}
