// Package report formats sample and shutdown records and writes them to
// stdout and the optional log file.
package report

import (
	"fmt"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
)

const timeLayout = "15:04:05"

// Sample is one temperature reading, formatted once and then discarded.
type Sample struct {
	Time        time.Time
	Raw         int
	Temperature float64
	Scale       control.Scale
}

// String renders the sample as "HH:MM:SS T.T\n".
func (s Sample) String() string {
	return fmt.Sprintf("%s %.1f\n", s.Time.Format(timeLayout), s.Temperature)
}

// ShutdownRecord renders the terminal record for t.
func ShutdownRecord(t time.Time) string {
	return t.Format(timeLayout) + " SHUTDOWN\n"
}
