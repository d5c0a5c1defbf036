package history

import "codeberg.org/mutker/tempmon/internal/report"

// Recorder stores emitted samples.
type Recorder interface {
	Record(sample *report.Sample) error
	Close() error
}

// Repository is the storage behind a Recorder.
type Repository interface {
	Record(sample *report.Sample) error
	// Samples returns stored samples, oldest first.
	Samples() ([]report.Sample, error)
	Close() error
}
