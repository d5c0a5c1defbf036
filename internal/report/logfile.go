package report

import (
	"os"

	"codeberg.org/mutker/tempmon/internal/errors"
)

const (
	defaultFilePerm = 0o644

	// PaddedRecordSize is the fixed record length expected by legacy log readers.
	PaddedRecordSize = 32
)

// OpenLog opens path for appending, creating it if needed.
func OpenLog(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, defaultFilePerm)
	if err != nil {
		return nil, errors.New().Wrap(errors.ErrOpenLog, err)
	}

	return f, nil
}

// pad returns rec NUL-padded to size bytes. Longer records are returned as is.
func pad(rec []byte, size int) []byte {
	if size <= 0 || len(rec) >= size {
		return rec
	}

	out := make([]byte, size)
	copy(out, rec)

	return out
}
