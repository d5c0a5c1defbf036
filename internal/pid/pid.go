// Package pid guards against two agents sharing the same sensor and log.
package pid

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"codeberg.org/mutker/tempmon/internal/errors"
)

const (
	pidFile = "tempmon.pid"
)

// DefaultPath returns the PID file location used when none is configured.
func DefaultPath() string {
	return filepath.Join(os.TempDir(), pidFile)
}

// Write writes the current process ID to path, or to DefaultPath when
// path is empty. It fails with ErrAlreadyRunning if the file names a live
// process.
func Write(path string) error {
	errFactory := errors.New()
	pid := os.Getpid()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); err == nil {
		// PID file exists, check if the process is running
		bytes, err := os.ReadFile(path)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		other, err := strconv.Atoi(strings.TrimSpace(string(bytes)))
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		process, err := os.FindProcess(other)
		if err != nil {
			return errFactory.Wrap(errors.ErrInternal, err)
		}

		if other != pid && process.Signal(syscall.Signal(0)) == nil {
			return errFactory.WithData(errors.ErrAlreadyRunning, other)
		}
	}

	err := os.WriteFile(path, []byte(strconv.Itoa(pid)), 0o600)
	if err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}

// Remove removes the PID file at path, or at DefaultPath when path is empty.
func Remove(path string) error {
	errFactory := errors.New()
	if path == "" {
		path = DefaultPath()
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	if err := os.Remove(path); err != nil {
		return errFactory.Wrap(errors.ErrInternal, err)
	}

	return nil
}
