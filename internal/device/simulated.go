package device

import (
	"os"
	"sync"

	"codeberg.org/mutker/tempmon/internal/errors"
)

// SimulatedSensor replays a fixed sequence of raw values, repeating the
// last one once the sequence is exhausted.
type SimulatedSensor struct {
	mu        sync.Mutex
	values    []int
	next      int
	fullScale int
}

func NewSimulatedSensor(fullScale int, values ...int) (*SimulatedSensor, error) {
	errFactory := errors.New()

	if fullScale <= 0 {
		return nil, errFactory.WithData(ErrInvalidFullScale, fullScale)
	}
	if len(values) == 0 {
		return nil, errFactory.New(ErrNoSimulatedValues)
	}

	return &SimulatedSensor{values: values, fullScale: fullScale}, nil
}

func (s *SimulatedSensor) ReadRaw() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}

	return v, nil
}

func (s *SimulatedSensor) FullScale() int {
	return s.fullScale
}

func (*SimulatedSensor) Close() error {
	return nil
}

// FileButton reads as pressed while a file exists at its path. An empty
// path never reads as pressed.
type FileButton struct {
	path string
}

func NewFileButton(path string) *FileButton {
	return &FileButton{path: path}
}

func (b *FileButton) IsPressed() bool {
	if b.path == "" {
		return false
	}
	_, err := os.Stat(b.path)
	return err == nil
}

func (*FileButton) Close() error {
	return nil
}
