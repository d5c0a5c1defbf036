// Package history keeps an optional sqlite record of every emitted sample.
package history

import (
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
)

type service struct {
	repo Repository
	cfg  Config
}

type noopRecorder struct{}

// NewService returns a Recorder for cfg. When history is disabled the
// Recorder discards samples.
func NewService(cfg Config, log logger.Logger) (Recorder, error) {
	errFactory := errors.New()

	if err := cfg.Validate(); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if !cfg.Enabled {
		log.Debug().Msg("Sample history disabled, using no-op recorder")
		return &noopRecorder{}, nil
	}

	repo, err := NewRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("db_path", cfg.DBPath).
		Int("batch_size", cfg.BatchSize).
		Msg("Sample history initialized")

	return &service{repo: repo, cfg: cfg}, nil
}

func (s *service) Record(sample *report.Sample) error {
	errFactory := errors.New()

	if sample == nil {
		return errFactory.New(ErrInvalidSample)
	}

	if err := s.repo.Record(sample); err != nil {
		return errFactory.Wrap(ErrRecordFailed, err)
	}

	return nil
}

func (s *service) Close() error {
	if err := s.repo.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}

func (*noopRecorder) Record(_ *report.Sample) error {
	return nil
}

func (*noopRecorder) Close() error {
	return nil
}
