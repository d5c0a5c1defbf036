package history

import (
	"database/sql"
	"math"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
	_ "github.com/mattn/go-sqlite3"
)

// repository buffers samples and writes them to sqlite in batches, either
// when the buffer fills or on the flush ticker.
type repository struct {
	db            *sql.DB
	logger        logger.Logger
	cfg           Config
	mu            sync.Mutex
	buffer        []*report.Sample
	closed        bool
	flushTicker   *time.Ticker
	shutdownChan  chan struct{}
	flushDoneChan chan struct{}
}

func NewRepository(cfg Config, log logger.Logger) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.WithData(ErrStorageInit, struct {
			Phase string
			Path  string
			Error string
		}{
			Phase: "create_directory",
			Path:  cfg.DBPath,
			Error: err.Error(),
		})
	}

	dsn := cfg.DBPath + "?_journal=WAL&_auto_vacuum=2"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := ValidateAndUpdateSchema(db, cfg.DBPath, log); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	log.Info().
		Str("path", cfg.DBPath).
		Int("schema_version", SchemaVersion).
		Int("batch_size", cfg.BatchSize).
		Int("batch_timeout", cfg.BatchTimeout).
		Msg("History repository initialized")

	repo := &repository{
		db:            db,
		logger:        log,
		cfg:           cfg,
		buffer:        make([]*report.Sample, 0, cfg.BatchSize),
		shutdownChan:  make(chan struct{}),
		flushDoneChan: make(chan struct{}),
	}

	if cfg.BatchTimeout > 0 {
		repo.flushTicker = time.NewTicker(time.Duration(cfg.BatchTimeout) * time.Second)
		go repo.flusher()
	} else {
		close(repo.flushDoneChan)
	}

	return repo, nil
}

func (r *repository) Record(sample *report.Sample) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return errors.New().New(ErrClosed)
	}

	r.buffer = append(r.buffer, sample)

	if len(r.buffer) >= r.cfg.BatchSize {
		return r.flush()
	}

	return nil
}

func (r *repository) Samples() ([]report.Sample, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	if err := r.flush(); err != nil {
		return nil, err
	}

	rows, err := r.db.Query(selectSamplesSQL)
	if err != nil {
		return nil, errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer rows.Close()

	var samples []report.Sample
	for rows.Next() {
		var (
			ts    int64
			raw   int
			temp  sql.NullFloat64
			scale string
		)
		if err := rows.Scan(&ts, &raw, &temp, &scale); err != nil {
			return nil, errFactory.Wrap(ErrTransactionFailed, err)
		}

		s := report.Sample{
			Time:        time.Unix(0, ts),
			Raw:         raw,
			Temperature: math.NaN(),
			Scale:       control.Fahrenheit,
		}
		if temp.Valid {
			s.Temperature = temp.Float64
		}
		if scale == control.Celsius.String() {
			s.Scale = control.Celsius
		}
		samples = append(samples, s)
	}

	if err := rows.Err(); err != nil {
		return nil, errFactory.Wrap(ErrTransactionFailed, err)
	}

	return samples, nil
}

func (r *repository) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	close(r.shutdownChan)
	if r.flushTicker != nil {
		r.flushTicker.Stop()
	}
	<-r.flushDoneChan

	r.mu.Lock()
	err := r.flush()
	r.mu.Unlock()
	if err != nil {
		r.logger.Error().Err(err).Msg("Failed to flush history on close")
	}

	if _, err := r.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)"); err != nil {
		r.logger.Debug().Err(err).Msg("Failed to checkpoint history WAL")
	}

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}

	r.logger.Debug().Msg("History repository closed")

	return nil
}

func (r *repository) flusher() {
	defer close(r.flushDoneChan)

	for {
		select {
		case <-r.flushTicker.C:
			r.mu.Lock()
			if err := r.flush(); err != nil {
				r.logger.Error().Err(err).Msg("Periodic history flush failed")
			}
			r.mu.Unlock()
		case <-r.shutdownChan:
			return
		}
	}
}

// flush writes the buffer in one transaction. The buffer is emptied even
// when the write fails, so a broken store cannot grow it without bound.
// Callers hold r.mu.
func (r *repository) flush() error {
	if len(r.buffer) == 0 {
		return nil
	}

	defer func() { r.buffer = r.buffer[:0] }()

	if err := r.writeBatch(); err != nil {
		r.logger.Error().Err(err).Int("dropped", len(r.buffer)).Msg("Dropped history batch")
		return err
	}

	r.logger.Debug().Int("records", len(r.buffer)).Msg("Flushed samples to history")

	return nil
}

func (r *repository) writeBatch() error {
	errFactory := errors.New()

	tx, err := r.db.Begin()
	if err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	stmt, err := tx.Prepare(insertSampleSQL)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			r.logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
		}
		return errFactory.Wrap(ErrTransactionFailed, err)
	}
	defer stmt.Close()

	for _, sample := range r.buffer {
		var temp sql.NullFloat64
		if !math.IsNaN(sample.Temperature) && !math.IsInf(sample.Temperature, 0) {
			temp = sql.NullFloat64{Float64: sample.Temperature, Valid: true}
		}

		if _, err := stmt.Exec(
			sample.Time.UnixNano(),
			int64(sample.Raw),
			temp,
			sample.Scale.String(),
		); err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				r.logger.Error().Err(rbErr).Msg("Failed to roll back transaction")
			}
			return errFactory.Wrap(ErrTransactionFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrTransactionFailed, err)
	}

	return nil
}
