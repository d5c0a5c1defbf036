package history_test

import (
	"database/sql"
	"io"
	"math"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/errors"
	"codeberg.org/mutker/tempmon/internal/history"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) history.Config {
	t.Helper()
	cfg := history.DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = filepath.Join(t.TempDir(), "history.db")
	cfg.BatchSize = 2
	cfg.BatchTimeout = 0
	return cfg
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo, err := history.NewRepository(testConfig(t), logger.New(io.Discard))
	require.NoError(t, err)
	defer repo.Close()

	at := time.Date(2026, 10, 15, 9, 30, 0, 0, time.UTC)
	require.NoError(t, repo.Record(&report.Sample{Time: at, Raw: 512, Temperature: 77.07, Scale: control.Fahrenheit}))
	require.NoError(t, repo.Record(&report.Sample{Time: at.Add(time.Second), Raw: 700, Temperature: 42.0, Scale: control.Celsius}))
	require.NoError(t, repo.Record(&report.Sample{Time: at.Add(2 * time.Second), Raw: 2000, Temperature: math.NaN(), Scale: control.Celsius}))

	samples, err := repo.Samples()
	require.NoError(t, err)
	require.Len(t, samples, 3)

	assert.Equal(t, 512, samples[0].Raw)
	assert.InDelta(t, 77.07, samples[0].Temperature, 1e-9)
	assert.Equal(t, control.Fahrenheit, samples[0].Scale)
	assert.True(t, samples[0].Time.Equal(at))

	assert.Equal(t, control.Celsius, samples[1].Scale)
	assert.True(t, math.IsNaN(samples[2].Temperature))
}

func TestRepositoryFlushesOnClose(t *testing.T) {
	cfg := testConfig(t)
	cfg.BatchSize = 100

	repo, err := history.NewRepository(cfg, logger.New(io.Discard))
	require.NoError(t, err)
	require.NoError(t, repo.Record(&report.Sample{Time: time.Now(), Raw: 512, Temperature: 25.0, Scale: control.Celsius}))
	require.NoError(t, repo.Close())
	require.NoError(t, repo.Close())

	err = repo.Record(&report.Sample{Time: time.Now(), Raw: 1, Scale: control.Celsius})
	assert.True(t, errors.HasCode(err, history.ErrClosed))

	reopened, err := history.NewRepository(cfg, logger.New(io.Discard))
	require.NoError(t, err)
	defer reopened.Close()

	samples, err := reopened.Samples()
	require.NoError(t, err)
	assert.Len(t, samples, 1)
}

func TestSchemaMismatchIsBackedUpAndRecreated(t *testing.T) {
	cfg := testConfig(t)

	db, err := sql.Open("sqlite3", cfg.DBPath)
	require.NoError(t, err)
	_, err = db.Exec(`
		CREATE TABLE schema_versions (version INTEGER PRIMARY KEY, applied_at TEXT NOT NULL);
		INSERT INTO schema_versions (version, applied_at) VALUES (99, datetime('now'));`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	repo, err := history.NewRepository(cfg, logger.New(io.Discard))
	require.NoError(t, err)
	defer repo.Close()

	backups, err := filepath.Glob(filepath.Join(filepath.Dir(cfg.DBPath), "backups", "history_v99_*.db"))
	require.NoError(t, err)
	assert.Len(t, backups, 1)

	samples, err := repo.Samples()
	require.NoError(t, err)
	assert.Empty(t, samples)
}

func TestServiceDisabledIsNoop(t *testing.T) {
	rec, err := history.NewService(history.DefaultConfig(), logger.New(io.Discard))
	require.NoError(t, err)

	assert.NoError(t, rec.Record(&report.Sample{}))
	assert.NoError(t, rec.Close())
}

func TestServiceRejectsInvalidConfig(t *testing.T) {
	cfg := history.DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = ""

	_, err := history.NewService(cfg, logger.New(io.Discard))
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, history.ErrInvalidDBPath))
}

func TestServiceRejectsNilSample(t *testing.T) {
	rec, err := history.NewService(testConfig(t), logger.New(io.Discard))
	require.NoError(t, err)
	defer rec.Close()

	err = rec.Record(nil)
	assert.True(t, errors.HasCode(err, history.ErrInvalidSample))
}
