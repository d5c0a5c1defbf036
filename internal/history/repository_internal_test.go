package history

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"codeberg.org/mutker/tempmon/internal/control"
	"codeberg.org/mutker/tempmon/internal/logger"
	"codeberg.org/mutker/tempmon/internal/report"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailedFlushDropsBatch(t *testing.T) {
	var logBuf bytes.Buffer

	cfg := DefaultConfig()
	cfg.Enabled = true
	cfg.DBPath = filepath.Join(t.TempDir(), "history.db")
	cfg.BatchSize = 2
	cfg.BatchTimeout = 0

	r, err := NewRepository(cfg, logger.New(&logBuf))
	require.NoError(t, err)
	repo := r.(*repository)
	t.Cleanup(func() { _ = repo.Close() })

	// Every write fails from here on.
	require.NoError(t, repo.db.Close())

	sample := func() *report.Sample {
		return &report.Sample{Time: time.Now(), Raw: 512, Temperature: 77.07, Scale: control.Fahrenheit}
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Record(sample()))
		err := repo.Record(sample())
		require.Error(t, err)
		assert.Empty(t, repo.buffer, "batch %d kept after failed flush", i)
	}

	require.NoError(t, repo.Record(sample()))
	assert.Len(t, repo.buffer, 1)
	assert.Contains(t, logBuf.String(), `"dropped":2`)
	assert.Contains(t, logBuf.String(), "Dropped history batch")
}
