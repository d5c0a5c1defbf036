package logger_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"codeberg.org/mutker/tempmon/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		level logger.LogLevel
		ok    bool
	}{
		{"debug", logger.DebugLevel, true},
		{"info", logger.InfoLevel, true},
		{"warning", logger.WarnLevel, true},
		{"warn", logger.WarnLevel, true},
		{"error", logger.ErrorLevel, true},
		{"loud", logger.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			level, ok := logger.ParseLevel(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.level, level)
		})
	}
}

func TestNewWritesJSONLines(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf)

	log.Warn().Str("command", "BOGUS").Msg("Bad command")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "BOGUS", entry["command"])
	assert.Equal(t, "Bad command", entry["message"])
}
