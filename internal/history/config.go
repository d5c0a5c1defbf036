package history

import "codeberg.org/mutker/tempmon/internal/errors"

const (
	defaultDirPerm      = 0o755
	defaultDBPath       = "/var/lib/tempmon/history.db"
	defaultBatchSize    = 10
	defaultBatchTimeout = 30
)

// Config controls the optional sqlite sample history.
type Config struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
	// BatchSize is the number of buffered samples that triggers a flush.
	BatchSize int `mapstructure:"batch_size"`
	// BatchTimeout is the periodic flush interval in seconds; 0 disables
	// the background flusher.
	BatchTimeout int `mapstructure:"batch_timeout"`
}

func DefaultConfig() Config {
	return Config{
		DBPath:       defaultDBPath,
		BatchSize:    defaultBatchSize,
		BatchTimeout: defaultBatchTimeout,
		Enabled:      false,
	}
}

func (c Config) Validate() error {
	errFactory := errors.New()

	// Only validate when history is enabled
	if !c.Enabled {
		return nil
	}
	if c.DBPath == "" {
		return errFactory.New(ErrInvalidDBPath)
	}
	if c.BatchSize < 1 || c.BatchTimeout < 0 {
		return errFactory.WithData(ErrInvalidConfig, struct {
			BatchSize    int
			BatchTimeout int
		}{c.BatchSize, c.BatchTimeout})
	}
	return nil
}
