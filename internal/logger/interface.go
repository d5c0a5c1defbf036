package logger

// Logger defines the interface for logging operations. Components take a
// Logger instead of the package-level functions so tests can capture output.
type Logger interface {
	Debug() *LogEvent
	Info() *LogEvent
	Warn() *LogEvent
	Error() *LogEvent
}
