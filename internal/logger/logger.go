package logger

import (
	"io"
	"os"
	"time"

	"codeberg.org/mutker/tempmon/internal/errors"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Records go to stdout, so diagnostics always go to stderr.
var log = zerolog.New(os.Stderr).With().Timestamp().Logger()

type LogLevel int8

const (
	DebugLevel LogLevel = iota
	InfoLevel
	WarnLevel
	ErrorLevel
	FatalLevel
)

// ParseLevel maps a configuration level name to a LogLevel.
func ParseLevel(name string) (LogLevel, bool) {
	switch name {
	case "debug":
		return DebugLevel, true
	case "info":
		return InfoLevel, true
	case "warning", "warn":
		return WarnLevel, true
	case "error":
		return ErrorLevel, true
	default:
		return InfoLevel, false
	}
}

type LogEvent struct {
	*zerolog.Event
}

func (e *LogEvent) Msg(msg string) {
	e.Event.Msg(msg)
}

func (e *LogEvent) Send() {
	e.Event.Send()
}

type zlogger struct {
	zl zerolog.Logger
}

func (l *zlogger) Debug() *LogEvent { return &LogEvent{l.zl.Debug()} }
func (l *zlogger) Info() *LogEvent  { return &LogEvent{l.zl.Info()} }
func (l *zlogger) Warn() *LogEvent  { return &LogEvent{l.zl.Warn()} }
func (l *zlogger) Error() *LogEvent { return &LogEvent{l.zl.Error()} }

// New returns a Logger writing JSON lines to w.
func New(w io.Writer) Logger {
	return &zlogger{zl: zerolog.New(w).With().Timestamp().Logger()}
}

// Default returns a Logger backed by the package-level logger.
func Default() Logger {
	return &zlogger{zl: log}
}

// Init initializes the package-level logger on stderr.
func Init(level LogLevel, isService bool) {
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !isatty.IsTerminal(os.Stderr.Fd()),
	}

	if isService {
		output.TimeFormat = ""
		output.FormatTimestamp = func(_ interface{}) string {
			return ""
		}
	}

	log = zerolog.New(output).With().Timestamp().Logger()

	SetLogLevel(level)
}

// SetLogLevel sets the global log level
func SetLogLevel(level LogLevel) {
	zerolog.SetGlobalLevel(zerolog.Level(level))
}

// IsService checks if the application is running under a service manager
// rather than from an interactive terminal.
func IsService() bool {
	if os.Getenv("INVOCATION_ID") != "" || os.Getenv("SERVICE_NAME") != "" {
		return true
	}
	if os.Getppid() == 1 {
		return true
	}

	fd := os.Stderr.Fd()
	return !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
}

// Debug logs a debug message
func Debug() *LogEvent {
	return &LogEvent{log.Debug()}
}

// Info logs an info message
func Info() *LogEvent {
	return &LogEvent{log.Info()}
}

// Warn logs a warning message
func Warn() *LogEvent {
	return &LogEvent{log.Warn()}
}

// Error logs an error message
func Error() *LogEvent {
	return &LogEvent{log.Error()}
}

// ErrorWithCode logs an error message with the code of err
func ErrorWithCode(err error) *LogEvent {
	return &LogEvent{log.Error().
		Str("error_code", string(errors.CodeOf(err))).
		Err(err)}
}

// Fatal logs a fatal message and exits the program
func Fatal() *LogEvent {
	return &LogEvent{log.Fatal()}
}

// FatalWithCode logs a fatal message with the code of err and exits the program
func FatalWithCode(err error) *LogEvent {
	return &LogEvent{log.Fatal().
		Str("error_code", string(errors.CodeOf(err))).
		Err(err)}
}
