package errors

// Common error codes
const (
	// System errors
	ErrInternal        ErrorCode = "internal_error"
	ErrInvalidArgument ErrorCode = "invalid_argument"
	ErrAlreadyRunning  ErrorCode = "already_running"

	// Configuration errors
	ErrInvalidConfig   ErrorCode = "invalid_configuration"
	ErrReadConfig      ErrorCode = "read_config_failed"
	ErrBindFlags       ErrorCode = "bind_flags_failed"
	ErrInvalidPeriod   ErrorCode = "invalid_period"
	ErrInvalidScale    ErrorCode = "invalid_scale"
	ErrInvalidLogLevel ErrorCode = "invalid_log_level"

	// Initialization errors
	ErrInitFailed     ErrorCode = "initialization_failed"
	ErrShutdownFailed ErrorCode = "shutdown_failed"

	// Agent errors
	ErrOpenLog      ErrorCode = "open_log_failed"
	ErrWriteLog     ErrorCode = "write_log_failed"
	ErrCloseLog     ErrorCode = "close_log_failed"
	ErrReadInput    ErrorCode = "read_input_failed"
	ErrReadSensor   ErrorCode = "read_sensor_failed"
	ErrAgentStopped ErrorCode = "agent_stopped"

	// Operation errors
	ErrOperationFailed ErrorCode = "operation_failed"
	ErrTimeout         ErrorCode = "operation_timeout"
)

var errorMessages = map[ErrorCode]string{
	ErrInternal:        "Internal error occurred",
	ErrInvalidArgument: "Invalid argument provided",
	ErrAlreadyRunning:  "Another instance is already running",
	ErrInvalidConfig:   "Invalid configuration",
	ErrReadConfig:      "Failed to read configuration",
	ErrBindFlags:       "Failed to bind flags",
	ErrInvalidPeriod:   "Invalid sample period",
	ErrInvalidScale:    "Invalid temperature scale",
	ErrInvalidLogLevel: "Invalid log level",
	ErrInitFailed:      "Initialization failed",
	ErrShutdownFailed:  "Shutdown failed",
	ErrOpenLog:         "Couldn't open log file",
	ErrWriteLog:        "Couldn't write to log file",
	ErrCloseLog:        "Couldn't close log file",
	ErrReadInput:       "Failed to read from stdin",
	ErrReadSensor:      "Failed to read temperature sensor",
	ErrAgentStopped:    "Agent stopped",
	ErrOperationFailed: "Operation failed",
	ErrTimeout:         "Operation timed out",
}

// GetErrorMessage returns the message for a given error code
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}

	return string(code)
}
