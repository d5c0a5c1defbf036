package device

import "codeberg.org/mutker/tempmon/internal/errors"

const (
	// Initialization and Lifecycle Errors
	ErrInitFailed     = errors.ErrorCode("device_init_failed")
	ErrUnknownSource  = errors.ErrorCode("device_unknown_source")
	ErrDeviceNotFound = errors.ErrorCode("device_not_found")
	ErrCloseFailed    = errors.ErrorCode("device_close_failed")

	// Sensor Errors
	ErrSensorReadFailed  = errors.ErrorCode("device_sensor_read_failed")
	ErrInvalidFullScale  = errors.ErrorCode("device_invalid_full_scale")
	ErrNoSimulatedValues = errors.ErrorCode("device_no_simulated_values")

	// Button Errors
	ErrButtonConfigFailed = errors.ErrorCode("device_button_config_failed")
)
