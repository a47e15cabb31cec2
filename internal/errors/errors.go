package apperrors

import (
	"context"
	"errors"
	"fmt"
)

// Application exit codes define the standard exit statuses for the application.
// These codes are used to signal the outcome of the program execution to the OS.
const (
	ExitSuccess       = 0   // Indicates successful execution.
	ExitErrorGeneric  = 1   // Indicates a generic or arithmetic error.
	ExitErrorConfig   = 4   // Indicates a configuration error.
	ExitNoResult      = 5   // Indicates the run stopped before any snapshot was produced.
	ExitErrorCanceled = 130 // Indicates the operation was canceled (e.g., SIGINT).
)

// ConfigError represents a user configuration error, such as invalid flags or
// values. It indicates that the application cannot proceed due to incorrect user input.
type ConfigError struct {
	// Message explains the specific configuration error.
	Message string
}

// Error returns the error message for a ConfigError.
func (e ConfigError) Error() string { return e.Message }

// NewConfigError creates a new ConfigError with a formatted message.
//
// Parameters:
//   - format: A format string (see fmt.Sprintf).
//   - a: Arguments to be formatted into the string.
//
// Returns:
//   - error: A new ConfigError instance containing the formatted message.
func NewConfigError(format string, a ...any) error {
	return ConfigError{Message: fmt.Sprintf(format, a...)}
}

// ValidationError represents an invalid engine parameter. It identifies which
// field failed validation and provides a human-readable explanation.
type ValidationError struct {
	// Field is the name of the parameter that failed validation.
	Field string
	// Message explains the validation failure.
	Message string
}

// Error returns a formatted message describing the validation failure.
func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error for %q: %s", e.Field, e.Message)
}

// ArithmeticError reports a failure inside the arbitrary-precision layer
// during a run. It is fatal to the run and carries enough context to
// diagnose the step that failed.
type ArithmeticError struct {
	// Engine is the name of the engine that was running.
	Engine string
	// Iteration is the series term being computed when the failure occurred.
	Iteration uint64
	// Precision is the active precision in decimal digits.
	Precision uint64
	// Cause is the underlying failure.
	Cause error
}

// Error returns a message including the failing iteration and precision.
func (e ArithmeticError) Error() string {
	if e.Engine == "" {
		return fmt.Sprintf("arithmetic failure at iteration %d (precision %d digits): %v", e.Iteration, e.Precision, e.Cause)
	}
	return fmt.Sprintf("%s: arithmetic failure at iteration %d (precision %d digits): %v", e.Engine, e.Iteration, e.Precision, e.Cause)
}

// Unwrap returns the original cause.
func (e ArithmeticError) Unwrap() error { return e.Cause }

// IsConfigurationError reports whether err is a ConfigError or a
// ValidationError anywhere in its chain.
func IsConfigurationError(err error) bool {
	var cfgErr ConfigError
	var valErr ValidationError
	return errors.As(err, &cfgErr) || errors.As(err, &valErr)
}

// WrapError wraps an error with additional context using fmt.Errorf and %w.
//
// Returns:
//   - error: The wrapped error, or nil if err is nil.
func WrapError(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	message := fmt.Sprintf(format, args...)
	return fmt.Errorf("%s: %w", message, err)
}

// IsContextError checks if the error is a context cancellation or deadline exceeded error.
func IsContextError(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
