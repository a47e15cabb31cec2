package apperrors

import (
	"fmt"
	"io"
	"time"
)

// ColorProvider defines the interface for obtaining terminal color codes.
// This abstraction breaks the import cycle with cli.
type ColorProvider interface {
	Yellow() string
	Red() string
	Reset() string
}

// DefaultColorProvider provides no color codes (for non-terminal output).
type DefaultColorProvider struct{}

func (DefaultColorProvider) Yellow() string { return "" }
func (DefaultColorProvider) Red() string    { return "" }
func (DefaultColorProvider) Reset() string  { return "" }

// HandleRunError formats and prints the message for a failed run and returns
// the matching exit code. Configuration problems, arithmetic failures and
// context cancellation are reported differently.
//
// Parameters:
//   - err: The error that occurred.
//   - duration: How long the run lasted before failing (0 if it never started).
//   - out: The io.Writer to which the error message will be written.
//   - colors: Provider for terminal color codes (can be nil for no colors).
//
// Returns:
//   - int: The appropriate exit code for the error type.
func HandleRunError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = DefaultColorProvider{}
	}

	msgSuffix := ""
	if duration > 0 {
		msgSuffix = fmt.Sprintf(" after %s%s%s", colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
	}

	switch {
	case IsConfigurationError(err):
		fmt.Fprintf(out, "%sConfiguration error:%s %v\n", colors.Red(), colors.Reset(), err)
		return ExitErrorConfig
	case IsContextError(err):
		fmt.Fprintf(out, "%sStatus: Canceled%s.%s\n", colors.Yellow(), msgSuffix, colors.Reset())
		return ExitErrorCanceled
	}
	fmt.Fprintf(out, "%sStatus: Failure%s.%s An unexpected error occurred: %v\n", colors.Red(), msgSuffix, colors.Reset(), err)
	return ExitErrorGeneric
}
