package format

import (
	"fmt"
	"strings"
	"time"
)

// ProgressBar renders fraction (clamped to [0, 1]) as a bar of width cells.
func ProgressBar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	} else if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatTimeBar renders how much of a time limit has been used, for example
// " 45.00% [████░░░░░] left: 2m30s". Without a limit it returns only the
// elapsed time.
func FormatTimeBar(elapsed, limit time.Duration, width int) string {
	if limit <= 0 {
		return "elapsed: " + FormatExecutionDuration(elapsed.Round(time.Millisecond))
	}
	fraction := float64(elapsed) / float64(limit)
	if fraction > 1 {
		fraction = 1
	}
	remaining := limit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return fmt.Sprintf("%6.2f%% [%s] left: %s", fraction*100, ProgressBar(fraction, width), FormatRemaining(remaining))
}
