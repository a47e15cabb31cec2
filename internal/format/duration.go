package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display.
// It shows microseconds below a millisecond, milliseconds below a second and
// the default string representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatSeconds renders d as seconds with two decimals ("12.34 seconds").
func FormatSeconds(d time.Duration) string {
	return fmt.Sprintf("%.2f seconds", d.Seconds())
}

// FormatRemaining renders the time left before a time limit fires.
// A negative value means the run has no limit.
func FormatRemaining(d time.Duration) string {
	switch {
	case d < 0:
		return "no limit"
	case d == 0:
		return "0s"
	case d < time.Second:
		return "< 1s"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		minutes := int(d.Minutes())
		if seconds := int(d.Seconds()) % 60; seconds > 0 {
			return fmt.Sprintf("%dm%ds", minutes, seconds)
		}
		return fmt.Sprintf("%dm", minutes)
	}
	hours := int(d.Hours())
	if minutes := int(d.Minutes()) % 60; minutes > 0 {
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	return fmt.Sprintf("%dh", hours)
}

// FormatBytes renders a byte count with a binary unit ("1.5 MiB").
func FormatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
