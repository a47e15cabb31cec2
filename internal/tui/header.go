package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/format"
)

const timeBarWidth = 20

// HeaderModel renders the top bar: title, version, elapsed time and the
// time-limit bar.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	timeLimit time.Duration
	version   string
	width     int
}

// NewHeaderModel creates a header whose clock starts now.
func NewHeaderModel(version string, timeLimit time.Duration) HeaderModel {
	return HeaderModel{
		startTime: time.Now(),
		timeLimit: timeLimit,
		version:   version,
	}
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	if h.endTime.IsZero() {
		h.endTime = time.Now()
	}
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// Elapsed returns the time since the header was created, frozen by SetDone.
func (h HeaderModel) Elapsed() time.Duration {
	if !h.endTime.IsZero() {
		return h.endTime.Sub(h.startTime)
	}
	return time.Since(h.startTime)
}

// View renders the header.
func (h HeaderModel) View() string {
	titleText := "Pi Monitor"
	if h.version != "" && h.version != "dev" {
		titleText += " " + h.version
	}
	title := titleStyle.Render(titleText)
	pipe := versionStyle.Render(" | ")

	elapsed := h.Elapsed()
	left := title + pipe + elapsedStyle.Render(fmt.Sprintf("Elapsed: %s", format.FormatExecutionDuration(elapsed)))
	right := ""
	if h.timeLimit > 0 {
		right = versionStyle.Render(format.FormatTimeBar(elapsed, h.timeLimit, timeBarWidth))
	}

	innerWidth := max(h.width-2, 0)
	gap := max(innerWidth-lipgloss.Width(left)-lipgloss.Width(right), 1)

	return headerStyle.Width(h.width).Render(left + spaces(gap) + right)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
