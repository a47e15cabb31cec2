package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
)

// MetricsModel displays the run figures and runtime memory statistics.
type MetricsModel struct {
	view   orchestration.ProgressView
	mem    MemStatsMsg
	width  int
	height int
}

// NewMetricsModel creates a new metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetView replaces the derived progress figures.
func (m *MetricsModel) SetView(v orchestration.ProgressView) {
	m.view = v
}

// UpdateMemStats updates memory statistics.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.mem = msg
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	colWidth := max((m.width-4)/2, 0)

	left := []string{
		formatMetricCol("Iteration:", fmt.Sprintf("%d", m.view.Iteration), colWidth),
		formatMetricCol("Precision:", fmt.Sprintf("~%d digits", m.view.Precision), colWidth),
		formatMetricCol("Correct:", fmt.Sprintf("~%d digits", m.view.EstimatedDigits), colWidth),
		formatMetricCol("Rate:", fmt.Sprintf("%.1f it/s", m.view.Rate), colWidth),
	}
	right := []string{
		formatMetricCol("Heap:", format.FormatBytes(m.mem.HeapAlloc)+" / "+format.FormatBytes(m.mem.HeapSys), colWidth),
		formatMetricCol("GC:", fmt.Sprintf("%d (%.1fms)", m.mem.NumGC, float64(m.mem.PauseTotalNs)/1e6), colWidth),
		formatMetricCol("Goroutines:", fmt.Sprintf("%d", m.mem.NumGoroutine), colWidth),
		formatMetricCol("Snapshots:", fmt.Sprintf("%d", m.view.Snapshots), colWidth),
	}

	var rows strings.Builder
	rows.WriteString(panelTitleStyle.Render(" Metrics"))
	for i := range left {
		rows.WriteString("\n")
		rows.WriteString(left[i])
		rows.WriteString(right[i])
	}

	return panelStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Render(rows.String())
}

func formatMetricCol(label, value string, colWidth int) string {
	cell := fmt.Sprintf(" %s %s",
		metricLabelStyle.Render(fmt.Sprintf("%-11s", label)),
		metricValueStyle.Render(value))
	visible := lipgloss.Width(cell)
	if visible < colWidth {
		cell += strings.Repeat(" ", colWidth-visible)
	}
	return cell
}
