package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/picalc/internal/format"
)

// historySize is the number of samples kept for the charts.
const historySize = 240

// ChartModel plots the iteration rate history as a braille chart with a heap
// sparkline underneath.
type ChartModel struct {
	rates  *History
	heap   *History
	width  int
	height int
}

// NewChartModel creates an empty chart.
func NewChartModel() ChartModel {
	return ChartModel{
		rates: NewHistory(historySize),
		heap:  NewHistory(historySize),
	}
}

// SetSize updates dimensions.
func (c *ChartModel) SetSize(w, h int) {
	c.width = w
	c.height = h
}

// AddRate records an iteration rate sample.
func (c *ChartModel) AddRate(rate float64) {
	c.rates.Add(rate)
}

// AddHeap records a heap size sample.
func (c *ChartModel) AddHeap(bytes uint64) {
	c.heap.Add(float64(bytes))
}

// View renders the chart panel.
func (c ChartModel) View() string {
	innerWidth := max(c.width-4, 1)
	// Title, heap line and borders.
	chartRows := max(c.height-4, 1)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(fmt.Sprintf(" Rate  now %.1f it/s  peak %.1f it/s", c.rates.Latest(), c.rates.Peak())))
	for _, row := range brailleRows(c.rates.Levels(innerWidth*2), innerWidth, chartRows) {
		b.WriteString("\n ")
		b.WriteString(sparklineStyle.Render(row))
	}

	label := fmt.Sprintf("Heap %-10s ", format.FormatBytes(uint64(c.heap.Latest())))
	b.WriteString("\n ")
	b.WriteString(metricLabelStyle.Render(label))
	b.WriteString(heapSparkStyle.Render(sparkline(c.heap.Levels(innerWidth - len(label)))))

	return panelStyle.
		Width(max(c.width-2, 0)).
		Height(max(c.height-2, 0)).
		Render(b.String())
}
