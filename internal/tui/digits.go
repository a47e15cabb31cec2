package tui

import (
	"strings"

	"github.com/agbru/picalc/internal/format"
)

// DigitsModel shows the latest decimal expansion in a scrollable panel.
type DigitsModel struct {
	lines      []string
	offset     int
	follow     bool
	maxDisplay int
	width      int
	height     int
}

// NewDigitsModel creates an empty panel printing at most maxDisplay decimals
// (negative means all).
func NewDigitsModel(maxDisplay int) DigitsModel {
	return DigitsModel{maxDisplay: maxDisplay, follow: true}
}

// SetSize updates dimensions.
func (d *DigitsModel) SetSize(w, h int) {
	d.width = w
	d.height = h
	d.clamp()
}

// SetExpansion replaces the displayed digits. The view stays pinned to the
// bottom unless the user scrolled up.
func (d *DigitsModel) SetExpansion(expansion string) {
	d.lines = strings.Split(format.FormatPiDigits(expansion, d.maxDisplay), "\n")
	if d.follow {
		d.offset = d.maxOffset()
	}
	d.clamp()
}

// ScrollBy moves the view by delta lines.
func (d *DigitsModel) ScrollBy(delta int) {
	d.offset += delta
	d.clamp()
	d.follow = d.offset == d.maxOffset()
}

// PageSize is the number of visible digit lines.
func (d DigitsModel) PageSize() int {
	// Borders and title.
	return max(d.height-3, 1)
}

// Lines returns the laid-out expansion.
func (d DigitsModel) Lines() []string { return d.lines }

// Offset returns the index of the first visible line.
func (d DigitsModel) Offset() int { return d.offset }

func (d DigitsModel) maxOffset() int {
	return max(len(d.lines)-d.PageSize(), 0)
}

func (d *DigitsModel) clamp() {
	d.offset = min(max(d.offset, 0), d.maxOffset())
}

// View renders the panel.
func (d DigitsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render(" Current Pi Calculation"))
	if len(d.lines) == 0 {
		b.WriteString("\n ")
		b.WriteString(metricLabelStyle.Render("Waiting for the first snapshot..."))
	}
	end := min(d.offset+d.PageSize(), len(d.lines))
	for _, line := range d.lines[d.offset:end] {
		b.WriteString("\n ")
		b.WriteString(digitsStyle.Render(line))
	}
	return panelStyle.
		Width(max(d.width-2, 0)).
		Height(max(d.height-2, 0)).
		Render(b.String())
}
