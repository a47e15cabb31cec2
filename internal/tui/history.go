package tui

import "strings"

// History keeps the latest samples of one dashboard series, such as the
// iteration rate or the heap size, oldest first. The peak covers the whole
// run so a slowing computation shows as a falling curve.
type History struct {
	samples []float64
	limit   int
	peak    float64
}

// NewHistory creates a history holding at most limit samples.
func NewHistory(limit int) *History {
	limit = max(limit, 1)
	return &History{samples: make([]float64, 0, limit), limit: limit}
}

// Add records a sample, dropping the oldest one when full.
func (h *History) Add(v float64) {
	if len(h.samples) == h.limit {
		copy(h.samples, h.samples[1:])
		h.samples = h.samples[:h.limit-1]
	}
	h.samples = append(h.samples, v)
	h.peak = max(h.peak, v)
}

// Len returns the number of samples held.
func (h *History) Len() int { return len(h.samples) }

// Latest returns the most recent sample, or 0 before the first one.
func (h *History) Latest() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Peak returns the largest sample seen during the run.
func (h *History) Peak() float64 { return h.peak }

// Levels returns the last n samples scaled to 0..1 by the run peak.
func (h *History) Levels(n int) []float64 {
	if n <= 0 || len(h.samples) == 0 {
		return nil
	}
	recent := h.samples[max(len(h.samples)-n, 0):]
	levels := make([]float64, len(recent))
	if h.peak <= 0 {
		return levels
	}
	for i, v := range recent {
		levels[i] = v / h.peak
	}
	return levels
}

// step maps a level in 0..1 to one of steps discrete heights.
func step(level float64, steps int) int {
	level = min(max(level, 0), 1)
	return min(int(level*float64(steps-1)), steps-1)
}

var blocks = []rune("▁▂▃▄▅▆▇█")

// sparkline renders levels as a single row of block characters.
func sparkline(levels []float64) string {
	var b strings.Builder
	for _, l := range levels {
		b.WriteRune(blocks[step(l, len(blocks))])
	}
	return b.String()
}

const brailleBlank = 0x2800

// dotBits holds the braille bit for each dot row (top first) of the left and
// right columns of a cell.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// brailleRows plots levels as one dot per sample on a grid of rows by width
// braille cells, two samples per cell, newest on the right.
func brailleRows(levels []float64, width, rows int) []string {
	if width <= 0 || rows <= 0 || len(levels) == 0 {
		return nil
	}
	cols, height := width*2, rows*4
	if len(levels) > cols {
		levels = levels[len(levels)-cols:]
	}

	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = []rune(strings.Repeat(string(rune(brailleBlank)), width))
	}
	first := cols - len(levels)
	for i, l := range levels {
		col := first + i
		dot := height - 1 - step(l, height)
		grid[dot/4][col/2] |= dotBits[dot%4][col%2]
	}

	out := make([]string, rows)
	for r, cells := range grid {
		out[r] = string(cells)
	}
	return out
}
