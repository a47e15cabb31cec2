package tui

import (
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/metrics"
	"github.com/agbru/picalc/internal/progress"
)

// SnapshotMsg carries one engine snapshot. Expansion is rendered by the
// bridge goroutine so the update loop never converts big floats.
type SnapshotMsg struct {
	Snapshot  progress.Snapshot
	Expansion string
	At        time.Time
}

// ProgressDoneMsg signals that the snapshot stream is closed.
type ProgressDoneMsg struct{}

// RunCompleteMsg carries the outcome of the run.
type RunCompleteMsg struct {
	Result chudnovsky.Result
	Err    error
}

// TickMsg drives the periodic refresh.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory reading.
type MemStatsMsg struct {
	metrics.MemorySnapshot
	NumGoroutine int
}

// ContextCancelledMsg is sent when the parent context is done.
type ContextCancelledMsg struct {
	Err error
}
