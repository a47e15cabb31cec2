package orchestration

import (
	"time"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/progress"
)

// ProgressTracker folds the snapshot stream into the figures shown by the
// CLI and the TUI. Both displays use it so the derivation lives in one place.
// It is not safe for concurrent use.
type ProgressTracker struct {
	rate      *format.RateTracker
	last      progress.Snapshot
	snapshots uint64
	start     time.Time
	timeLimit time.Duration
}

// ProgressView is the derived state after the latest snapshot.
type ProgressView struct {
	Iteration uint64
	Precision uint64
	Snapshots uint64
	// Rate is the smoothed number of terms per second.
	Rate float64
	// EstimatedDigits is the number of correct digits implied by the terms
	// summed, capped at the working precision.
	EstimatedDigits uint64
	Elapsed         time.Duration
	// Remaining is the time left before the limit, or negative without one.
	Remaining time.Duration
	// Latest is the most recent snapshot, with a nil Pi before the first one.
	Latest progress.Snapshot
}

// NewProgressTracker starts tracking a run that began at start. A negative
// timeLimit means the run is unlimited.
func NewProgressTracker(start time.Time, timeLimit time.Duration) *ProgressTracker {
	return &ProgressTracker{
		rate:      format.NewRateTracker(start),
		start:     start,
		timeLimit: timeLimit,
	}
}

// Update records s as observed at now.
func (t *ProgressTracker) Update(s progress.Snapshot, now time.Time) ProgressView {
	t.rate.Observe(s.Iteration, now)
	t.last = s
	t.snapshots++
	return t.View(now)
}

// View returns the current state without recording a snapshot. It is used
// for periodic refreshes between snapshots.
func (t *ProgressTracker) View(now time.Time) ProgressView {
	elapsed := now.Sub(t.start)
	remaining := time.Duration(-1)
	if t.timeLimit >= 0 {
		remaining = max(t.timeLimit-elapsed, 0)
	}
	return ProgressView{
		Iteration:       t.last.Iteration,
		Precision:       t.last.Precision,
		Snapshots:       t.snapshots,
		Rate:            t.rate.Rate(),
		EstimatedDigits: EstimatedDigits(t.last.Iteration, t.last.Precision),
		Elapsed:         elapsed,
		Remaining:       remaining,
		Latest:          t.last,
	}
}

// EstimatedDigits returns the correct digits expected after iteration terms,
// never more than the working precision.
func EstimatedDigits(iteration, precisionDigits uint64) uint64 {
	if precisionDigits == 0 {
		return 0
	}
	est := uint64(float64(iteration+1) * chudnovsky.DigitsPerTerm)
	return min(est, precisionDigits)
}

// DrainChannel discards snapshots until the channel is closed.
func DrainChannel(snapshots <-chan progress.Snapshot) {
	for range snapshots {
	}
}
