// Package cli renders the computation on a plain terminal: a live spinner
// while the series runs, the digit layout and summary at the end, the result
// file and the interactive time-limit prompt.
//
// # Naming Conventions
//
//   - Display* functions write formatted output to an [io.Writer].
//   - Format* functions return a formatted string without performing I/O.
//   - Write* functions write data to files on the filesystem.
package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/picalc/internal/chudnovsky"
	"github.com/agbru/picalc/internal/format"
	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
)

const (
	// ProgressRefreshRate is the spinner refresh period.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the time-limit bar.
	ProgressBarWidth = 30
	// DigitsRefreshRate is the minimum period between two redraws of the
	// digit block when live digits are enabled.
	DigitsRefreshRate = 2 * time.Second
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to Spinner.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// FormatProgressLine renders the live status line, for example
// "Iteration 120 | ~1700 digits | 85.3 it/s | 40.00% [████░░] left: 6s".
func FormatProgressLine(view orchestration.ProgressView, timeLimit time.Duration) string {
	if view.Snapshots == 0 {
		return fmt.Sprintf("Starting... | %s", format.FormatTimeBar(view.Elapsed, timeLimit, ProgressBarWidth))
	}
	return fmt.Sprintf("Iteration %d | ~%d digits | %.1f it/s | %s",
		view.Iteration, view.Precision, view.Rate,
		format.FormatTimeBar(view.Elapsed, timeLimit, ProgressBarWidth))
}

// FormatStatusLine renders the runtime summary printed under the digits.
func FormatStatusLine(view orchestration.ProgressView) string {
	return fmt.Sprintf("Runtime: %s | Iterations: %d | Precision: ~%d digits",
		format.FormatSeconds(view.Elapsed), view.Iteration, view.Precision)
}

// LiveDigits redraws the digit block of the latest snapshot while the run
// progresses.
type LiveDigits struct {
	// MaxDisplay limits the decimals drawn. Negative means all.
	MaxDisplay int
	// Every is the minimum period between two redraws.
	Every time.Duration
}

// DisplayProgress runs a spinner until snapshots is closed, refreshing the
// status line on every snapshot and every ProgressRefreshRate. It prints a
// final status line that stays on screen. A negative timeLimit means the run
// is unlimited.
func DisplayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, timeLimit time.Duration, out io.Writer) {
	displayProgress(wg, snapshots, timeLimit, nil, out)
}

// DisplayProgressWithDigits behaves like DisplayProgress and also prints the
// digit block of the latest snapshot at most once per live.Every.
func DisplayProgressWithDigits(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, timeLimit time.Duration, live LiveDigits, out io.Writer) {
	displayProgress(wg, snapshots, timeLimit, &live, out)
}

func displayProgress(wg *sync.WaitGroup, snapshots <-chan progress.Snapshot, timeLimit time.Duration, live *LiveDigits, out io.Writer) {
	defer wg.Done()

	start := time.Now()
	tracker := orchestration.NewProgressTracker(start, timeLimit)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	lastDigits := start
	for {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				s.Stop()
				fmt.Fprintln(out, FormatStatusLine(tracker.View(time.Now())))
				return
			}
			now := time.Now()
			view := tracker.Update(snap, now)
			if live != nil && now.Sub(lastDigits) >= live.Every {
				s.Stop()
				DisplayPi(chudnovsky.Result{Pi: snap.Pi, Precision: snap.Precision}, live.MaxDisplay, out)
				fmt.Fprintln(out, FormatStatusLine(view))
				lastDigits = now
				s.Start()
			}
			s.UpdateSuffix(" " + FormatProgressLine(view, timeLimit))
		case <-ticker.C:
			s.UpdateSuffix(" " + FormatProgressLine(tracker.View(time.Now()), timeLimit))
		}
	}
}
