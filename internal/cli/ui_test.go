package cli

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/picalc/internal/orchestration"
	"github.com/agbru/picalc/internal/progress"
)

func TestFormatProgressLine(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		view      orchestration.ProgressView
		timeLimit time.Duration
		contains  []string
	}{
		{
			name:      "before first snapshot",
			view:      orchestration.ProgressView{Elapsed: time.Second},
			timeLimit: -1,
			contains:  []string{"Starting...", "elapsed: 1s"},
		},
		{
			name:      "with time limit",
			view:      orchestration.ProgressView{Iteration: 120, Precision: 2100, Snapshots: 12, Rate: 85.31, Elapsed: 4 * time.Second},
			timeLimit: 10 * time.Second,
			contains:  []string{"Iteration 120", "~2100 digits", "85.3 it/s", "40.00%", "left: 6s"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			line := FormatProgressLine(tt.view, tt.timeLimit)
			for _, want := range tt.contains {
				if !strings.Contains(line, want) {
					t.Errorf("line %q should contain %q", line, want)
				}
			}
		})
	}
}

// TestDisplayProgress replaces the package spinner factory and must not run
// in parallel with other tests doing the same.
func TestDisplayProgress(t *testing.T) {
	mock := &mockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	snapshots := make(chan progress.Snapshot, 4)
	var out bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, snapshots, -1, &out)

	snapshots <- progress.Snapshot{Iteration: 10, Precision: 1100}
	snapshots <- progress.Snapshot{Iteration: 20, Precision: 1200}
	close(snapshots)
	wg.Wait()

	mock.mu.Lock()
	defer mock.mu.Unlock()
	if !mock.started || !mock.stopped {
		t.Errorf("spinner should be started and stopped (started=%v stopped=%v)", mock.started, mock.stopped)
	}
	if len(mock.suffixes) < 2 {
		t.Fatalf("expected at least 2 suffix updates, got %d", len(mock.suffixes))
	}
	if !strings.Contains(out.String(), "Iterations: 20 | Precision: ~1200 digits") {
		t.Errorf("final status line missing, got %q", out.String())
	}
}

func TestCLIProgressDisplayDrains(t *testing.T) {
	mock := &mockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	snapshots := make(chan progress.Snapshot)
	close(snapshots)
	var wg sync.WaitGroup
	wg.Add(1)
	var out bytes.Buffer
	CLIProgressDisplay{TimeLimit: time.Minute}.DisplayProgress(&wg, snapshots, &out)
	wg.Wait()

	if !strings.Contains(out.String(), "Iterations: 0") {
		t.Errorf("expected a final line even without snapshots, got %q", out.String())
	}
}

// TestDisplayProgressWithDigits replaces the package spinner factory and
// must not run in parallel with other tests doing the same.
func TestDisplayProgressWithDigits(t *testing.T) {
	withNoColor(t)
	mock := &mockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	pi := testResult(t, 30).Pi
	snapshots := make(chan progress.Snapshot, 2)
	snapshots <- progress.Snapshot{Pi: pi, Iteration: 10, Precision: 21}
	snapshots <- progress.Snapshot{Pi: pi, Iteration: 20, Precision: 31}
	close(snapshots)

	var out bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgressWithDigits(&wg, snapshots, -1, LiveDigits{MaxDisplay: 100}, &out)
	wg.Wait()

	got := out.String()
	if n := strings.Count(got, "Current Pi Calculation:"); n != 2 {
		t.Errorf("expected the digit block once per snapshot, got %d:\n%s", n, got)
	}
	for _, want := range []string{
		"Pi = 3. 1415926535 8979323846",
		"Pi = 3. 1415926535 8979323846 2643383280",
		"Iterations: 10 | Precision: ~21 digits",
		"Iterations: 20 | Precision: ~31 digits",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q:\n%s", want, got)
		}
	}
}

func TestDisplayProgressWithDigitsThrottles(t *testing.T) {
	withNoColor(t)
	mock := &mockSpinner{}
	original := newSpinner
	newSpinner = func(...spinner.Option) Spinner { return mock }
	defer func() { newSpinner = original }()

	snapshots := make(chan progress.Snapshot, 1)
	snapshots <- progress.Snapshot{Pi: testResult(t, 30).Pi, Iteration: 10, Precision: 21}
	close(snapshots)

	var out bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(1)
	DisplayProgressWithDigits(&wg, snapshots, -1, LiveDigits{MaxDisplay: 100, Every: time.Hour}, &out)
	wg.Wait()

	if strings.Contains(out.String(), "Current Pi Calculation:") {
		t.Errorf("digits should wait for the refresh period:\n%s", out.String())
	}
}
