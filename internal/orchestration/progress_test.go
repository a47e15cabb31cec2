package orchestration

import (
	"testing"
	"time"

	"github.com/agbru/picalc/internal/progress"
)

func TestProgressTrackerUpdate(t *testing.T) {
	t.Parallel()
	start := time.Unix(1000, 0)
	tr := NewProgressTracker(start, time.Minute)

	v := tr.View(start)
	if v.Snapshots != 0 || v.Latest.Pi != nil {
		t.Fatalf("fresh tracker should be empty: %+v", v)
	}
	if v.Remaining != time.Minute {
		t.Errorf("Remaining = %v, want 1m", v.Remaining)
	}

	v = tr.Update(progress.Snapshot{Iteration: 10, Precision: 1100}, start.Add(time.Second))
	if v.Iteration != 10 || v.Precision != 1100 || v.Snapshots != 1 {
		t.Errorf("unexpected view %+v", v)
	}
	if v.Rate != 10 {
		t.Errorf("Rate = %v, want 10", v.Rate)
	}
	if v.EstimatedDigits != 155 {
		t.Errorf("EstimatedDigits = %d, want 155", v.EstimatedDigits)
	}
	if v.Remaining != 59*time.Second {
		t.Errorf("Remaining = %v, want 59s", v.Remaining)
	}

	v = tr.View(start.Add(2 * time.Minute))
	if v.Remaining != 0 {
		t.Errorf("Remaining after the limit = %v, want 0", v.Remaining)
	}
}

func TestProgressTrackerUnlimited(t *testing.T) {
	t.Parallel()
	start := time.Now()
	tr := NewProgressTracker(start, NoTimeLimit)
	if v := tr.View(start.Add(time.Hour)); v.Remaining >= 0 {
		t.Errorf("unlimited run should report negative Remaining, got %v", v.Remaining)
	}
}

func TestEstimatedDigits(t *testing.T) {
	t.Parallel()
	tests := []struct {
		iteration, precision, want uint64
	}{
		{0, 0, 0},
		{0, 1000, 14},
		{10, 1100, 155},
		{200, 3000, 2850},
		{200, 1000, 1000},
	}
	for _, tt := range tests {
		if got := EstimatedDigits(tt.iteration, tt.precision); got != tt.want {
			t.Errorf("EstimatedDigits(%d, %d) = %d, want %d", tt.iteration, tt.precision, got, tt.want)
		}
	}
}

func TestDrainChannel(t *testing.T) {
	t.Parallel()
	ch := make(chan progress.Snapshot, 3)
	ch <- progress.Snapshot{}
	ch <- progress.Snapshot{}
	close(ch)
	DrainChannel(ch)
	if len(ch) != 0 {
		t.Error("channel should be drained")
	}
}
