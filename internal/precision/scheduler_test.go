package precision

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestSchedulerShouldRaise(t *testing.T) {
	t.Parallel()
	s := DefaultScheduler()
	tests := []struct {
		iteration uint64
		want      bool
	}{
		{0, false},
		{1, false},
		{9, false},
		{10, true},
		{11, false},
		{20, true},
		{1000, true},
	}
	for _, tt := range tests {
		if got := s.ShouldRaise(tt.iteration); got != tt.want {
			t.Errorf("ShouldRaise(%d) = %v, want %v", tt.iteration, got, tt.want)
		}
	}
	if (Scheduler{}).ShouldRaise(10) {
		t.Error("zero interval must never raise")
	}
}

func TestSchedulerNext(t *testing.T) {
	t.Parallel()
	s := Scheduler{Interval: 5, Step: 250}
	if got := s.Next(1000); got != 1250 {
		t.Errorf("Next(1000) = %d, want 1250", got)
	}
}

func TestSchedulerRaises(t *testing.T) {
	t.Parallel()
	s := DefaultScheduler()
	tests := []struct {
		from, to uint64
		want     uint64
	}{
		{0, 9, 0},
		{0, 10, 1},
		{0, 40, 4},
		{10, 20, 1},
		{10, 19, 0},
		{15, 35, 2},
		{20, 20, 0},
		{30, 20, 0},
	}
	for _, tt := range tests {
		if got := s.Raises(tt.from, tt.to); got != tt.want {
			t.Errorf("Raises(%d, %d) = %d, want %d", tt.from, tt.to, got, tt.want)
		}
	}
}

func TestSchedulerLevelAt(t *testing.T) {
	t.Parallel()
	s := DefaultScheduler()
	tests := []struct {
		iteration uint64
		want      uint64
	}{
		{0, 1000},
		{9, 1000},
		{10, 1100},
		{25, 1200},
		{100, 2000},
	}
	for _, tt := range tests {
		if got := s.LevelAt(1000, tt.iteration); got != tt.want {
			t.Errorf("LevelAt(1000, %d) = %d, want %d", tt.iteration, got, tt.want)
		}
	}
}

// TestScheduler_PropertyBased checks that the schedule is monotonic and that
// the batch helpers agree with term-by-term stepping.
func TestScheduler_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("LevelAt is non-decreasing", prop.ForAll(
		func(interval, step, base, i uint64) bool {
			s := Scheduler{Interval: interval, Step: step}
			return s.LevelAt(base, i) <= s.LevelAt(base, i+1)
		},
		gen.UInt64Range(1, 50), gen.UInt64Range(1, 500), gen.UInt64Range(10, 5000), gen.UInt64Range(0, 10000),
	))

	properties.Property("Raises counts ShouldRaise over a range", prop.ForAll(
		func(interval, from, width uint64) bool {
			s := Scheduler{Interval: interval, Step: 100}
			var count uint64
			for i := from + 1; i <= from+width; i++ {
				if s.ShouldRaise(i) {
					count++
				}
			}
			return s.Raises(from, from+width) == count
		},
		gen.UInt64Range(1, 40), gen.UInt64Range(0, 2000), gen.UInt64Range(0, 200),
	))

	properties.Property("stepping with Next reaches LevelAt", prop.ForAll(
		func(interval, step, n uint64) bool {
			s := Scheduler{Interval: interval, Step: step}
			level := uint64(1000)
			for i := uint64(1); i <= n; i++ {
				if s.ShouldRaise(i) {
					level = s.Next(level)
				}
			}
			return level == s.LevelAt(1000, n)
		},
		gen.UInt64Range(1, 30), gen.UInt64Range(1, 300), gen.UInt64Range(0, 500),
	))

	properties.TestingRun(t)
}
