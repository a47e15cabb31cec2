package precision

// Default scheduling values.
const (
	DefaultBaseDigits   = 1000
	DefaultStepInterval = 10
	DefaultStepAmount   = 100
)

// Scheduler raises the precision by Step digits every Interval completed
// terms. There is no ceiling. The zero Interval never raises.
type Scheduler struct {
	Interval uint64
	Step     uint64
}

// DefaultScheduler returns the 10-term / 100-digit schedule.
func DefaultScheduler() Scheduler {
	return Scheduler{Interval: DefaultStepInterval, Step: DefaultStepAmount}
}

// ShouldRaise reports whether the precision is raised once iteration terms
// have been completed.
func (s Scheduler) ShouldRaise(iteration uint64) bool {
	return s.Interval > 0 && iteration > 0 && iteration%s.Interval == 0
}

// Next returns the precision following current.
func (s Scheduler) Next(current uint64) uint64 {
	return current + s.Step
}

// Raises returns the number of interval boundaries in (from, to].
func (s Scheduler) Raises(from, to uint64) uint64 {
	if s.Interval == 0 || to <= from {
		return 0
	}
	return to/s.Interval - from/s.Interval
}

// LevelAt returns the precision in effect after iteration terms when the run
// started at base.
func (s Scheduler) LevelAt(base, iteration uint64) uint64 {
	if s.Interval == 0 {
		return base
	}
	return base + (iteration/s.Interval)*s.Step
}
