package chudnovsky

import (
	"math/big"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/precision"
	"github.com/agbru/picalc/internal/progress"
)

// SequentialEngine advances the recurrence one term at a time, observing the
// token between terms.
type SequentialEngine struct {
	// newSeries builds the initial state; tests replace it to inject faults.
	newSeries func(precision.Context) *Series
}

// Name returns "sequential".
func (e *SequentialEngine) Name() string { return "sequential" }

// RunCore implements coreEngine.
func (e *SequentialEngine) RunCore(params Params, reporter progress.Reporter, token *cancellation.Token) (Result, error) {
	build := e.newSeries
	if build == nil {
		build = NewSeries
	}
	sched := params.Scheduler()
	series := build(precision.New(params.BasePrecision))

	pi, err := series.Pi()
	if err != nil {
		return Result{}, arithmeticFailure(e.Name(), 0, series.Precision(), err)
	}

	for !token.Cancelled() {
		if params.MaxIterations > 0 && series.Iteration() >= params.MaxIterations {
			break
		}
		if err := series.Advance(); err != nil {
			return resultOf(pi, series), arithmeticFailure(e.Name(), series.Iteration()+1, series.Precision(), err)
		}
		next, err := series.Pi()
		if err != nil {
			return resultOf(pi, series), arithmeticFailure(e.Name(), series.Iteration(), series.Precision(), err)
		}
		pi = next

		i := series.Iteration()
		if sched.ShouldRaise(i) {
			raised := series.Precision().WithDigits(sched.Next(series.Precision().Digits()))
			series.Raise(raised)
			reporter.OnSnapshot(progress.Snapshot{Pi: pi, Iteration: i, Precision: raised.Digits()})
		}
	}
	return resultOf(pi, series), nil
}

// resultOf describes the last computed state of series.
func resultOf(pi *big.Float, series *Series) Result {
	return Result{
		Pi:         pi,
		Precision:  series.Precision().Digits(),
		Iterations: series.Iteration(),
	}
}
