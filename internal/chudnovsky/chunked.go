package chudnovsky

import (
	"math/big"
	"sync"

	"github.com/agbru/picalc/internal/cancellation"
	"github.com/agbru/picalc/internal/parallel"
	"github.com/agbru/picalc/internal/precision"
	"github.com/agbru/picalc/internal/progress"
)

// ChunkedEngine sums the series in batches of Workers·ChunkSize terms. Each
// worker reconstructs the state at the start of its chunk in closed form and
// returns an exact integer partial sum, so chunks are independent and the
// aggregated sum equals the sequential one.
type ChunkedEngine struct{}

// Name returns "chunked".
func (e *ChunkedEngine) Name() string { return "chunked" }

// chunk is a contiguous range of term indices [first, first+count).
type chunk struct {
	first uint64
	count uint64
}

// chunkRanges splits the terms after offset into at most workers chunks of
// size terms each. A non-zero limit caps the last term index.
func chunkRanges(offset uint64, workers, size int, limit uint64) []chunk {
	chunks := make([]chunk, 0, workers)
	next := offset + 1
	for w := 0; w < workers; w++ {
		count := uint64(size)
		if limit > 0 {
			if next > limit {
				break
			}
			if next+count-1 > limit {
				count = limit - next + 1
			}
		}
		chunks = append(chunks, chunk{first: next, count: count})
		next += count
	}
	return chunks
}

// sumChunk returns the exact sum of the terms in c over X of its last term.
func sumChunk(c chunk) (partialSum, error) {
	state := termAt(c.first)
	if state.x.Sign() == 0 {
		return partialSum{}, ErrZeroDivisor
	}
	num := state.product()
	for i := c.first + 1; i < c.first+c.count; i++ {
		state.advance(i)
		num.Mul(num, xRatio)
		num.Add(num, state.product())
	}
	return partialSum{num: num, terms: c.count}, nil
}

// sumBatch runs one worker per chunk and returns the partial sums in chunk
// order.
func sumBatch(chunks []chunk) ([]partialSum, error) {
	partials := make([]partialSum, len(chunks))
	var ec parallel.ErrorCollector
	var wg sync.WaitGroup
	for idx, c := range chunks {
		ec.Go(&wg, func() error {
			sum, err := sumChunk(c)
			if err != nil {
				return err
			}
			partials[idx] = sum
			return nil
		}, recoverNaN)
	}
	wg.Wait()
	if err := ec.Err(); err != nil {
		return nil, err
	}
	return partials, nil
}

// RunCore implements coreEngine. The token is observed once per batch.
func (e *ChunkedEngine) RunCore(params Params, reporter progress.Reporter, token *cancellation.Token) (Result, error) {
	sched := params.Scheduler()
	series := NewSeries(precision.New(params.BasePrecision))

	pi, err := series.Pi()
	if err != nil {
		return Result{}, arithmeticFailure(e.Name(), 0, series.Precision(), err)
	}

	for !token.Cancelled() {
		offset := series.Iteration()
		if params.MaxIterations > 0 && offset >= params.MaxIterations {
			break
		}
		chunks := chunkRanges(offset, params.Workers, params.ChunkSize, params.MaxIterations)
		partials, err := sumBatch(chunks)
		if err != nil {
			return resultOf(pi, series), arithmeticFailure(e.Name(), offset+1, series.Precision(), err)
		}
		series.absorb(partials...)

		next, err := series.Pi()
		if err != nil {
			return resultOf(pi, series), arithmeticFailure(e.Name(), series.Iteration(), series.Precision(), err)
		}
		pi = next

		raises := sched.Raises(offset, series.Iteration())
		if raises == 0 {
			continue
		}
		digits := series.Precision().Digits()
		for r := uint64(0); r < raises; r++ {
			digits = sched.Next(digits)
		}
		raised := series.Precision().WithDigits(digits)
		series.Raise(raised)
		reporter.OnSnapshot(progress.Snapshot{Pi: pi, Iteration: series.Iteration(), Precision: raised.Digits()})
	}
	return resultOf(pi, series), nil
}
