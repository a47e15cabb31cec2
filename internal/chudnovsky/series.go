package chudnovsky

import (
	"math/big"

	"github.com/agbru/picalc/internal/precision"
)

// Series is the running state of the Chudnovsky summation: the integer
// state of the latest term, the partial sum S and the constant C.
//
// S is kept exact as num/den, where den is X of the latest term. Every term
// M_k·L_k/X_k divides X_n exactly, so no rounding enters S and each precision
// raise benefits every term summed so far. The precision context only
// applies when C and π = C/S are formed.
type Series struct {
	term  termState
	stale bool
	num   *big.Int
	den   *big.Int
	c     *big.Float
	ctx   precision.Context
	index uint64
}

// partialSum is an exact sum of consecutive terms over X of its last term:
// num = Σ M_k·L_k·(X_last/X_k).
type partialSum struct {
	num   *big.Int
	terms uint64
}

// NewSeries returns the series after term zero: S = L0 and C computed at ctx.
func NewSeries(ctx precision.Context) *Series {
	return &Series{
		term:  zeroTerm(),
		num:   big.NewInt(L0),
		den:   big.NewInt(1),
		c:     ctx.Chudnovsky(),
		ctx:   ctx,
		index: 0,
	}
}

// Iteration returns the number of terms summed after term zero.
func (s *Series) Iteration() uint64 { return s.index }

// Precision returns the current precision context.
func (s *Series) Precision() precision.Context { return s.ctx }

// Sum returns S rounded to the current precision.
func (s *Series) Sum() *big.Float {
	return s.ctx.Quo(s.ctx.FromInt(s.num), s.ctx.FromInt(s.den))
}

// Advance adds the next term to S. On error the series is left unchanged.
func (s *Series) Advance() error {
	if s.stale {
		s.term = termAt(s.index)
		s.stale = false
	}
	next := s.term.clone()
	i := s.index + 1
	next.advance(i)
	if next.x.Sign() == 0 {
		return ErrZeroDivisor
	}
	num := new(big.Int).Mul(s.num, xRatio)
	num.Add(num, next.product())
	s.num = num
	s.den = new(big.Int).Set(next.x)
	s.term = next
	s.index = i
	return nil
}

// absorb adds partial sums covering the terms right after the current one,
// in term order, to S.
func (s *Series) absorb(partials ...partialSum) {
	for _, p := range partials {
		shift := new(big.Int).Exp(xRatio, new(big.Int).SetUint64(p.terms), nil)
		s.num = new(big.Int).Mul(s.num, shift)
		s.num.Add(s.num, p.num)
		s.den = new(big.Int).Mul(s.den, shift)
		s.index += p.terms
	}
	s.stale = true
}

// Pi returns a freshly allocated C/S at the current precision.
func (s *Series) Pi() (pi *big.Float, err error) {
	if s.num.Sign() == 0 || s.den.Sign() == 0 {
		return nil, ErrDegenerateSum
	}
	defer func() {
		if r := recover(); r != nil {
			err = recoverNaN(r)
		}
	}()
	cx := s.ctx.NewFloat().Mul(s.c, s.ctx.FromInt(s.den))
	return s.ctx.Quo(cx, s.ctx.FromInt(s.num)), nil
}

// Raise moves the series to a higher precision and recomputes C. S and the
// integer state are exact and stay untouched.
func (s *Series) Raise(ctx precision.Context) {
	if ctx.Digits() <= s.ctx.Digits() {
		return
	}
	s.ctx = ctx
	s.c = ctx.Chudnovsky()
}
