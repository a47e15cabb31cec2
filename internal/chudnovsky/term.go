package chudnovsky

import (
	"errors"
	"math/big"
)

var (
	// ErrZeroDivisor is returned when X vanishes, which can only happen if
	// the integer state has been corrupted.
	ErrZeroDivisor = errors.New("zero divisor in series term")
	// ErrDegenerateSum is returned when the running sum is zero or infinite
	// and π = C/S cannot be formed.
	ErrDegenerateSum = errors.New("degenerate series sum")
)

// termState holds the integer quantities of one series term.
type termState struct {
	m, l, x, k *big.Int
}

func zeroTerm() termState {
	return termState{
		m: big.NewInt(1),
		l: big.NewInt(L0),
		x: big.NewInt(1),
		k: big.NewInt(K0),
	}
}

// multinomial returns (6k)! / ((3k)! (k!)³). It is replaced by a GMP
// implementation when built with the gmp tag.
var multinomial = multinomialBig

func multinomialBig(k uint64) *big.Int {
	if k == 0 {
		return big.NewInt(1)
	}
	n := int64(k)
	num := new(big.Int).MulRange(3*n+1, 6*n)
	f := new(big.Int).MulRange(1, n)
	den := new(big.Int).Mul(f, f)
	den.Mul(den, f)
	return num.Quo(num, den)
}

// termAt reconstructs the state of term idx in closed form.
func termAt(idx uint64) termState {
	if idx == 0 {
		return zeroTerm()
	}
	k := new(big.Int).SetUint64(idx)
	l := new(big.Int).Mul(k, big.NewInt(LStep))
	l.Add(l, big.NewInt(L0))
	kk := new(big.Int).Mul(k, big.NewInt(KStep))
	kk.Add(kk, big.NewInt(K0))
	return termState{
		m: multinomial(idx),
		l: l,
		x: new(big.Int).Exp(xRatio, k, nil),
		k: kk,
	}
}

// advance moves the state from term i-1 to term i.
func (t *termState) advance(i uint64) {
	// M_i = M_{i-1}·(K³ - 16K) / i³ with K = K_{i-1}.
	k3 := new(big.Int).Mul(t.k, t.k)
	k3.Mul(k3, t.k)
	k16 := new(big.Int).Lsh(t.k, 4)
	k3.Sub(k3, k16)

	bi := new(big.Int).SetUint64(i)
	i3 := new(big.Int).Mul(bi, bi)
	i3.Mul(i3, bi)

	t.m.Mul(t.m, k3)
	t.m.Quo(t.m, i3)
	t.l.Add(t.l, big.NewInt(LStep))
	t.x.Mul(t.x, xRatio)
	t.k.Add(t.k, big.NewInt(KStep))
}

// product returns M·L, the numerator of the term.
func (t *termState) product() *big.Int {
	return new(big.Int).Mul(t.m, t.l)
}

// clone returns a deep copy.
func (t termState) clone() termState {
	return termState{
		m: new(big.Int).Set(t.m),
		l: new(big.Int).Set(t.l),
		x: new(big.Int).Set(t.x),
		k: new(big.Int).Set(t.k),
	}
}

// recoverNaN converts a big.ErrNaN panic into an error and re-panics
// anything else.
func recoverNaN(r any) error {
	if nan, ok := r.(big.ErrNaN); ok {
		return nan
	}
	panic(r)
}
