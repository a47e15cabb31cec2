package precision

import (
	"math"
	"math/big"
)

// GuardBits are added on top of the bits needed to represent the requested
// decimal digits, absorbing rounding in the series accumulation.
const GuardBits = 64

// ChudnovskyMultiplier and ChudnovskyRadicand define C = 426880·√10005.
const (
	ChudnovskyMultiplier = 426880
	ChudnovskyRadicand   = 10005
)

var log2Ten = math.Log2(10)

// Context is a working precision expressed in decimal digits.
type Context struct {
	digits uint64
}

// New returns a context for the given number of decimal digits.
func New(digits uint64) Context {
	return Context{digits: digits}
}

// Digits returns the decimal precision.
func (c Context) Digits() uint64 { return c.digits }

// Bits returns the mantissa size in bits used for big.Float values created
// under this context.
func (c Context) Bits() uint {
	return uint(math.Ceil(float64(c.digits)*log2Ten)) + GuardBits
}

// WithDigits returns a copy of c at a different precision.
func (c Context) WithDigits(digits uint64) Context {
	return Context{digits: digits}
}

// NewFloat returns a zero big.Float at the context precision.
func (c Context) NewFloat() *big.Float {
	return new(big.Float).SetPrec(c.Bits())
}

// FromInt converts x to a big.Float at the context precision.
func (c Context) FromInt(x *big.Int) *big.Float {
	return c.NewFloat().SetInt(x)
}

// Quo returns x/y rounded to the context precision.
// It panics with big.ErrNaN when both operands are zero or infinite.
func (c Context) Quo(x, y *big.Float) *big.Float {
	return c.NewFloat().Quo(x, y)
}

// Sqrt returns √x rounded to the context precision.
func (c Context) Sqrt(x *big.Float) *big.Float {
	return c.NewFloat().Sqrt(x)
}

// Chudnovsky returns the constant C = 426880·√10005 at the context precision.
func (c Context) Chudnovsky() *big.Float {
	root := c.Sqrt(c.NewFloat().SetInt64(ChudnovskyRadicand))
	return root.Mul(root, c.NewFloat().SetInt64(ChudnovskyMultiplier))
}

// Text renders x in fixed-point notation with the given number of decimals.
func Text(x *big.Float, decimals uint64) string {
	if x == nil {
		return ""
	}
	return x.Text('f', int(decimals))
}
