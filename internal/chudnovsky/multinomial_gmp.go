//go:build gmp

// Closed-form reconstruction of M_k for chunk starts uses GMP when built with
// -tags=gmp. Requires libgmp (libgmp-dev on Debian, brew install gmp on macOS).

package chudnovsky

import (
	"math/big"

	"github.com/ncw/gmp"
)

func init() {
	multinomial = multinomialGMP
}

// multinomialGMP computes (6k)! / ((3k)! (k!)³) with GMP integers.
func multinomialGMP(k uint64) *big.Int {
	if k == 0 {
		return big.NewInt(1)
	}
	n := int64(k)
	num := gmp.NewInt(1)
	f := gmp.NewInt(1)
	t := gmp.NewInt(0)
	for i := 3*n + 1; i <= 6*n; i++ {
		num.Mul(num, t.SetInt64(i))
	}
	for i := int64(2); i <= n; i++ {
		f.Mul(f, t.SetInt64(i))
	}
	den := gmp.NewInt(0).Mul(f, f)
	den.Mul(den, f)
	num.Quo(num, den)
	return new(big.Int).SetBytes(num.Bytes())
}
