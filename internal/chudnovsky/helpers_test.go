package chudnovsky

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/agbru/picalc/internal/precision"
)

// loadReference reads a decimal expansion from testdata.
func loadReference(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatalf("reading reference %s: %v", name, err)
	}
	return strings.TrimSpace(string(data))
}

// correctDigits returns how many decimals of pi agree with ref.
func correctDigits(pi *big.Float, ref string) int {
	decimals := uint64(len(ref) - 2)
	got := precision.Text(pi, decimals)
	n := 0
	for n < len(got) && n < len(ref) && got[n] == ref[n] {
		n++
	}
	if n <= 2 {
		return 0
	}
	return n - 2
}

// closeTo reports whether |a-b| < 2^-bits.
func closeTo(a, b *big.Float, bits int) bool {
	diff := new(big.Float).SetPrec(a.Prec()).Sub(a, b)
	diff.Abs(diff)
	limit := new(big.Float).SetMantExp(big.NewFloat(1), -bits)
	return diff.Cmp(limit) < 0
}

// relativelyClose reports whether |a-b| <= |a|·2^-bits.
func relativelyClose(a, b *big.Float, bits int) bool {
	diff := new(big.Float).SetPrec(a.Prec()).Sub(a, b)
	diff.Abs(diff)
	if a.Sign() == 0 {
		return diff.Sign() == 0
	}
	limit := new(big.Float).SetMantExp(big.NewFloat(1), a.MantExp(nil)-bits)
	return diff.Cmp(limit) <= 0
}
