package format

import (
	"fmt"
	"math"
	"math/big"
	"strings"
)

// Digit layout constants.
const (
	DigitGroupSize  = 10
	DigitLineLength = 50
	// DefaultMaxDisplay is the number of decimals printed before truncating.
	DefaultMaxDisplay = 1000
)

// DecimalExpansion renders pi with as many significant digits as the working
// precision claims, but never more than the mantissa of pi holds.
func DecimalExpansion(pi *big.Float, digits uint64) string {
	if pi == nil {
		return ""
	}
	digits = min(digits, SignificantDigits(pi))
	decimals := 0
	if digits > 1 {
		decimals = int(digits - 1)
	}
	return pi.Text('f', decimals)
}

// SignificantDigits returns the number of decimal digits the mantissa of x
// can represent.
func SignificantDigits(x *big.Float) uint64 {
	return uint64(float64(x.Prec()) * math.Log10(2))
}

// FormatPiDigits lays out a decimal expansion such as "3.14159..." in
// groups of ten decimals, fifty per line:
//
//	Pi = 3. 1415926535 8979323846 2643383279 5028841971 6939937510
//	     5820974944 5923078164 ...
//
// At most maxDisplay decimals are printed (negative means all); the number of
// omitted decimals is reported on a final line.
func FormatPiDigits(expansion string, maxDisplay int) string {
	intPart, frac, found := strings.Cut(expansion, ".")
	var b strings.Builder
	b.WriteString("Pi = ")
	b.WriteString(intPart)
	if !found {
		return b.String()
	}
	b.WriteByte('.')

	shown := frac
	if maxDisplay >= 0 && len(frac) > maxDisplay {
		shown = frac[:maxDisplay]
	}
	for i := 0; i < len(shown); i += DigitGroupSize {
		if i > 0 && i%DigitLineLength == 0 {
			b.WriteString("\n    ")
		}
		b.WriteByte(' ')
		b.WriteString(shown[i:min(i+DigitGroupSize, len(shown))])
	}
	if omitted := len(frac) - len(shown); omitted > 0 {
		fmt.Fprintf(&b, "\n... (additional %d digits being calculated)", omitted)
	}
	return b.String()
}
