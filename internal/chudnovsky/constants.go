package chudnovsky

import "math/big"

// Series coefficients.
const (
	// L0 is the linear term at k = 0.
	L0 = 13591409
	// LStep is added to L for every term.
	LStep = 545140134
	// K0 is the auxiliary K at k = 0; it grows by KStep per term.
	K0    = 6
	KStep = 12
	// XRatio is -640320³, the factor applied to X for every term.
	XRatio = -262537412640768000
)

// DigitsPerTerm is the approximate number of correct decimal digits each
// term contributes (log10(640320³/1728)).
const DigitsPerTerm = 14.181647462725477

var xRatio = big.NewInt(XRatio)
