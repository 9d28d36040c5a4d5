package math

// invE is floor(e^-1 · 2^64).
var invE = NewFixedFromBits(0, 6786177901268885274)

// e^-45 is below 2^-64 so anything larger underflows to zero.
const expNegCutoff = 45

// ExpNeg returns e^-x. The integer part is applied by repeated multiplication with
// e^-1 and the fractional part by dividing through a Taylor expansion of e^f, so the
// result only depends on integer operations.
func ExpNeg(x U64F64) U64F64 {
	n := x.Floor()
	if n >= expNegCutoff {
		return ZeroFixed()
	}
	result := OneFixed()
	for i := uint64(0); i < n; i++ {
		result = result.Mul(invE)
	}
	return result.Quo(expFraction(NewFixedFromBits(0, x.FractionBits())))
}

// expFraction returns e^f for 0 <= f < 1, summing terms until they underflow.
func expFraction(f U64F64) U64F64 {
	sum := OneFixed()
	term := OneFixed()
	for k := uint64(1); !term.IsZero(); k++ {
		term = term.Mul(f).QuoUint64(k)
		sum = sum.Add(term)
	}
	return sum
}

// Sigmoid evaluates 1 / (1 + e^(-steepness·(x - shift))).
// Negative arguments use the identity σ(-y) = e^-y / (1 + e^-y) so that only ExpNeg is
// ever needed.
func Sigmoid(steepness, x, shift U64F64) U64F64 {
	one := OneFixed()
	if x.GTE(shift) {
		e := ExpNeg(steepness.Mul(x.Sub(shift)))
		return one.Quo(one.Add(e))
	}
	e := ExpNeg(steepness.Mul(shift.Sub(x)))
	return e.Quo(one.Add(e))
}
