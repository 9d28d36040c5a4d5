package math

// all exponential moving average functions take the form
// x_average=α*x_current + (1-α)*x_previous
//
// the bonds recurrence B = βB + (1-β)ΔB is this form with α = 1-β
func CalcEma(
	alpha,
	current,
	previous U64F64,
) U64F64 {
	if current.Equal(previous) {
		return current
	}
	alphaCurrent := alpha.Mul(current)
	oneMinusAlphaTimesPrev := OneFixed().Sub(alpha).Mul(previous)
	return alphaCurrent.Add(oneMinusAlphaTimesPrev)
}

// SumFixed adds every element with saturation.
func SumFixed(values []U64F64) U64F64 {
	sum := ZeroFixed()
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum
}

// NormalizeFixed scales values so they sum to 1. An all-zero vector stays zero.
func NormalizeFixed(values []U64F64) []U64F64 {
	ret := make([]U64F64, len(values))
	sum := SumFixed(values)
	if sum.IsZero() {
		for i := range ret {
			ret[i] = ZeroFixed()
		}
		return ret
	}
	for i, v := range values {
		ret[i] = v.Quo(sum)
	}
	return ret
}

// InDelta reports whether |expected - actual| <= delta.
func InDelta(expected, actual, delta U64F64) bool {
	if expected.GT(actual) {
		return expected.Sub(actual).LTE(delta)
	}
	return actual.Sub(expected).LTE(delta)
}

// SaturatingAdd returns a+b clamped at MaxUint64.
func SaturatingAdd(a, b uint64) uint64 {
	if s := a + b; s >= a {
		return s
	}
	return ^uint64(0)
}

// SaturatingSub returns a-b floored at zero.
func SaturatingSub(a, b uint64) uint64 {
	if a < b {
		return 0
	}
	return a - b
}

// SaturatingMul returns a*b clamped at MaxUint64.
func SaturatingMul(a, b uint64) uint64 {
	if a == 0 || b == 0 {
		return 0
	}
	p := a * b
	if p/b != a {
		return ^uint64(0)
	}
	return p
}
