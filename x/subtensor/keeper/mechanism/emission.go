package mechanism

import (
	subMath "github.com/opentensor/subtensor-deprecated/math"
)

// SelfOwnershipFraction is 1/selfOwnership, the share of emission paid as dividends.
// Zero pays everything as incentive.
func SelfOwnershipFraction(selfOwnership uint64) subMath.U64F64 {
	if selfOwnership == 0 {
		return subMath.ZeroFixed()
	}
	return subMath.NewFixedFromFraction(1, selfOwnership)
}

// DistributeEmission splits total as floor(total·((1-σ)·incentive[i] + σ·dividends[i])).
// The rounding remainder is not minted.
func DistributeEmission(total uint64, incentive, dividends []subMath.U64F64, selfOwnership uint64) []uint64 {
	sigma := SelfOwnershipFraction(selfOwnership)
	oneMinusSigma := subMath.OneFixed().Sub(sigma)
	out := make([]uint64, len(incentive))
	for i := range incentive {
		share := oneMinusSigma.Mul(incentive[i]).Add(sigma.Mul(dividends[i]))
		out[i] = share.MulUint64Floor(total)
	}
	return out
}

// SumEmission adds the emission vector, saturating.
func SumEmission(emission []uint64) uint64 {
	var total uint64
	for _, e := range emission {
		total = subMath.SaturatingAdd(total, e)
	}
	return total
}
