package mechanism

import (
	"sort"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// ConsensusShift is the sigmoid midpoint 1/kappa. Kappa zero centres the curve on 0.
func ConsensusShift(kappa uint64) subMath.U64F64 {
	if kappa == 0 {
		return subMath.ZeroFixed()
	}
	return subMath.NewFixedFromFraction(1, kappa)
}

// Consensus maps trust through sigmoid(rho·(trust - 1/kappa)).
func Consensus(trust []subMath.U64F64, rho, kappa uint64) []subMath.U64F64 {
	steepness := subMath.NewFixedFromUint64(rho)
	shift := ConsensusShift(kappa)
	out := make([]subMath.U64F64, len(trust))
	for i, t := range trust {
		out[i] = subMath.Sigmoid(steepness, t, shift)
	}
	return out
}

// ExcludeLowTrust marks the neurons whose trust is strictly below the quantile
// threshold, the trust value at position floor(quantile·n/100) of the sorted trust
// vector (capped at the largest value). Neurons tied at the threshold are kept, so a
// network of equal trust excludes nobody.
func ExcludeLowTrust(trust []subMath.U64F64, quantile uint32) []bool {
	n := len(trust)
	excluded := make([]bool, n)
	count := uint64(quantile) * uint64(n) / types.MaxPercentage
	if count == 0 {
		return excluded
	}
	if count > uint64(n-1) {
		count = uint64(n - 1)
	}
	sorted := make([]subMath.U64F64, n)
	copy(sorted, trust)
	sort.Slice(sorted, func(a, b int) bool { return sorted[a].LT(sorted[b]) })
	threshold := sorted[count]
	for i, t := range trust {
		excluded[i] = t.LT(threshold)
	}
	return excluded
}

// Incentive is rank scaled by consensus, with excluded neurons zeroed, normalized to 1.
func Incentive(rank, consensus []subMath.U64F64, excluded []bool) []subMath.U64F64 {
	raw := make([]subMath.U64F64, len(rank))
	for i := range rank {
		if excluded[i] {
			continue
		}
		raw[i] = rank[i].Mul(consensus[i])
	}
	return subMath.NormalizeFixed(raw)
}
