package mechanism

import (
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// Priority orders weight-setting transactions: stake times blocks since last update.
func Priority(block uint64, stake, lastUpdate []uint64) []uint64 {
	out := make([]uint64, len(stake))
	for i, s := range stake {
		out[i] = subMath.SaturatingMul(s, subMath.SaturatingSub(block, lastUpdate[i]))
	}
	return out
}

func nonZero(v uint64) uint64 {
	if v == 0 {
		return 1
	}
	return v
}

// PruningScores combines stake share and incentive, lower meaning more prunable.
// Stake below StakePruningMin does not count.
func PruningScores(stake []uint64, stakeWeights, incentive []subMath.U64F64, p types.Params) []subMath.U64F64 {
	stakeDenominator := nonZero(p.StakePruningDenominator)
	incentiveDenominator := nonZero(p.IncentivePruningDenominator)
	out := make([]subMath.U64F64, len(stake))
	for i, s := range stake {
		score := incentive[i].QuoUint64(incentiveDenominator)
		if s >= p.StakePruningMin {
			score = score.Add(stakeWeights[i].QuoUint64(stakeDenominator))
		}
		out[i] = score
	}
	return out
}

// IsImmune reports whether a neuron registered at registeredAt is still inside the
// immunity period at block.
func IsImmune(block, registeredAt, immunityPeriod uint64) bool {
	return subMath.SaturatingSub(block, registeredAt) < immunityPeriod
}

// SelectPruneCandidate returns the non-immune neuron with the lowest score, the lowest
// uid among equals. ok is false when every neuron is immune.
func SelectPruneCandidate(scores []subMath.U64F64, blockAtRegistration []uint64, block, immunityPeriod uint64) (uid uint32, ok bool) {
	for i, score := range scores {
		if IsImmune(block, blockAtRegistration[i], immunityPeriod) {
			continue
		}
		if !ok || score.LT(scores[uid]) {
			uid = uint32(i)
			ok = true
		}
	}
	return uid, ok
}
