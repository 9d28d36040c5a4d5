package mechanism

import (
	subMath "github.com/opentensor/subtensor-deprecated/math"
)

// StakeWeights returns each neuron's share of the total stake. With no stake at all
// every neuron gets an equal share.
func StakeWeights(stake []uint64) []subMath.U64F64 {
	n := len(stake)
	out := make([]subMath.U64F64, n)
	var total uint64
	for _, s := range stake {
		total = subMath.SaturatingAdd(total, s)
	}
	if total == 0 {
		if n == 0 {
			return out
		}
		uniform := subMath.NewFixedFromFraction(1, uint64(n))
		for i := range out {
			out[i] = uniform
		}
		return out
	}
	for i, s := range stake {
		out[i] = subMath.NewFixedFromFraction(s, total)
	}
	return out
}

// RankAndTrust walks the non-zero weights once.
//
//	rank[i]  = Σ_j stake[j]·w[j→i]
//	trust[i] = Σ_j stake[j]·𝟙[w[j→i] > 0]
func RankAndTrust(weights []Row, stakeWeights []subMath.U64F64) (rank, trust []subMath.U64F64) {
	n := len(stakeWeights)
	rank = make([]subMath.U64F64, n)
	trust = make([]subMath.U64F64, n)
	for j, row := range weights {
		if j >= n {
			break
		}
		sw := stakeWeights[j]
		if sw.IsZero() {
			continue
		}
		for _, e := range row {
			if e.Value.IsZero() || int(e.Uid) >= n {
				continue
			}
			rank[e.Uid] = rank[e.Uid].Add(sw.Mul(e.Value))
			trust[e.Uid] = trust[e.Uid].Add(sw)
		}
	}
	return rank, trust
}
