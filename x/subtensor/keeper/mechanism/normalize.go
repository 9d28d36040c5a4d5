package mechanism

import (
	"math"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// ActiveMask marks the neurons that set weights within the last cutoff blocks.
func ActiveMask(block uint64, lastUpdate []uint64, cutoff uint64) []bool {
	active := make([]bool, len(lastUpdate))
	for i, lu := range lastUpdate {
		active[i] = subMath.SaturatingSub(block, lu) <= cutoff
	}
	return active
}

// NormalizeWeights turns every active neuron's raw row into a distribution over the
// active targets it rated. Inactive neurons and rows with nothing left after filtering
// come back empty.
func NormalizeWeights(weights []types.WeightRow, active []bool) []Row {
	n := len(active)
	out := make([]Row, n)
	for i := 0; i < n && i < len(weights); i++ {
		if !active[i] {
			continue
		}
		var sum uint64
		kept := make(types.WeightRow, 0, len(weights[i]))
		for _, e := range weights[i] {
			if e.Weight == 0 || int(e.Uid) >= n || !active[e.Uid] {
				continue
			}
			kept = append(kept, e)
			sum += uint64(e.Weight)
		}
		if sum == 0 {
			continue
		}
		row := make(Row, len(kept))
		for k, e := range kept {
			row[k] = Entry{Uid: e.Uid, Value: subMath.NewFixedFromFraction(uint64(e.Weight), sum)}
		}
		out[i] = row
	}
	return out
}

// NormalizeToMaxWeight rescales weights so they sum to MaxUint32, rounding each
// element down. An all-zero input is returned unchanged.
func NormalizeToMaxWeight(weights []uint32) []uint32 {
	var sum uint64
	for _, w := range weights {
		sum += uint64(w)
	}
	out := make([]uint32, len(weights))
	if sum == 0 {
		copy(out, weights)
		return out
	}
	for i, w := range weights {
		out[i] = uint32(uint64(w) * math.MaxUint32 / sum)
	}
	return out
}
