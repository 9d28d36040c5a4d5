package mechanism

import (
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// UpdateBonds applies B[i][j] ← β·B[i][j] + (1-β)·w[i→j]·incentive[j] with
// β = movingAverage / BondsMovingAverageScale. Both inputs are sorted so each row is
// a single merge over the union of bonded and weighted targets. Bonds that decay to
// zero are dropped.
func UpdateBonds(bonds []types.BondRow, weights []Row, incentive []subMath.U64F64, movingAverage uint64) []Row {
	n := len(incentive)
	beta := subMath.MinFixed(
		subMath.NewFixedFromFraction(movingAverage, types.BondsMovingAverageScale),
		subMath.OneFixed(),
	)
	alpha := subMath.OneFixed().Sub(beta)

	out := make([]Row, n)
	for i := 0; i < n; i++ {
		var old types.BondRow
		if i < len(bonds) {
			old = bonds[i]
		}
		var w Row
		if i < len(weights) {
			w = weights[i]
		}

		var row Row
		a, b := 0, 0
		for a < len(old) || b < len(w) {
			var uid uint32
			prev, weight := subMath.ZeroFixed(), subMath.ZeroFixed()
			switch {
			case b == len(w) || (a < len(old) && old[a].Uid < w[b].Uid):
				uid = old[a].Uid
				prev = subMath.NewFixedFromUnitFraction(old[a].Bond)
				a++
			case a == len(old) || w[b].Uid < old[a].Uid:
				uid = w[b].Uid
				weight = w[b].Value
				b++
			default:
				uid = old[a].Uid
				prev = subMath.NewFixedFromUnitFraction(old[a].Bond)
				weight = w[b].Value
				a++
				b++
			}
			if int(uid) >= n {
				continue
			}
			contribution := weight.Mul(incentive[uid])
			v := subMath.CalcEma(alpha, contribution, prev)
			if !v.IsZero() {
				row = append(row, Entry{Uid: uid, Value: v})
			}
		}
		out[i] = row
	}
	return out
}

// Dividends pays each neuron its bond share of every incentive it is bonded to:
// Σ_j B[i][j] / Σ_k B[k][j] · incentive[j], normalized to 1.
func Dividends(bonds []Row, incentive []subMath.U64F64) []subMath.U64F64 {
	n := len(incentive)
	colSum := make([]subMath.U64F64, n)
	for _, row := range bonds {
		for _, e := range row {
			if int(e.Uid) >= n {
				continue
			}
			colSum[e.Uid] = colSum[e.Uid].Add(e.Value)
		}
	}
	raw := make([]subMath.U64F64, n)
	for i, row := range bonds {
		for _, e := range row {
			if int(e.Uid) >= n || colSum[e.Uid].IsZero() || incentive[e.Uid].IsZero() {
				continue
			}
			raw[i] = raw[i].Add(e.Value.Quo(colSum[e.Uid]).Mul(incentive[e.Uid]))
		}
	}
	return subMath.NormalizeFixed(raw)
}

// ToBondRow quantizes a fixed-point row to the stored u64 encoding, dropping cells
// that round to zero.
func ToBondRow(row Row) types.BondRow {
	out := make(types.BondRow, 0, len(row))
	for _, e := range row {
		if v := e.Value.ToUnitFraction(); v > 0 {
			out = append(out, types.BondEntry{Uid: e.Uid, Bond: v})
		}
	}
	return out
}
