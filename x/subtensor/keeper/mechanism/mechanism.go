// Package mechanism implements the per-step incentive pipeline as pure functions over a
// snapshot of the registry. Nothing here touches the store, so a step is a deterministic
// function of its Input.
package mechanism

import (
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// Entry is one non-zero cell of a sparse fixed-point row.
type Entry struct {
	Uid   uint32
	Value subMath.U64F64
}

// Row is a sparse row sorted by uid.
type Row []Entry

// Input is a consistent snapshot of the registry. Every slice is indexed by uid and
// has one element per registered neuron.
type Input struct {
	Block    uint64
	Emission uint64
	Params   types.Params

	Stake               []uint64
	LastUpdate          []uint64
	BlockAtRegistration []uint64
	Weights             []types.WeightRow
	Bonds               []types.BondRow
}

// Output is everything a step writes back.
type Output struct {
	Active        []bool
	StakeWeights  []subMath.U64F64
	Rank          []subMath.U64F64
	Trust         []subMath.U64F64
	Consensus     []subMath.U64F64
	Incentive     []subMath.U64F64
	Dividends     []subMath.U64F64
	Emission      []uint64
	Bonds         []types.BondRow
	Priority      []uint64
	PruningScores []subMath.U64F64

	// PruneUid is the neuron to reclaim next, valid only when HasPruneCandidate.
	PruneUid          uint32
	HasPruneCandidate bool
}

// Run executes normalize, rank and trust, consensus, bonds and dividends, emission and
// pruning in that order.
func Run(in Input) Output {
	n := len(in.Stake)
	p := in.Params

	active := ActiveMask(in.Block, in.LastUpdate, p.ActivityCutoff)
	weights := NormalizeWeights(in.Weights, active)
	stakeWeights := StakeWeights(in.Stake)

	rank, trust := RankAndTrust(weights, stakeWeights)
	consensus := Consensus(trust, p.Rho, p.Kappa)
	excluded := ExcludeLowTrust(trust, p.ValidatorExcludeQuantile)
	incentive := Incentive(rank, consensus, excluded)

	bonds := UpdateBonds(in.Bonds, weights, incentive, p.BondsMovingAverage)
	dividends := Dividends(bonds, incentive)

	emission := DistributeEmission(in.Emission, incentive, dividends, p.SelfOwnership)

	scores := PruningScores(in.Stake, stakeWeights, incentive, p)
	pruneUid, ok := SelectPruneCandidate(scores, in.BlockAtRegistration, in.Block, p.ImmunityPeriod)

	out := Output{
		Active:            active,
		StakeWeights:      stakeWeights,
		Rank:              rank,
		Trust:             trust,
		Consensus:         consensus,
		Incentive:         incentive,
		Dividends:         dividends,
		Emission:          emission,
		Bonds:             make([]types.BondRow, n),
		Priority:          Priority(in.Block, in.Stake, in.LastUpdate),
		PruningScores:     scores,
		PruneUid:          pruneUid,
		HasPruneCandidate: ok,
	}
	for i, row := range bonds {
		out.Bonds[i] = ToBondRow(row)
	}
	return out
}
