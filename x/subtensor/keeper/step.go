package keeper

import (
	"context"
	"time"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper/mechanism"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/metrics"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SnapshotMechanismInput reads everything a step needs in one pass so the step sees a
// single consistent view of the registry.
func (k *Keeper) SnapshotMechanismInput(ctx context.Context, emission uint64) (mechanism.Input, []types.Neuron, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return mechanism.Input{}, nil, err
	}
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return mechanism.Input{}, nil, err
	}

	n := len(neurons)
	in := mechanism.Input{
		Block:               currentBlock(ctx),
		Emission:            emission,
		Params:              params,
		Stake:               make([]uint64, n),
		LastUpdate:          make([]uint64, n),
		BlockAtRegistration: make([]uint64, n),
		Weights:             make([]types.WeightRow, n),
		Bonds:               make([]types.BondRow, n),
	}
	for i, neuron := range neurons {
		uid := Uid(i)
		in.Stake[i] = neuron.Stake
		in.LastUpdate[i] = neuron.LastUpdate
		if in.BlockAtRegistration[i], err = k.GetBlockAtRegistration(ctx, uid); err != nil {
			return mechanism.Input{}, nil, err
		}
		if in.Weights[i], err = k.GetWeightRow(ctx, uid); err != nil {
			return mechanism.Input{}, nil, err
		}
		if in.Bonds[i], err = k.GetBondRow(ctx, uid); err != nil {
			return mechanism.Input{}, nil, err
		}
	}
	return in, neurons, nil
}

// RunMechanismStep runs the incentive pipeline over the registry, pays out emission
// and records the next prune candidate.
func (k *Keeper) RunMechanismStep(ctx context.Context, emission uint64) error {
	start := time.Now()
	in, neurons, err := k.SnapshotMechanismInput(ctx, emission)
	if err != nil {
		return err
	}
	out := mechanism.Run(in)

	for i := range neurons {
		neuron := &neurons[i]
		neuron.Active = boolToUint32(out.Active[i])
		neuron.Priority = out.Priority[i]
		neuron.Rank = out.Rank[i].ToUnitFraction()
		neuron.Trust = out.Trust[i].ToUnitFraction()
		neuron.Consensus = out.Consensus[i].ToUnitFraction()
		neuron.Incentive = out.Incentive[i].ToUnitFraction()
		neuron.Dividends = out.Dividends[i].ToUnitFraction()
		neuron.Emission = out.Emission[i]
		neuron.Stake = subMath.SaturatingAdd(neuron.Stake, out.Emission[i])
		if err := k.SetNeuron(ctx, *neuron); err != nil {
			return err
		}
		if err := k.SetBondRow(ctx, neuron.Uid, out.Bonds[i]); err != nil {
			return err
		}
		if err := k.pruningScores.Set(ctx, neuron.Uid, out.PruningScores[i]); err != nil {
			return err
		}
	}
	if err := k.setPruneCandidate(ctx, out.PruneUid, out.HasPruneCandidate); err != nil {
		return err
	}

	total := mechanism.SumEmission(out.Emission)
	if err := k.addToTotalStake(ctx, total); err != nil {
		return err
	}
	issuance, err := k.GetTotalIssuance(ctx)
	if err != nil {
		return err
	}
	if err := k.SetTotalIssuance(ctx, subMath.SaturatingAdd(issuance, total)); err != nil {
		return err
	}
	if err := k.lastMechanismStepBlock.Set(ctx, in.Block); err != nil {
		return err
	}
	k.mintEmission(ctx, total)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	types.EmitMechanismStep(sdkCtx, in.Block, total, uint32(len(neurons)))
	metrics.IncrStepEmission(total)
	metrics.MeasureStepDuration(start, uint32(len(neurons)))
	k.Logger(ctx).Debug("mechanism step",
		"block", in.Block,
		"neurons", len(neurons),
		"emission", total,
	)
	return nil
}

// mintEmission backs newly emitted stake with coins held by the module account.
// A failed mint is logged and never aborts the step.
func (k *Keeper) mintEmission(ctx context.Context, amount uint64) {
	if amount == 0 {
		return
	}
	if err := k.bankKeeper.MintCoins(ctx, types.SubtensorStakingAccountName, stakeCoins(amount)); err != nil {
		k.Logger(ctx).Error("failed to mint step emission", "amount", amount, "error", err)
	}
}

func boolToUint32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
