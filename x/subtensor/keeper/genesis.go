package keeper

import (
	"context"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// InitGenesis initializes the module state from a genesis state. Genesis stake is
// expected to be backed by the bank genesis already, nothing is minted here.
func (k *Keeper) InitGenesis(ctx context.Context, data *types.GenesisState) error {
	if err := data.Validate(); err != nil {
		return err
	}
	if err := k.SetParams(ctx, data.Params); err != nil {
		return err
	}
	if err := k.difficulty.Set(ctx, data.Params.ClampDifficulty(data.Difficulty)); err != nil {
		return err
	}
	if err := k.SetTotalIssuance(ctx, data.TotalIssuance); err != nil {
		return err
	}

	block := currentBlock(ctx)
	if err := k.lastDifficultyAdjustmentBlock.Set(ctx, block); err != nil {
		return err
	}
	var totalStake uint64
	for _, gn := range data.Neurons {
		uid, err := k.appendNeuron(ctx, gn.Hotkey, gn.Coldkey, block)
		if err != nil {
			return err
		}
		if gn.Stake == 0 {
			continue
		}
		neuron, err := k.GetNeuron(ctx, uid)
		if err != nil {
			return err
		}
		neuron.Stake = gn.Stake
		if err := k.SetNeuron(ctx, neuron); err != nil {
			return err
		}
		totalStake = subMath.SaturatingAdd(totalStake, gn.Stake)
	}
	return k.SetTotalStake(ctx, totalStake)
}

// ExportGenesis exports the module state to a genesis state.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	difficulty, err := k.GetDifficulty(ctx)
	if err != nil {
		return nil, err
	}
	issuance, err := k.GetTotalIssuance(ctx)
	if err != nil {
		return nil, err
	}
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return nil, err
	}
	genesisNeurons := make([]types.GenesisNeuron, len(neurons))
	for i, neuron := range neurons {
		genesisNeurons[i] = types.GenesisNeuron{
			Hotkey:  neuron.Hotkey,
			Coldkey: neuron.Coldkey,
			Stake:   neuron.Stake,
		}
	}
	return &types.GenesisState{
		Params:        params,
		Difficulty:    difficulty,
		TotalIssuance: issuance,
		Neurons:       genesisNeurons,
	}, nil
}
