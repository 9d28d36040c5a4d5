package msgserver

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type paramChange struct {
	name  string
	value uint64
}

func (ms msgServer) UpdateParams(ctx context.Context, msg *types.MsgUpdateParams) (*types.MsgUpdateParamsResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := ms.checkAuthority(msg.Sender); err != nil {
		return nil, err
	}
	existingParams, err := ms.k.GetParams(ctx)
	if err != nil {
		return nil, err
	}
	// every option is a repeated field, so we interpret an empty array as "make no change"
	newParams := msg.Params
	var changes []paramChange
	set := func(name string, dst *uint64, src []uint64) {
		if len(src) == 1 {
			*dst = src[0]
			changes = append(changes, paramChange{name, src[0]})
		}
	}
	set32 := func(name string, dst *uint32, src []uint32) {
		if len(src) == 1 {
			*dst = src[0]
			changes = append(changes, paramChange{name, uint64(src[0])})
		}
	}
	set("rho", &existingParams.Rho, newParams.Rho)
	set("kappa", &existingParams.Kappa, newParams.Kappa)
	set("blocks_per_step", &existingParams.BlocksPerStep, newParams.BlocksPerStep)
	set("block_emission", &existingParams.BlockEmission, newParams.BlockEmission)
	set("bonds_moving_average", &existingParams.BondsMovingAverage, newParams.BondsMovingAverage)
	set("self_ownership", &existingParams.SelfOwnership, newParams.SelfOwnership)
	set("activity_cutoff", &existingParams.ActivityCutoff, newParams.ActivityCutoff)
	set("max_allowed_uids", &existingParams.MaxAllowedUids, newParams.MaxAllowedUids)
	set("min_allowed_weights", &existingParams.MinAllowedWeights, newParams.MinAllowedWeights)
	set("max_allowed_max_min_ratio", &existingParams.MaxAllowedMaxMinRatio, newParams.MaxAllowedMaxMinRatio)
	set32("max_weight_limit", &existingParams.MaxWeightLimit, newParams.MaxWeightLimit)
	set("immunity_period", &existingParams.ImmunityPeriod, newParams.ImmunityPeriod)
	set("incentive_pruning_denominator", &existingParams.IncentivePruningDenominator, newParams.IncentivePruningDenominator)
	set("stake_pruning_denominator", &existingParams.StakePruningDenominator, newParams.StakePruningDenominator)
	set("stake_pruning_min", &existingParams.StakePruningMin, newParams.StakePruningMin)
	set("adjustment_interval", &existingParams.AdjustmentInterval, newParams.AdjustmentInterval)
	set("target_registrations_per_interval", &existingParams.TargetRegistrationsPerInterval, newParams.TargetRegistrationsPerInterval)
	set("max_registrations_per_block", &existingParams.MaxRegistrationsPerBlock, newParams.MaxRegistrationsPerBlock)
	set("minimum_difficulty", &existingParams.MinimumDifficulty, newParams.MinimumDifficulty)
	set("maximum_difficulty", &existingParams.MaximumDifficulty, newParams.MaximumDifficulty)
	set32("scaling_law_power", &existingParams.ScalingLawPower, newParams.ScalingLawPower)
	set32("synergy_scaling_law_power", &existingParams.SynergyScalingLawPower, newParams.SynergyScalingLawPower)
	set32("validator_exclude_quantile", &existingParams.ValidatorExcludeQuantile, newParams.ValidatorExcludeQuantile)
	set("validator_batch_size", &existingParams.ValidatorBatchSize, newParams.ValidatorBatchSize)
	set("validator_sequence_length", &existingParams.ValidatorSequenceLength, newParams.ValidatorSequenceLength)
	set("validator_epoch_len", &existingParams.ValidatorEpochLen, newParams.ValidatorEpochLen)
	set("validator_epochs_per_reset", &existingParams.ValidatorEpochsPerReset, newParams.ValidatorEpochsPerReset)
	set("validator_prune_len", &existingParams.ValidatorPruneLen, newParams.ValidatorPruneLen)
	set("validator_logits_divergence", &existingParams.ValidatorLogitsDivergence, newParams.ValidatorLogitsDivergence)

	err = atomically(ctx, func(ctx context.Context) error {
		// SetParams validates before writing
		if err := ms.k.SetParams(ctx, existingParams); err != nil {
			return err
		}
		sdkCtx := sdk.UnwrapSDKContext(ctx)
		for _, c := range changes {
			types.EmitParamSet(sdkCtx, c.name, c.value)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgUpdateParamsResponse{}, nil
}

// SetDifficulty overrides the registration difficulty. The stored value is clamped to
// the configured bounds.
func (ms msgServer) SetDifficulty(ctx context.Context, msg *types.MsgSetDifficulty) (*types.MsgSetDifficultyResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := ms.checkAuthority(msg.Sender); err != nil {
		return nil, err
	}
	err := atomically(ctx, func(ctx context.Context) error {
		_, err := ms.k.SetDifficulty(ctx, msg.Difficulty)
		return err
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSetDifficultyResponse{}, nil
}

func (ms msgServer) ResetBonds(ctx context.Context, msg *types.MsgResetBonds) (*types.MsgResetBondsResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	if err := ms.checkAuthority(msg.Sender); err != nil {
		return nil, err
	}
	err := atomically(ctx, ms.k.ResetBonds)
	if err != nil {
		return nil, err
	}
	return &types.MsgResetBondsResponse{}, nil
}
