package keeper

import (
	"context"

	"github.com/holiman/uint256"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/metrics"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

const difficultyParamName = "difficulty"

func (k *Keeper) GetDifficulty(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.difficulty, uint64(types.DefaultDifficulty))
}

// SetDifficulty stores difficulty clamped to the configured bounds and returns the
// value actually stored.
func (k *Keeper) SetDifficulty(ctx context.Context, difficulty uint64) (uint64, error) {
	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	clamped := params.ClampDifficulty(difficulty)
	if err := k.difficulty.Set(ctx, clamped); err != nil {
		return 0, err
	}
	metrics.SetDifficulty(clamped)
	types.EmitParamSet(sdk.UnwrapSDKContext(ctx), difficultyParamName, clamped)
	return clamped, nil
}

func (k *Keeper) GetLastDifficultyAdjustmentBlock(ctx context.Context) (BlockHeight, error) {
	return getOrDefault(ctx, k.lastDifficultyAdjustmentBlock, 0)
}

// RetargetDifficulty computes difficulty·registrations/target clamped to
// [minimum, maximum]. A zero target counts as one. The product is taken in 256 bits
// so it cannot wrap. More registrations than the target always raise the difficulty
// by at least one before clamping.
func RetargetDifficulty(difficulty, registrations, target uint64, params types.Params) uint64 {
	if target == 0 {
		target = 1
	}
	z := new(uint256.Int).Mul(uint256.NewInt(difficulty), uint256.NewInt(registrations))
	z.Div(z, uint256.NewInt(target))
	if !z.IsUint64() {
		return params.MaximumDifficulty
	}
	next := z.Uint64()
	// flooring can swallow the whole step at small difficulties
	if registrations > target && next <= difficulty {
		next = subMath.SaturatingAdd(difficulty, 1)
	}
	return params.ClampDifficulty(next)
}

// MaybeAdjustDifficulty retargets once AdjustmentInterval blocks have passed since
// the last adjustment and starts a new registration interval.
func (k *Keeper) MaybeAdjustDifficulty(ctx context.Context) error {
	block := currentBlock(ctx)
	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	last, err := k.GetLastDifficultyAdjustmentBlock(ctx)
	if err != nil {
		return err
	}
	if block < last || block-last < params.AdjustmentInterval {
		return nil
	}

	difficulty, err := k.GetDifficulty(ctx)
	if err != nil {
		return err
	}
	registrations, err := k.GetRegistrationsThisInterval(ctx)
	if err != nil {
		return err
	}
	next := RetargetDifficulty(difficulty, registrations, params.TargetRegistrationsPerInterval, params)
	if err := k.difficulty.Set(ctx, next); err != nil {
		return err
	}
	if err := k.registrationsThisInterval.Set(ctx, 0); err != nil {
		return err
	}
	if err := k.lastDifficultyAdjustmentBlock.Set(ctx, block); err != nil {
		return err
	}

	metrics.SetDifficulty(next)
	k.Logger(ctx).Debug("difficulty adjusted",
		"block", block,
		"registrations", registrations,
		"from", difficulty,
		"to", next,
	)
	return nil
}
