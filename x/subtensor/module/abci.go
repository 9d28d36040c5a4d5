package module

import (
	"context"
	"time"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	"github.com/cosmos/cosmos-sdk/telemetry"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// BeginBlocker opens every block: the per-block registration counter resets, the
// mechanism step runs once BlocksPerStep blocks have accumulated, and difficulty is
// retargeted at interval boundaries.
func BeginBlocker(ctx context.Context, k keeper.Keeper) error {
	defer telemetry.ModuleMeasureSince(types.ModuleName, time.Now(), telemetry.MetricKeyBeginBlocker)

	sdkCtx := sdk.UnwrapSDKContext(ctx)
	if err := k.ResetRegistrationsThisBlock(ctx); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		sdkCtx.Logger().Error("Error getting module params", "error", err)
		return err
	}
	blocksSinceLastStep, err := k.GetBlocksSinceLastStep(ctx)
	if err != nil {
		return err
	}
	elapsed := subMath.SaturatingAdd(blocksSinceLastStep, 1)
	if elapsed >= params.BlocksPerStep {
		// emission that accumulated while no step ran is paid out in one go
		emission := subMath.SaturatingMul(elapsed, params.BlockEmission)
		if err := k.RunMechanismStep(ctx, emission); err != nil {
			sdkCtx.Logger().Error("Error running mechanism step", "block", sdkCtx.BlockHeight(), "error", err)
			return err
		}
		elapsed = 0
	}
	if err := k.SetBlocksSinceLastStep(ctx, elapsed); err != nil {
		return err
	}

	return k.MaybeAdjustDifficulty(ctx)
}
