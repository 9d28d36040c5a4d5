package keeper

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// GetParams returns the stored params, or the defaults before any were set.
func (k *Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return getOrDefault(ctx, k.params, types.DefaultParams())
}

func (k *Keeper) SetParams(ctx context.Context, params types.Params) error {
	if err := params.Validate(); err != nil {
		return err
	}
	return k.params.Set(ctx, params)
}
