package keeper

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ResetBonds zeroes every bond row without going through the moving average.
func (k *Keeper) ResetBonds(ctx context.Context) error {
	iter, err := k.bonds.Iterate(ctx, nil)
	if err != nil {
		return err
	}
	uids, err := iter.Keys()
	if err != nil {
		return err
	}
	for _, uid := range uids {
		if err := k.bonds.Remove(ctx, uid); err != nil {
			return err
		}
	}
	types.EmitResetBonds(sdk.UnwrapSDKContext(ctx))
	return nil
}
