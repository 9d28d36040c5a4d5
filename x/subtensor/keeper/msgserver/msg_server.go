package msgserver

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type msgServer struct {
	k keeper.Keeper
}

var _ types.MsgServer = msgServer{}

// NewMsgServerImpl returns an implementation of the module MsgServer interface.
func NewMsgServerImpl(keeper keeper.Keeper) types.MsgServer {
	return &msgServer{k: keeper}
}

// atomically runs fn on a branch of the store and writes it back, events included,
// only when fn succeeds.
func atomically(ctx context.Context, fn func(ctx context.Context) error) error {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	cacheCtx, write := sdkCtx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

func (ms msgServer) checkAuthority(sender string) error {
	if !ms.k.IsAuthority(sender) {
		return types.ErrUnauthorized
	}
	return nil
}
