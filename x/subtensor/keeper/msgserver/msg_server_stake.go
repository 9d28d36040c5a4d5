package msgserver

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// AddStake is sent by the coldkey that owns Hotkey.
func (ms msgServer) AddStake(ctx context.Context, msg *types.MsgAddStake) (*types.MsgAddStakeResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	err := atomically(ctx, func(ctx context.Context) error {
		return ms.k.AddStake(ctx, msg.Sender, msg.Hotkey, msg.Amount)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgAddStakeResponse{}, nil
}

// RemoveStake is sent by the coldkey that owns Hotkey. The stake is paid out immediately.
func (ms msgServer) RemoveStake(ctx context.Context, msg *types.MsgRemoveStake) (*types.MsgRemoveStakeResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	err := atomically(ctx, func(ctx context.Context) error {
		return ms.k.RemoveStake(ctx, msg.Sender, msg.Hotkey, msg.Amount)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgRemoveStakeResponse{}, nil
}
