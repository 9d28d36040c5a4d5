package msgserver

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// SetWeights is sent by a hotkey to replace its outgoing weights.
func (ms msgServer) SetWeights(ctx context.Context, msg *types.MsgSetWeights) (*types.MsgSetWeightsResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	err := atomically(ctx, func(ctx context.Context) error {
		return ms.k.SetWeights(ctx, msg.Sender, msg.Uids, msg.Weights)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgSetWeightsResponse{}, nil
}
