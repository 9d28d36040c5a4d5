package msgserver

import (
	"context"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (ms msgServer) ServeAxon(ctx context.Context, msg *types.MsgServeAxon) (*types.MsgServeAxonResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	axon := types.AxonInfo{
		Version:  msg.Version,
		Ip:       msg.Ip,
		Port:     msg.Port,
		IpType:   msg.IpType,
		Modality: msg.Modality,
	}
	err := atomically(ctx, func(ctx context.Context) error {
		return ms.k.ServeAxon(ctx, msg.Sender, axon)
	})
	if err != nil {
		return nil, err
	}
	return &types.MsgServeAxonResponse{}, nil
}
