package queryserver

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

func (qs queryServer) GetNeuron(ctx context.Context, req *types.GetNeuronRequest) (*types.GetNeuronResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be nil")
	}
	neuron, err := qs.k.GetNeuron(ctx, req.Uid)
	if err != nil {
		if errorsmod.IsOf(err, types.ErrNeuronNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return qs.neuronResponse(ctx, neuron)
}

func (qs queryServer) GetNeuronByHotkey(ctx context.Context, req *types.GetNeuronByHotkeyRequest) (*types.GetNeuronResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be nil")
	}
	if _, err := sdk.AccAddressFromBech32(req.Hotkey); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	neuron, err := qs.k.GetNeuronForHotkey(ctx, req.Hotkey)
	if err != nil {
		if errorsmod.IsOf(err, types.ErrNotRegistered, types.ErrNeuronNotFound) {
			return nil, status.Error(codes.NotFound, err.Error())
		}
		return nil, status.Error(codes.Internal, err.Error())
	}
	return qs.neuronResponse(ctx, neuron)
}

func (qs queryServer) neuronResponse(ctx context.Context, neuron types.Neuron) (*types.GetNeuronResponse, error) {
	weights, err := qs.k.GetWeightRow(ctx, neuron.Uid)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	bonds, err := qs.k.GetBondRow(ctx, neuron.Uid)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	registeredAt, err := qs.k.GetBlockAtRegistration(ctx, neuron.Uid)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	marked, err := qs.k.IsMarkedForPruning(ctx, neuron.Uid)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.GetNeuronResponse{
		Neuron:              neuron,
		Weights:             weights,
		Bonds:               bonds,
		BlockAtRegistration: registeredAt,
		MarkedForPruning:    marked,
	}, nil
}

// GetMetagraph returns the per-uid vectors written by the last mechanism step.
func (qs queryServer) GetMetagraph(ctx context.Context, req *types.GetMetagraphRequest) (*types.GetMetagraphResponse, error) {
	neurons, err := qs.k.GetAllNeurons(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	totalStake, err := qs.k.GetTotalStake(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	resp := &types.GetMetagraphResponse{
		Block:      uint64(sdk.UnwrapSDKContext(ctx).BlockHeight()),
		N:          uint32(len(neurons)),
		Active:     make([]uint32, len(neurons)),
		Stake:      make([]uint64, len(neurons)),
		Rank:       make([]uint64, len(neurons)),
		Trust:      make([]uint64, len(neurons)),
		Consensus:  make([]uint64, len(neurons)),
		Incentive:  make([]uint64, len(neurons)),
		Dividends:  make([]uint64, len(neurons)),
		Emission:   make([]uint64, len(neurons)),
		LastUpdate: make([]uint64, len(neurons)),
		TotalStake: totalStake,
	}
	for i, neuron := range neurons {
		resp.Active[i] = neuron.Active
		resp.Stake[i] = neuron.Stake
		resp.Rank[i] = neuron.Rank
		resp.Trust[i] = neuron.Trust
		resp.Consensus[i] = neuron.Consensus
		resp.Incentive[i] = neuron.Incentive
		resp.Dividends[i] = neuron.Dividends
		resp.Emission[i] = neuron.Emission
		resp.LastUpdate[i] = neuron.LastUpdate
	}
	return resp, nil
}

// GetPrioritySetWeights returns the priority and fee a weight-setting call of the
// given encoded length would get.
func (qs queryServer) GetPrioritySetWeights(ctx context.Context, req *types.GetPrioritySetWeightsRequest) (*types.GetPrioritySetWeightsResponse, error) {
	if req == nil {
		return nil, status.Errorf(codes.InvalidArgument, "request cannot be nil")
	}
	priority, err := qs.k.GetPrioritySetWeights(ctx, req.Hotkey, req.Length)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.GetPrioritySetWeightsResponse{
		Priority: priority,
		Fee:      keeper.CalculateTransactionFee(req.Length),
	}, nil
}
