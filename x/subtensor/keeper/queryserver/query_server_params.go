package queryserver

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (qs queryServer) GetParams(ctx context.Context, req *types.GetParamsRequest) (*types.GetParamsResponse, error) {
	params, err := qs.k.GetParams(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.GetParamsResponse{Params: params}, nil
}

// GetRegistrationState returns the admission counters and the current difficulty.
func (qs queryServer) GetRegistrationState(ctx context.Context, req *types.GetRegistrationStateRequest) (*types.GetRegistrationStateResponse, error) {
	difficulty, err := qs.k.GetDifficulty(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	lastAdjustment, err := qs.k.GetLastDifficultyAdjustmentBlock(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	thisInterval, err := qs.k.GetRegistrationsThisInterval(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	thisBlock, err := qs.k.GetRegistrationsThisBlock(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.GetRegistrationStateResponse{
		Difficulty:                    difficulty,
		LastDifficultyAdjustmentBlock: lastAdjustment,
		RegistrationsThisInterval:     thisInterval,
		RegistrationsThisBlock:        thisBlock,
	}, nil
}

func (qs queryServer) GetStepState(ctx context.Context, req *types.GetStepStateRequest) (*types.GetStepStateResponse, error) {
	blocksSinceLastStep, err := qs.k.GetBlocksSinceLastStep(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	lastStep, err := qs.k.GetLastMechanismStepBlock(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	totalStake, err := qs.k.GetTotalStake(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	totalIssuance, err := qs.k.GetTotalIssuance(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &types.GetStepStateResponse{
		BlocksSinceLastStep:    blocksSinceLastStep,
		LastMechanismStepBlock: lastStep,
		TotalStake:             totalStake,
		TotalIssuance:          totalIssuance,
	}, nil
}
