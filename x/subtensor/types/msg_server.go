package types

import "context"

// MsgServer is the set of state transitions callers can request.
type MsgServer interface {
	SetWeights(context.Context, *MsgSetWeights) (*MsgSetWeightsResponse, error)
	AddStake(context.Context, *MsgAddStake) (*MsgAddStakeResponse, error)
	RemoveStake(context.Context, *MsgRemoveStake) (*MsgRemoveStakeResponse, error)
	ServeAxon(context.Context, *MsgServeAxon) (*MsgServeAxonResponse, error)
	Register(context.Context, *MsgRegister) (*MsgRegisterResponse, error)
	UpdateParams(context.Context, *MsgUpdateParams) (*MsgUpdateParamsResponse, error)
	SetDifficulty(context.Context, *MsgSetDifficulty) (*MsgSetDifficultyResponse, error)
	ResetBonds(context.Context, *MsgResetBonds) (*MsgResetBondsResponse, error)
}
