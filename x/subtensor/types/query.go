package types

import "context"

// QueryServer serves read-only views of the module state.
type QueryServer interface {
	GetParams(context.Context, *GetParamsRequest) (*GetParamsResponse, error)
	GetNeuron(context.Context, *GetNeuronRequest) (*GetNeuronResponse, error)
	GetNeuronByHotkey(context.Context, *GetNeuronByHotkeyRequest) (*GetNeuronResponse, error)
	GetMetagraph(context.Context, *GetMetagraphRequest) (*GetMetagraphResponse, error)
	GetRegistrationState(context.Context, *GetRegistrationStateRequest) (*GetRegistrationStateResponse, error)
	GetStepState(context.Context, *GetStepStateRequest) (*GetStepStateResponse, error)
	GetPrioritySetWeights(context.Context, *GetPrioritySetWeightsRequest) (*GetPrioritySetWeightsResponse, error)
}

type GetParamsRequest struct{}

type GetParamsResponse struct {
	Params Params `json:"params"`
}

type GetNeuronRequest struct {
	Uid uint32 `json:"uid"`
}

type GetNeuronByHotkeyRequest struct {
	Hotkey string `json:"hotkey"`
}

// GetNeuronResponse carries the neuron record together with its sparse rows.
type GetNeuronResponse struct {
	Neuron              Neuron    `json:"neuron"`
	Weights             WeightRow `json:"weights"`
	Bonds               BondRow   `json:"bonds"`
	BlockAtRegistration uint64    `json:"block_at_registration"`
	MarkedForPruning    bool      `json:"marked_for_pruning"`
}

type GetMetagraphRequest struct{}

// GetMetagraphResponse holds one entry per uid in every vector. Fractions use the
// x / MaxUint64 encoding.
type GetMetagraphResponse struct {
	Block      uint64   `json:"block"`
	N          uint32   `json:"n"`
	Active     []uint32 `json:"active"`
	Stake      []uint64 `json:"stake"`
	Rank       []uint64 `json:"rank"`
	Trust      []uint64 `json:"trust"`
	Consensus  []uint64 `json:"consensus"`
	Incentive  []uint64 `json:"incentive"`
	Dividends  []uint64 `json:"dividends"`
	Emission   []uint64 `json:"emission"`
	LastUpdate []uint64 `json:"last_update"`
	TotalStake uint64   `json:"total_stake"`
}

type GetRegistrationStateRequest struct{}

type GetRegistrationStateResponse struct {
	Difficulty                    uint64 `json:"difficulty"`
	LastDifficultyAdjustmentBlock uint64 `json:"last_difficulty_adjustment_block"`
	RegistrationsThisInterval     uint64 `json:"registrations_this_interval"`
	RegistrationsThisBlock        uint64 `json:"registrations_this_block"`
}

type GetStepStateRequest struct{}

type GetStepStateResponse struct {
	BlocksSinceLastStep    uint64 `json:"blocks_since_last_step"`
	LastMechanismStepBlock uint64 `json:"last_mechanism_step_block"`
	TotalStake             uint64 `json:"total_stake"`
	TotalIssuance          uint64 `json:"total_issuance"`
}

type GetPrioritySetWeightsRequest struct {
	Hotkey string `json:"hotkey"`
	Length uint64 `json:"length"`
}

type GetPrioritySetWeightsResponse struct {
	Priority uint64 `json:"priority"`
	Fee      uint64 `json:"fee"`
}
