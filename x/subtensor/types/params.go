package types

import (
	"math"

	"cosmossdk.io/errors"
)

// BondsMovingAverageScale is the denominator of Params.BondsMovingAverage.
const BondsMovingAverageScale = 1_000_000

// percentage-like params are bounded by this
const MaxPercentage = 100

// Params are the tunable constants of the incentive mechanism and of admission.
type Params struct {
	Rho                            uint64 `json:"rho" toml:"rho"`
	Kappa                          uint64 `json:"kappa" toml:"kappa"`
	BlocksPerStep                  uint64 `json:"blocks_per_step" toml:"blocks_per_step"`
	BlockEmission                  uint64 `json:"block_emission" toml:"block_emission"`
	BondsMovingAverage             uint64 `json:"bonds_moving_average" toml:"bonds_moving_average"`
	SelfOwnership                  uint64 `json:"self_ownership" toml:"self_ownership"`
	ActivityCutoff                 uint64 `json:"activity_cutoff" toml:"activity_cutoff"`
	MaxAllowedUids                 uint64 `json:"max_allowed_uids" toml:"max_allowed_uids"`
	MinAllowedWeights              uint64 `json:"min_allowed_weights" toml:"min_allowed_weights"`
	MaxAllowedMaxMinRatio          uint64 `json:"max_allowed_max_min_ratio" toml:"max_allowed_max_min_ratio"`
	MaxWeightLimit                 uint32 `json:"max_weight_limit" toml:"max_weight_limit"`
	ImmunityPeriod                 uint64 `json:"immunity_period" toml:"immunity_period"`
	IncentivePruningDenominator    uint64 `json:"incentive_pruning_denominator" toml:"incentive_pruning_denominator"`
	StakePruningDenominator        uint64 `json:"stake_pruning_denominator" toml:"stake_pruning_denominator"`
	StakePruningMin                uint64 `json:"stake_pruning_min" toml:"stake_pruning_min"`
	AdjustmentInterval             uint64 `json:"adjustment_interval" toml:"adjustment_interval"`
	TargetRegistrationsPerInterval uint64 `json:"target_registrations_per_interval" toml:"target_registrations_per_interval"`
	MaxRegistrationsPerBlock       uint64 `json:"max_registrations_per_block" toml:"max_registrations_per_block"`
	MinimumDifficulty              uint64 `json:"minimum_difficulty" toml:"minimum_difficulty"`
	MaximumDifficulty              uint64 `json:"maximum_difficulty" toml:"maximum_difficulty"`
	ScalingLawPower                uint32 `json:"scaling_law_power" toml:"scaling_law_power"`
	SynergyScalingLawPower         uint32 `json:"synergy_scaling_law_power" toml:"synergy_scaling_law_power"`
	ValidatorExcludeQuantile       uint32 `json:"validator_exclude_quantile" toml:"validator_exclude_quantile"`
	ValidatorBatchSize             uint64 `json:"validator_batch_size" toml:"validator_batch_size"`
	ValidatorSequenceLength        uint64 `json:"validator_sequence_length" toml:"validator_sequence_length"`
	ValidatorEpochLen              uint64 `json:"validator_epoch_len" toml:"validator_epoch_len"`
	ValidatorEpochsPerReset        uint64 `json:"validator_epochs_per_reset" toml:"validator_epochs_per_reset"`
	ValidatorPruneLen              uint64 `json:"validator_prune_len" toml:"validator_prune_len"`
	ValidatorLogitsDivergence      uint64 `json:"validator_logits_divergence" toml:"validator_logits_divergence"`
}

// DefaultParams returns default module parameters.
func DefaultParams() Params {
	return Params{
		Rho:                            10,             // steepness of the consensus sigmoid
		Kappa:                          2,              // the sigmoid is centred on a trust of 1/Kappa
		BlocksPerStep:                  100,            // blocks between mechanism steps
		BlockEmission:                  1_000_000_000,  // rao minted per block, paid out at the next step
		BondsMovingAverage:             900_000,        // bonds keep 90% of their previous value each step
		SelfOwnership:                  2,              // half of every emission is paid as dividends
		ActivityCutoff:                 5000,           // blocks without setting weights before a neuron is inactive
		MaxAllowedUids:                 2000,           // registry capacity
		MinAllowedWeights:              1,              // minimum non-zero weights per set_weights call
		MaxAllowedMaxMinRatio:          0,              // 0 disables the max/min weight ratio check
		MaxWeightLimit:                 math.MaxUint32, // no single normalized weight cap
		ImmunityPeriod:                 200,            // blocks after registration during which a neuron cannot be pruned
		IncentivePruningDenominator:    1,              // divisor of the incentive term of the pruning score
		StakePruningDenominator:        1,              // divisor of the stake term of the pruning score
		StakePruningMin:                0,              // stake below this does not count towards the pruning score
		AdjustmentInterval:             100,            // blocks between difficulty retargets
		TargetRegistrationsPerInterval: 2,              // registrations per interval the difficulty steers towards
		MaxRegistrationsPerBlock:       2,              // registrations accepted in a single block
		MinimumDifficulty:              1,              // retarget floor
		MaximumDifficulty:              math.MaxInt64,  // retarget ceiling, kept within the int64 range of TOML integers
		ScalingLawPower:                50,             // percentage, consumed by validators
		SynergyScalingLawPower:         50,             // percentage, consumed by validators
		ValidatorExcludeQuantile:       10,             // percentage of lowest-trust neurons excluded from incentive
		ValidatorBatchSize:             10,             // consumed by validators
		ValidatorSequenceLength:        10,             // consumed by validators
		ValidatorEpochLen:              1000,           // consumed by validators
		ValidatorEpochsPerReset:        60,             // consumed by validators
		ValidatorPruneLen:              1,              // consumed by validators
		ValidatorLogitsDivergence:      0,              // consumed by validators
	}
}

// DefaultDifficulty is the registration difficulty at genesis.
const DefaultDifficulty = 10_000

func validatePercentage(name string, v uint32) error {
	if v > MaxPercentage {
		return errors.Wrapf(ErrStorageValueOutOfRange, "%s must be at most %d, got %d", name, MaxPercentage, v)
	}
	return nil
}

// Validate checks the params are internally consistent.
func (p Params) Validate() error {
	if err := validatePercentage("scaling_law_power", p.ScalingLawPower); err != nil {
		return err
	}
	if err := validatePercentage("synergy_scaling_law_power", p.SynergyScalingLawPower); err != nil {
		return err
	}
	if err := validatePercentage("validator_exclude_quantile", p.ValidatorExcludeQuantile); err != nil {
		return err
	}
	if p.BondsMovingAverage > BondsMovingAverageScale {
		return errors.Wrapf(ErrStorageValueOutOfRange, "bonds_moving_average must be at most %d", BondsMovingAverageScale)
	}
	if p.MinimumDifficulty > p.MaximumDifficulty {
		return errors.Wrapf(ErrStorageValueOutOfRange, "minimum_difficulty %d above maximum_difficulty %d", p.MinimumDifficulty, p.MaximumDifficulty)
	}
	if p.MaxAllowedUids > math.MaxUint32 {
		return errors.Wrapf(ErrStorageValueOutOfRange, "max_allowed_uids must fit in a uid")
	}
	return nil
}

// ClampDifficulty bounds d by the configured minimum and maximum.
func (p Params) ClampDifficulty(d uint64) uint64 {
	if d < p.MinimumDifficulty {
		return p.MinimumDifficulty
	}
	if d > p.MaximumDifficulty {
		return p.MaximumDifficulty
	}
	return d
}

// OptionalParams carries a params update. Every field is a list and an empty list
// leaves the current value untouched.
type OptionalParams struct {
	Rho                            []uint64 `json:"rho,omitempty"`
	Kappa                          []uint64 `json:"kappa,omitempty"`
	BlocksPerStep                  []uint64 `json:"blocks_per_step,omitempty"`
	BlockEmission                  []uint64 `json:"block_emission,omitempty"`
	BondsMovingAverage             []uint64 `json:"bonds_moving_average,omitempty"`
	SelfOwnership                  []uint64 `json:"self_ownership,omitempty"`
	ActivityCutoff                 []uint64 `json:"activity_cutoff,omitempty"`
	MaxAllowedUids                 []uint64 `json:"max_allowed_uids,omitempty"`
	MinAllowedWeights              []uint64 `json:"min_allowed_weights,omitempty"`
	MaxAllowedMaxMinRatio          []uint64 `json:"max_allowed_max_min_ratio,omitempty"`
	MaxWeightLimit                 []uint32 `json:"max_weight_limit,omitempty"`
	ImmunityPeriod                 []uint64 `json:"immunity_period,omitempty"`
	IncentivePruningDenominator    []uint64 `json:"incentive_pruning_denominator,omitempty"`
	StakePruningDenominator        []uint64 `json:"stake_pruning_denominator,omitempty"`
	StakePruningMin                []uint64 `json:"stake_pruning_min,omitempty"`
	AdjustmentInterval             []uint64 `json:"adjustment_interval,omitempty"`
	TargetRegistrationsPerInterval []uint64 `json:"target_registrations_per_interval,omitempty"`
	MaxRegistrationsPerBlock       []uint64 `json:"max_registrations_per_block,omitempty"`
	MinimumDifficulty              []uint64 `json:"minimum_difficulty,omitempty"`
	MaximumDifficulty              []uint64 `json:"maximum_difficulty,omitempty"`
	ScalingLawPower                []uint32 `json:"scaling_law_power,omitempty"`
	SynergyScalingLawPower         []uint32 `json:"synergy_scaling_law_power,omitempty"`
	ValidatorExcludeQuantile       []uint32 `json:"validator_exclude_quantile,omitempty"`
	ValidatorBatchSize             []uint64 `json:"validator_batch_size,omitempty"`
	ValidatorSequenceLength        []uint64 `json:"validator_sequence_length,omitempty"`
	ValidatorEpochLen              []uint64 `json:"validator_epoch_len,omitempty"`
	ValidatorEpochsPerReset        []uint64 `json:"validator_epochs_per_reset,omitempty"`
	ValidatorPruneLen              []uint64 `json:"validator_prune_len,omitempty"`
	ValidatorLogitsDivergence      []uint64 `json:"validator_logits_divergence,omitempty"`
}
