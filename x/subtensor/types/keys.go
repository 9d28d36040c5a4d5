package types

import "cosmossdk.io/collections"

const (
	ModuleName = "subtensor"
	StoreKey   = ModuleName

	// coins staked to neurons are held by this module account
	SubtensorStakingAccountName = ModuleName

	DefaultBondDenom = "rao"
)

var (
	ParamsKey                        = collections.NewPrefix(0)
	NeuronCountKey                   = collections.NewPrefix(1)
	TotalStakeKey                    = collections.NewPrefix(2)
	TotalIssuanceKey                 = collections.NewPrefix(3)
	BlocksSinceLastStepKey           = collections.NewPrefix(4)
	LastMechanismStepBlockKey        = collections.NewPrefix(5)
	DifficultyKey                    = collections.NewPrefix(6)
	LastDifficultyAdjustmentBlockKey = collections.NewPrefix(7)
	RegistrationsThisIntervalKey     = collections.NewPrefix(8)
	RegistrationsThisBlockKey        = collections.NewPrefix(9)
	NeuronsKey                       = collections.NewPrefix(10)
	HotkeysKey                       = collections.NewPrefix(11)
	WeightsKey                       = collections.NewPrefix(12)
	BondsKey                         = collections.NewPrefix(13)
	UsedWorkKey                      = collections.NewPrefix(14)
	BlockAtRegistrationKey           = collections.NewPrefix(15)
	NeuronsToPruneAtNextEpochKey     = collections.NewPrefix(16)
	PruningScoresKey                 = collections.NewPrefix(17)
)
