package types

import "cosmossdk.io/errors"

var (
	// ERROR 1 IS RESERVED BY COSMOS-SDK PACKAGE

	// weight setting
	ErrNotRegistered                 = errors.Register(ModuleName, 2, "hotkey is not registered")
	ErrWeightVecNotEqualSize         = errors.Register(ModuleName, 3, "uids and weights vectors differ in length")
	ErrDuplicateUids                 = errors.Register(ModuleName, 4, "uids vector contains duplicates")
	ErrInvalidUid                    = errors.Register(ModuleName, 5, "uid does not refer to a registered neuron")
	ErrNotSettingEnoughWeights       = errors.Register(ModuleName, 6, "fewer non-zero weights than the minimum allowed")
	ErrMaxAllowedMaxMinRatioExceeded = errors.Register(ModuleName, 7, "ratio between largest and smallest weight exceeds the maximum allowed")
	ErrMaxWeightExceeded             = errors.Register(ModuleName, 8, "normalized weight exceeds the maximum weight limit")

	// staking
	ErrNonAssociatedColdKey     = errors.Register(ModuleName, 9, "coldkey is not associated with the hotkey")
	ErrNotEnoughStaketoWithdraw = errors.Register(ModuleName, 10, "not enough stake to withdraw")
	ErrNotEnoughBalanceToStake  = errors.Register(ModuleName, 11, "not enough balance to stake")
	ErrBalanceWithdrawalError   = errors.Register(ModuleName, 12, "could not withdraw balance from coldkey")
	ErrCouldNotConvertToBalance = errors.Register(ModuleName, 13, "could not credit balance to coldkey")

	// serving
	ErrInvalidIpType    = errors.Register(ModuleName, 14, "ip type must be 4 or 6")
	ErrInvalidIpAddress = errors.Register(ModuleName, 15, "invalid ip address")
	ErrInvalidModality  = errors.Register(ModuleName, 16, "invalid modality")

	// admin
	ErrStorageValueOutOfRange = errors.Register(ModuleName, 17, "value out of range")
	ErrUnauthorized           = errors.Register(ModuleName, 18, "unauthorized message signer")

	// admission
	ErrInvalidWorkBlock             = errors.Register(ModuleName, 19, "work block is in the future or too old")
	ErrWorkRepeated                 = errors.Register(ModuleName, 20, "work has already been used")
	ErrInvalidSeal                  = errors.Register(ModuleName, 21, "work is not the seal of the block number, nonce and hotkey")
	ErrInvalidDifficulty            = errors.Register(ModuleName, 22, "work does not meet the difficulty")
	ErrAlreadyRegistered            = errors.Register(ModuleName, 23, "hotkey is already registered")
	ErrToManyRegistrationsThisBlock = errors.Register(ModuleName, 24, "too many registrations this block")
	ErrAllNeuronsImmune             = errors.Register(ModuleName, 25, "registry is full and every neuron is immune to pruning")

	// state
	ErrNeuronNotFound         = errors.Register(ModuleName, 26, "neuron not found")
	ErrRowDecodeInvalidLength = errors.Register(ModuleName, 27, "invalid encoded row length")
	ErrInvalidGenesis         = errors.Register(ModuleName, 28, "invalid genesis state")
)
