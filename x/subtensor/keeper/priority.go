package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	subMath "github.com/opentensor/subtensor-deprecated/math"
)

// priorityScale keeps priority/len from rounding to zero for small priorities.
const priorityScale = 1_000_000

// GetPrioritySetWeights orders weight-setting transactions of encoded length bytes.
// Unknown hotkeys get zero.
func (k *Keeper) GetPrioritySetWeights(ctx context.Context, hotkey Hotkey, length uint64) (uint64, error) {
	uid, err := k.hotkeys.Get(ctx, hotkey)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	neuron, err := k.GetNeuron(ctx, uid)
	if err != nil {
		return 0, err
	}
	if length == 0 {
		length = 1
	}
	return subMath.SaturatingMul(neuron.Priority, priorityScale) / length, nil
}

// CalculateTransactionFee is the vanilla fee in rao for a transaction of length bytes.
func CalculateTransactionFee(length uint64) uint64 {
	return subMath.SaturatingMul(length, 100)
}
