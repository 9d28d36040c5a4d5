package keeper

import (
	"fmt"

	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// RegisterInvariants registers the subtensor module invariants.
func RegisterInvariants(ir sdk.InvariantRegistry, k *Keeper) {
	ir.RegisterRoute(types.ModuleName, "total-stake-equals-neuron-stake", TotalStakeEqualsNeuronStake(*k))
	ir.RegisterRoute(types.ModuleName, "hotkeys-match-neurons", HotkeysMatchNeurons(*k))
	ir.RegisterRoute(types.ModuleName, "uid-space-dense", UidSpaceDense(*k))
}

// AllInvariants is a convenience function to run all invariants in the subtensor module.
func AllInvariants(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		if res, stop := TotalStakeEqualsNeuronStake(k)(ctx); stop {
			return res, stop
		}
		if res, stop := HotkeysMatchNeurons(k)(ctx); stop {
			return res, stop
		}
		return UidSpaceDense(k)(ctx)
	}
}

// TotalStakeEqualsNeuronStake checks TotalStake against the sum of every neuron's stake.
func TotalStakeEqualsNeuronStake(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		totalStake, err := k.GetTotalStake(ctx)
		if err != nil {
			panic(fmt.Sprintf("failed to get total stake: %v", err))
		}
		stakes, err := k.GetStakes(ctx)
		if err != nil {
			panic(fmt.Sprintf("failed to get stakes: %v", err))
		}
		var sum uint64
		for _, s := range stakes {
			sum = subMath.SaturatingAdd(sum, s)
		}
		broken := sum != totalStake
		return sdk.FormatInvariant(
			types.ModuleName,
			"total stake equals sum of neuron stake",
			fmt.Sprintf("TotalStake: %d | Sum of neuron stake: %d", totalStake, sum),
		), broken
	}
}

// HotkeysMatchNeurons checks the hotkey index maps every neuron's hotkey to its uid
// and holds nothing else.
func HotkeysMatchNeurons(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		neurons, err := k.GetAllNeurons(ctx)
		if err != nil {
			panic(fmt.Sprintf("failed to get neurons: %v", err))
		}
		for _, neuron := range neurons {
			uid, err := k.hotkeys.Get(ctx, neuron.Hotkey)
			if err != nil || uid != neuron.Uid {
				return sdk.FormatInvariant(
					types.ModuleName,
					"hotkeys match neurons",
					fmt.Sprintf("hotkey %s of uid %d maps to %d (%v)", neuron.Hotkey, neuron.Uid, uid, err),
				), true
			}
		}
		iter, err := k.hotkeys.Iterate(ctx, nil)
		if err != nil {
			panic(fmt.Sprintf("failed to iterate hotkeys: %v", err))
		}
		hotkeys, err := iter.Keys()
		if err != nil {
			panic(fmt.Sprintf("failed to read hotkeys: %v", err))
		}
		broken := len(hotkeys) != len(neurons)
		return sdk.FormatInvariant(
			types.ModuleName,
			"hotkeys match neurons",
			fmt.Sprintf("Hotkeys: %d | Neurons: %d", len(hotkeys), len(neurons)),
		), broken
	}
}

// UidSpaceDense checks neuron records exist for exactly the uids [0, N).
func UidSpaceDense(k Keeper) sdk.Invariant {
	return func(ctx sdk.Context) (string, bool) {
		n, err := k.GetNeuronCount(ctx)
		if err != nil {
			panic(fmt.Sprintf("failed to get neuron count: %v", err))
		}
		iter, err := k.neurons.Iterate(ctx, nil)
		if err != nil {
			panic(fmt.Sprintf("failed to iterate neurons: %v", err))
		}
		uids, err := iter.Keys()
		if err != nil {
			panic(fmt.Sprintf("failed to read neuron uids: %v", err))
		}
		broken := len(uids) != int(n)
		for i, uid := range uids {
			if uid != Uid(i) {
				broken = true
				break
			}
		}
		return sdk.FormatInvariant(
			types.ModuleName,
			"uid space dense",
			fmt.Sprintf("N: %d | Neuron records: %d", n, len(uids)),
		), broken
	}
}
