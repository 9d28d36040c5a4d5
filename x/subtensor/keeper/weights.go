package keeper

import (
	"context"
	"sort"

	errorsmod "cosmossdk.io/errors"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper/mechanism"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// SetWeights replaces hotkey's outgoing weights. Every check runs before anything is
// written, so a rejected call leaves the stored row untouched.
func (k *Keeper) SetWeights(ctx context.Context, hotkey Hotkey, uids, weights []uint32) error {
	uid, err := k.GetUidForHotkey(ctx, hotkey)
	if err != nil {
		return err
	}
	if len(uids) != len(weights) {
		return errorsmod.Wrapf(types.ErrWeightVecNotEqualSize, "%d uids, %d weights", len(uids), len(weights))
	}
	if hasDuplicates(uids) {
		return types.ErrDuplicateUids
	}
	if err := k.checkTargetsActive(ctx, uids); err != nil {
		return err
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return err
	}
	if nonZero := countNonZero(weights); nonZero < params.MinAllowedWeights {
		return errorsmod.Wrapf(types.ErrNotSettingEnoughWeights, "%d non-zero weights, need %d", nonZero, params.MinAllowedWeights)
	}

	normalized := mechanism.NormalizeToMaxWeight(weights)
	if !maxMinRatioWithin(normalized, params.MaxAllowedMaxMinRatio) {
		return errorsmod.Wrapf(types.ErrMaxAllowedMaxMinRatioExceeded, "max ratio %d", params.MaxAllowedMaxMinRatio)
	}
	for _, w := range normalized {
		if w > params.MaxWeightLimit {
			return errorsmod.Wrapf(types.ErrMaxWeightExceeded, "weight %d above limit %d", w, params.MaxWeightLimit)
		}
	}

	neuron, err := k.GetNeuron(ctx, uid)
	if err != nil {
		return err
	}
	if err := k.SetWeightRow(ctx, uid, sparseWeightRow(uids, normalized)); err != nil {
		return err
	}
	neuron.LastUpdate = currentBlock(ctx)
	if err := k.SetNeuron(ctx, neuron); err != nil {
		return err
	}

	types.EmitWeightsSet(sdk.UnwrapSDKContext(ctx), hotkey, uid)
	return nil
}

func hasDuplicates(uids []uint32) bool {
	seen := make(map[uint32]struct{}, len(uids))
	for _, uid := range uids {
		if _, ok := seen[uid]; ok {
			return true
		}
		seen[uid] = struct{}{}
	}
	return false
}

// checkTargetsActive rejects uids outside the registry or whose neuron is inactive.
func (k *Keeper) checkTargetsActive(ctx context.Context, uids []uint32) error {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return err
	}
	for _, uid := range uids {
		if uid >= n {
			return errorsmod.Wrapf(types.ErrInvalidUid, "uid %d, registry holds %d", uid, n)
		}
		neuron, err := k.GetNeuron(ctx, uid)
		if err != nil {
			return err
		}
		if neuron.Active == 0 {
			return errorsmod.Wrapf(types.ErrInvalidUid, "uid %d is not active", uid)
		}
	}
	return nil
}

func countNonZero(weights []uint32) uint64 {
	var count uint64
	for _, w := range weights {
		if w != 0 {
			count++
		}
	}
	return count
}

// maxMinRatioWithin checks max <= ratio·min over the non-zero weights. A zero ratio
// disables the check.
func maxMinRatioWithin(weights []uint32, ratio uint64) bool {
	if ratio == 0 {
		return true
	}
	var lo, hi uint32
	for _, w := range weights {
		if w == 0 {
			continue
		}
		if lo == 0 || w < lo {
			lo = w
		}
		if w > hi {
			hi = w
		}
	}
	if lo == 0 {
		return true
	}
	return uint64(hi) <= subMath.SaturatingMul(ratio, uint64(lo))
}

// sparseWeightRow pairs uids with weights, drops zeros and sorts by uid.
func sparseWeightRow(uids, weights []uint32) types.WeightRow {
	row := make(types.WeightRow, 0, len(uids))
	for i, uid := range uids {
		if weights[i] != 0 {
			row = append(row, types.WeightEntry{Uid: uid, Weight: weights[i]})
		}
	}
	sort.Slice(row, func(a, b int) bool { return row[a].Uid < row[b].Uid })
	return row
}
