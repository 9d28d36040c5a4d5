package keeper

import (
	"bytes"
	"context"
	"errors"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper/mechanism"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/metrics"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// Register admits hotkey against a proof of work over (blockNumber, nonce, hotkey).
// The checks run in a fixed order and nothing is written until all of them pass.
func (k *Keeper) Register(
	ctx context.Context,
	blockNumber uint64,
	nonce uint64,
	work []byte,
	hotkey Hotkey,
	coldkey string,
) (Uid, error) {
	block := currentBlock(ctx)
	if blockNumber > block || block-blockNumber >= types.WorkBlockWindow {
		return 0, errorsmod.Wrapf(types.ErrInvalidWorkBlock, "work block %d at block %d", blockNumber, block)
	}

	used, err := k.usedWork.Has(ctx, work)
	if err != nil {
		return 0, err
	}
	if used {
		return 0, types.ErrWorkRepeated
	}

	hotkeyAddr, err := sdk.AccAddressFromBech32(hotkey)
	if err != nil {
		return 0, err
	}
	if len(work) != types.WorkLen || !bytes.Equal(types.CreateSealHash(blockNumber, nonce, hotkeyAddr), work) {
		return 0, types.ErrInvalidSeal
	}

	difficulty, err := k.GetDifficulty(ctx)
	if err != nil {
		return 0, err
	}
	if !types.SealMeetsDifficulty(work, difficulty) {
		return 0, errorsmod.Wrapf(types.ErrInvalidDifficulty, "difficulty %d", difficulty)
	}

	registered, err := k.IsHotkeyRegistered(ctx, hotkey)
	if err != nil {
		return 0, err
	}
	if registered {
		return 0, errorsmod.Wrapf(types.ErrAlreadyRegistered, "hotkey %s", hotkey)
	}

	params, err := k.GetParams(ctx)
	if err != nil {
		return 0, err
	}
	registrationsThisBlock, err := k.GetRegistrationsThisBlock(ctx)
	if err != nil {
		return 0, err
	}
	if registrationsThisBlock >= params.MaxRegistrationsPerBlock {
		return 0, errorsmod.Wrapf(types.ErrToManyRegistrationsThisBlock, "limit %d", params.MaxRegistrationsPerBlock)
	}

	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return 0, err
	}
	var uid Uid
	if uint64(n) < params.MaxAllowedUids {
		uid, err = k.appendNeuron(ctx, hotkey, coldkey, block)
		if err != nil {
			return 0, err
		}
	} else {
		uid, err = k.selectUidToReplace(ctx, n, block, params.ImmunityPeriod)
		if err != nil {
			return 0, err
		}
		if err := k.replaceNeuron(ctx, uid, hotkey, coldkey, block); err != nil {
			return 0, err
		}
	}

	if err := k.usedWork.Set(ctx, work, block); err != nil {
		return 0, err
	}
	if err := k.incrementRegistrations(ctx); err != nil {
		return 0, err
	}

	count, err := k.GetNeuronCount(ctx)
	if err == nil {
		metrics.SetNeuronCount(count)
	}
	types.EmitNeuronRegistered(sdk.UnwrapSDKContext(ctx), uid, hotkey, coldkey)
	return uid, nil
}

// IsWorkUsed reports whether the seal was already spent on a registration.
func (k *Keeper) IsWorkUsed(ctx context.Context, work []byte) (bool, error) {
	return k.usedWork.Has(ctx, work)
}

// selectUidToReplace prefers the uid marked by the last step and otherwise picks the
// lowest scoring non-immune neuron now.
func (k *Keeper) selectUidToReplace(ctx context.Context, n uint32, block BlockHeight, immunityPeriod uint64) (Uid, error) {
	iter, err := k.neuronsToPruneAtNextEpoch.Iterate(ctx, nil)
	if err != nil {
		return 0, err
	}
	marked, err := iter.Keys()
	if err != nil {
		return 0, err
	}
	for _, uid := range marked {
		if uid >= n {
			continue
		}
		registeredAt, err := k.GetBlockAtRegistration(ctx, uid)
		if err != nil {
			return 0, err
		}
		if !mechanism.IsImmune(block, registeredAt, immunityPeriod) {
			return uid, nil
		}
	}

	scores := make([]subMath.U64F64, n)
	blockAtRegistration := make([]uint64, n)
	for uid := Uid(0); uid < n; uid++ {
		scores[uid], err = k.GetPruningScore(ctx, uid)
		if err != nil {
			return 0, err
		}
		blockAtRegistration[uid], err = k.GetBlockAtRegistration(ctx, uid)
		if err != nil {
			return 0, err
		}
	}
	uid, ok := mechanism.SelectPruneCandidate(scores, blockAtRegistration, block, immunityPeriod)
	if !ok {
		return 0, types.ErrAllNeuronsImmune
	}
	return uid, nil
}

// replaceNeuron evicts the neuron at uid and registers hotkey in its place. The old
// neuron's stake goes back to its coldkey and every row pointing at uid forgets it.
// The stake leaves TotalStake even when the refund fails.
func (k *Keeper) replaceNeuron(ctx context.Context, uid Uid, hotkey Hotkey, coldkey string, block BlockHeight) error {
	old, err := k.GetNeuron(ctx, uid)
	if err != nil {
		return err
	}

	if old.Stake > 0 {
		if err := k.subFromTotalStake(ctx, old.Stake); err != nil {
			return err
		}
		// a failed refund must not block the registration; the stake stays in the
		// staking account
		oldColdkey, err := sdk.AccAddressFromBech32(old.Coldkey)
		if err == nil {
			err = k.payOutStake(ctx, oldColdkey, old.Stake)
		}
		if err != nil {
			k.Logger(ctx).Error("could not refund stake of replaced neuron",
				"uid", uid, "hotkey", old.Hotkey, "coldkey", old.Coldkey, "stake", old.Stake, "error", err)
		}
	}
	if err := k.hotkeys.Remove(ctx, old.Hotkey); err != nil {
		return err
	}
	if err := k.weights.Remove(ctx, uid); err != nil {
		return err
	}
	if err := k.bonds.Remove(ctx, uid); err != nil {
		return err
	}
	if err := k.pruningScores.Remove(ctx, uid); err != nil {
		return err
	}
	if err := k.neuronsToPruneAtNextEpoch.Remove(ctx, uid); err != nil {
		return err
	}
	if err := k.forgetUidInRows(ctx, uid); err != nil {
		return err
	}

	if err := k.putNeuron(ctx, types.NewNeuron(uid, hotkey, coldkey, block), block); err != nil {
		return err
	}
	types.EmitNeuronPruned(sdk.UnwrapSDKContext(ctx), uid, old.Hotkey)
	k.Logger(ctx).Info("replaced neuron", "uid", uid, "old_hotkey", old.Hotkey, "hotkey", hotkey)
	return nil
}

// forgetUidInRows drops every weight and bond entry targeting uid.
func (k *Keeper) forgetUidInRows(ctx context.Context, uid Uid) error {
	n, err := k.GetNeuronCount(ctx)
	if err != nil {
		return err
	}
	for i := Uid(0); i < n; i++ {
		weights, err := k.GetWeightRow(ctx, i)
		if err != nil {
			return err
		}
		if trimmed := weights.WithoutUid(uid); len(trimmed) != len(weights) {
			if err := k.SetWeightRow(ctx, i, trimmed); err != nil {
				return err
			}
		}
		bonds, err := k.GetBondRow(ctx, i)
		if err != nil {
			return err
		}
		if trimmed := bonds.WithoutUid(uid); len(trimmed) != len(bonds) {
			if err := k.SetBondRow(ctx, i, trimmed); err != nil {
				return err
			}
		}
	}
	return nil
}

func (k *Keeper) GetPruningScore(ctx context.Context, uid Uid) (subMath.U64F64, error) {
	score, err := k.pruningScores.Get(ctx, uid)
	if errors.Is(err, collections.ErrNotFound) {
		return subMath.ZeroFixed(), nil
	}
	return score, err
}

// IsMarkedForPruning reports whether uid is the next slot a registration will reclaim.
func (k *Keeper) IsMarkedForPruning(ctx context.Context, uid Uid) (bool, error) {
	return k.neuronsToPruneAtNextEpoch.Has(ctx, uid)
}

// setPruneCandidate replaces the marked set with uid, or clears it when ok is false.
func (k *Keeper) setPruneCandidate(ctx context.Context, uid Uid, ok bool) error {
	iter, err := k.neuronsToPruneAtNextEpoch.Iterate(ctx, nil)
	if err != nil {
		return err
	}
	marked, err := iter.Keys()
	if err != nil {
		return err
	}
	for _, m := range marked {
		if err := k.neuronsToPruneAtNextEpoch.Remove(ctx, m); err != nil {
			return err
		}
	}
	if !ok {
		return nil
	}
	return k.neuronsToPruneAtNextEpoch.Set(ctx, uid)
}
