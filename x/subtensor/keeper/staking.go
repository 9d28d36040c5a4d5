package keeper

import (
	"context"

	errorsmod "cosmossdk.io/errors"
	cosmosMath "cosmossdk.io/math"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

func stakeCoins(amount uint64) sdk.Coins {
	return sdk.NewCoins(sdk.NewCoin(types.DefaultBondDenom, cosmosMath.NewIntFromUint64(amount)))
}

// associatedNeuron loads hotkey's neuron and checks coldkey owns it.
func (k *Keeper) associatedNeuron(ctx context.Context, coldkey string, hotkey Hotkey) (types.Neuron, sdk.AccAddress, error) {
	neuron, err := k.GetNeuronForHotkey(ctx, hotkey)
	if err != nil {
		return types.Neuron{}, nil, err
	}
	if neuron.Coldkey != coldkey {
		return types.Neuron{}, nil, errorsmod.Wrapf(types.ErrNonAssociatedColdKey, "hotkey %s belongs to %s", hotkey, neuron.Coldkey)
	}
	coldkeyAddr, err := sdk.AccAddressFromBech32(coldkey)
	if err != nil {
		return types.Neuron{}, nil, err
	}
	return neuron, coldkeyAddr, nil
}

// AddStake moves amount from the coldkey's balance into hotkey's stake.
func (k *Keeper) AddStake(ctx context.Context, coldkey string, hotkey Hotkey, amount uint64) error {
	neuron, coldkeyAddr, err := k.associatedNeuron(ctx, coldkey, hotkey)
	if err != nil {
		return err
	}

	balance := k.bankKeeper.GetBalance(ctx, coldkeyAddr, types.DefaultBondDenom)
	if balance.Amount.LT(cosmosMath.NewIntFromUint64(amount)) {
		return errorsmod.Wrapf(types.ErrNotEnoughBalanceToStake, "balance %s, staking %d", balance.Amount, amount)
	}
	if amount > 0 {
		err = k.bankKeeper.SendCoinsFromAccountToModule(ctx, coldkeyAddr, types.SubtensorStakingAccountName, stakeCoins(amount))
		if err != nil {
			return errorsmod.Wrap(types.ErrBalanceWithdrawalError, err.Error())
		}
	}

	neuron.Stake = subMath.SaturatingAdd(neuron.Stake, amount)
	if err := k.SetNeuron(ctx, neuron); err != nil {
		return err
	}
	if err := k.addToTotalStake(ctx, amount); err != nil {
		return err
	}

	types.EmitStakeAdded(sdk.UnwrapSDKContext(ctx), hotkey, amount)
	return nil
}

// RemoveStake pays amount of hotkey's stake back to the coldkey.
func (k *Keeper) RemoveStake(ctx context.Context, coldkey string, hotkey Hotkey, amount uint64) error {
	neuron, coldkeyAddr, err := k.associatedNeuron(ctx, coldkey, hotkey)
	if err != nil {
		return err
	}
	if neuron.Stake < amount {
		return errorsmod.Wrapf(types.ErrNotEnoughStaketoWithdraw, "stake %d, withdrawing %d", neuron.Stake, amount)
	}

	neuron.Stake -= amount
	if err := k.SetNeuron(ctx, neuron); err != nil {
		return err
	}
	if err := k.subFromTotalStake(ctx, amount); err != nil {
		return err
	}
	if err := k.payOutStake(ctx, coldkeyAddr, amount); err != nil {
		return err
	}

	types.EmitStakeRemoved(sdk.UnwrapSDKContext(ctx), hotkey, amount)
	return nil
}

func (k *Keeper) payOutStake(ctx context.Context, coldkey sdk.AccAddress, amount uint64) error {
	if amount == 0 {
		return nil
	}
	err := k.bankKeeper.SendCoinsFromModuleToAccount(ctx, types.SubtensorStakingAccountName, coldkey, stakeCoins(amount))
	if err != nil {
		return errorsmod.Wrap(types.ErrCouldNotConvertToBalance, err.Error())
	}
	return nil
}
