package keeper

import (
	"context"
	"net/netip"

	errorsmod "cosmossdk.io/errors"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

// ServeAxon records the endpoint hotkey's neuron serves on.
func (k *Keeper) ServeAxon(ctx context.Context, hotkey Hotkey, axon types.AxonInfo) error {
	neuron, err := k.GetNeuronForHotkey(ctx, hotkey)
	if err != nil {
		return err
	}
	if err := validateAxon(axon); err != nil {
		return err
	}

	neuron.Axon = axon
	if err := k.SetNeuron(ctx, neuron); err != nil {
		return err
	}

	types.EmitAxonServed(sdk.UnwrapSDKContext(ctx), hotkey, neuron.Uid)
	return nil
}

func validateAxon(axon types.AxonInfo) error {
	if axon.IpType != types.IpTypeV4 && axon.IpType != types.IpTypeV6 {
		return errorsmod.Wrapf(types.ErrInvalidIpType, "ip type %d", axon.IpType)
	}
	addr, err := netip.ParseAddr(axon.Ip)
	if err != nil {
		return errorsmod.Wrap(types.ErrInvalidIpAddress, err.Error())
	}
	if addr.IsUnspecified() {
		return errorsmod.Wrapf(types.ErrInvalidIpAddress, "%s is unspecified", axon.Ip)
	}
	if (axon.IpType == types.IpTypeV4) != addr.Is4() {
		return errorsmod.Wrapf(types.ErrInvalidIpAddress, "%s is not an ipv%d address", axon.Ip, axon.IpType)
	}
	if axon.Modality != types.ModalityText {
		return errorsmod.Wrapf(types.ErrInvalidModality, "modality %d", axon.Modality)
	}
	return nil
}
