package types

import (
	"strconv"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/metrics"

	sdk "github.com/cosmos/cosmos-sdk/types"
)

const (
	EventTypeWeightsSet       = "weights_set"
	EventTypeNeuronRegistered = "neuron_registered"
	EventTypeNeuronPruned     = "neuron_pruned"
	EventTypeAxonServed       = "axon_served"
	EventTypeStakeAdded       = "stake_added"
	EventTypeStakeRemoved     = "stake_removed"
	EventTypeResetBonds       = "reset_bonds"
	EventTypeMechanismStep    = "mechanism_step"

	// admin setters emit "<param>_set"
	eventTypeParamSetSuffix = "_set"

	AttributeKeyUid      = "uid"
	AttributeKeyHotkey   = "hotkey"
	AttributeKeyColdkey  = "coldkey"
	AttributeKeyAmount   = "amount"
	AttributeKeyValue    = "value"
	AttributeKeyBlock    = "block"
	AttributeKeyEmission = "emission"
	AttributeKeyNeurons  = "neurons"
)

// ParamSetEventType names the event emitted when the named param changes.
func ParamSetEventType(param string) string {
	return param + eventTypeParamSetSuffix
}

func formatUint(v uint64) string {
	return strconv.FormatUint(v, 10)
}

func EmitWeightsSet(ctx sdk.Context, hotkey string, uid uint32) {
	metrics.IncrProducerEventCount(metrics.WEIGHTS_SET_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeWeightsSet,
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
		sdk.NewAttribute(AttributeKeyUid, formatUint(uint64(uid))),
	))
}

func EmitNeuronRegistered(ctx sdk.Context, uid uint32, hotkey, coldkey string) {
	metrics.IncrProducerEventCount(metrics.NEURON_REGISTERED_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeNeuronRegistered,
		sdk.NewAttribute(AttributeKeyUid, formatUint(uint64(uid))),
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
		sdk.NewAttribute(AttributeKeyColdkey, coldkey),
	))
}

func EmitNeuronPruned(ctx sdk.Context, uid uint32, hotkey string) {
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeNeuronPruned,
		sdk.NewAttribute(AttributeKeyUid, formatUint(uint64(uid))),
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
	))
}

func EmitAxonServed(ctx sdk.Context, hotkey string, uid uint32) {
	metrics.IncrProducerEventCount(metrics.AXON_SERVED_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeAxonServed,
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
		sdk.NewAttribute(AttributeKeyUid, formatUint(uint64(uid))),
	))
}

func EmitStakeAdded(ctx sdk.Context, hotkey string, amount uint64) {
	metrics.IncrProducerEventCount(metrics.STAKE_ADDED_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeStakeAdded,
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
		sdk.NewAttribute(AttributeKeyAmount, formatUint(amount)),
	))
}

func EmitStakeRemoved(ctx sdk.Context, hotkey string, amount uint64) {
	metrics.IncrProducerEventCount(metrics.STAKE_REMOVED_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeStakeRemoved,
		sdk.NewAttribute(AttributeKeyHotkey, hotkey),
		sdk.NewAttribute(AttributeKeyAmount, formatUint(amount)),
	))
}

func EmitParamSet(ctx sdk.Context, param string, value uint64) {
	metrics.IncrProducerEventCount(metrics.PARAM_SET_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		ParamSetEventType(param),
		sdk.NewAttribute(AttributeKeyValue, formatUint(value)),
	))
}

func EmitResetBonds(ctx sdk.Context) {
	metrics.IncrProducerEventCount(metrics.RESET_BONDS_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(EventTypeResetBonds))
}

func EmitMechanismStep(ctx sdk.Context, block, emission uint64, neurons uint32) {
	metrics.IncrProducerEventCount(metrics.STEP_EVENT)
	ctx.EventManager().EmitEvent(sdk.NewEvent(
		EventTypeMechanismStep,
		sdk.NewAttribute(AttributeKeyBlock, formatUint(block)),
		sdk.NewAttribute(AttributeKeyEmission, formatUint(emission)),
		sdk.NewAttribute(AttributeKeyNeurons, formatUint(uint64(neurons))),
	))
}
