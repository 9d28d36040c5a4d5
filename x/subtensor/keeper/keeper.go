package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	coreStore "cosmossdk.io/core/store"
	"cosmossdk.io/log"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

type Uid = uint32
type Hotkey = string
type BlockHeight = uint64

type Keeper struct {
	storeService coreStore.KVStoreService
	bankKeeper   types.BankKeeper

	// bech32 address allowed to send admin msgs
	authority string

	schema collections.Schema
	params collections.Item[types.Params]

	/// GLOBAL STATE

	// number of registered neurons, uids are [0, neuronCount)
	neuronCount   collections.Item[uint64]
	totalStake    collections.Item[uint64]
	totalIssuance collections.Item[uint64]
	// blocks elapsed since the last mechanism step ran
	blocksSinceLastStep    collections.Item[uint64]
	lastMechanismStepBlock collections.Item[BlockHeight]

	/// ADMISSION

	difficulty                    collections.Item[uint64]
	lastDifficultyAdjustmentBlock collections.Item[BlockHeight]
	registrationsThisInterval     collections.Item[uint64]
	registrationsThisBlock        collections.Item[uint64]
	// seal -> block it was used at
	usedWork collections.Map[[]byte, BlockHeight]

	/// NEURONS

	neurons collections.Map[Uid, types.Neuron]
	hotkeys collections.Map[Hotkey, Uid]
	// outgoing weight row of every neuron
	weights collections.Map[Uid, types.WeightRow]
	// outgoing bond row of every neuron
	bonds               collections.Map[Uid, types.BondRow]
	blockAtRegistration collections.Map[Uid, BlockHeight]

	/// PRUNING

	// uid selected by the last mechanism step for reuse by the next registration
	neuronsToPruneAtNextEpoch collections.KeySet[Uid]
	// pruning score of every neuron as of the last mechanism step
	pruningScores collections.Map[Uid, subMath.U64F64]
}

func NewKeeper(
	storeService coreStore.KVStoreService,
	bk types.BankKeeper,
	authority string,
) Keeper {
	sb := collections.NewSchemaBuilder(storeService)
	k := Keeper{
		storeService:                  storeService,
		bankKeeper:                    bk,
		authority:                     authority,
		params:                        collections.NewItem(sb, types.ParamsKey, "params", types.ParamsValue),
		neuronCount:                   collections.NewItem(sb, types.NeuronCountKey, "neuron_count", collections.Uint64Value),
		totalStake:                    collections.NewItem(sb, types.TotalStakeKey, "total_stake", collections.Uint64Value),
		totalIssuance:                 collections.NewItem(sb, types.TotalIssuanceKey, "total_issuance", collections.Uint64Value),
		blocksSinceLastStep:           collections.NewItem(sb, types.BlocksSinceLastStepKey, "blocks_since_last_step", collections.Uint64Value),
		lastMechanismStepBlock:        collections.NewItem(sb, types.LastMechanismStepBlockKey, "last_mechanism_step_block", collections.Uint64Value),
		difficulty:                    collections.NewItem(sb, types.DifficultyKey, "difficulty", collections.Uint64Value),
		lastDifficultyAdjustmentBlock: collections.NewItem(sb, types.LastDifficultyAdjustmentBlockKey, "last_difficulty_adjustment_block", collections.Uint64Value),
		registrationsThisInterval:     collections.NewItem(sb, types.RegistrationsThisIntervalKey, "registrations_this_interval", collections.Uint64Value),
		registrationsThisBlock:        collections.NewItem(sb, types.RegistrationsThisBlockKey, "registrations_this_block", collections.Uint64Value),
		usedWork:                      collections.NewMap(sb, types.UsedWorkKey, "used_work", collections.BytesKey, collections.Uint64Value),
		neurons:                       collections.NewMap(sb, types.NeuronsKey, "neurons", collections.Uint32Key, types.NeuronValue),
		hotkeys:                       collections.NewMap(sb, types.HotkeysKey, "hotkeys", collections.StringKey, collections.Uint32Value),
		weights:                       collections.NewMap(sb, types.WeightsKey, "weights", collections.Uint32Key, types.WeightRowValue),
		bonds:                         collections.NewMap(sb, types.BondsKey, "bonds", collections.Uint32Key, types.BondRowValue),
		blockAtRegistration:           collections.NewMap(sb, types.BlockAtRegistrationKey, "block_at_registration", collections.Uint32Key, collections.Uint64Value),
		neuronsToPruneAtNextEpoch:     collections.NewKeySet(sb, types.NeuronsToPruneAtNextEpochKey, "neurons_to_prune_at_next_epoch", collections.Uint32Key),
		pruningScores:                 collections.NewMap(sb, types.PruningScoresKey, "pruning_scores", collections.Uint32Key, subMath.FixedValue),
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}

	k.schema = schema

	return k
}

// Logger returns a module-specific logger.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	sdkCtx := sdk.UnwrapSDKContext(ctx)
	return sdkCtx.Logger().With("module", "x/"+types.ModuleName)
}

func (k *Keeper) GetAuthority() string {
	return k.authority
}

// IsAuthority reports whether addr may send admin msgs.
func (k *Keeper) IsAuthority(addr string) bool {
	return addr == k.authority
}

func currentBlock(ctx context.Context) BlockHeight {
	height := sdk.UnwrapSDKContext(ctx).BlockHeight()
	if height < 0 {
		return 0
	}
	return BlockHeight(height)
}

// getOrDefault reads an item, falling back to def when it was never written.
func getOrDefault[V any](ctx context.Context, item collections.Item[V], def V) (V, error) {
	v, err := item.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return def, nil
	}
	return v, err
}

/// COUNTERS

func (k *Keeper) GetNeuronCount(ctx context.Context) (uint32, error) {
	n, err := getOrDefault(ctx, k.neuronCount, 0)
	return uint32(n), err
}

func (k *Keeper) GetTotalStake(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.totalStake, 0)
}

func (k *Keeper) SetTotalStake(ctx context.Context, totalStake uint64) error {
	return k.totalStake.Set(ctx, totalStake)
}

func (k *Keeper) GetTotalIssuance(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.totalIssuance, 0)
}

func (k *Keeper) SetTotalIssuance(ctx context.Context, totalIssuance uint64) error {
	return k.totalIssuance.Set(ctx, totalIssuance)
}

func (k *Keeper) GetBlocksSinceLastStep(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.blocksSinceLastStep, 0)
}

func (k *Keeper) SetBlocksSinceLastStep(ctx context.Context, blocks uint64) error {
	return k.blocksSinceLastStep.Set(ctx, blocks)
}

func (k *Keeper) GetLastMechanismStepBlock(ctx context.Context) (BlockHeight, error) {
	return getOrDefault(ctx, k.lastMechanismStepBlock, 0)
}

func (k *Keeper) GetRegistrationsThisInterval(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.registrationsThisInterval, 0)
}

func (k *Keeper) GetRegistrationsThisBlock(ctx context.Context) (uint64, error) {
	return getOrDefault(ctx, k.registrationsThisBlock, 0)
}

// ResetRegistrationsThisBlock is called at the start of every block.
func (k *Keeper) ResetRegistrationsThisBlock(ctx context.Context) error {
	return k.registrationsThisBlock.Set(ctx, 0)
}

func (k *Keeper) incrementRegistrations(ctx context.Context) error {
	thisBlock, err := k.GetRegistrationsThisBlock(ctx)
	if err != nil {
		return err
	}
	if err := k.registrationsThisBlock.Set(ctx, subMath.SaturatingAdd(thisBlock, 1)); err != nil {
		return err
	}
	thisInterval, err := k.GetRegistrationsThisInterval(ctx)
	if err != nil {
		return err
	}
	return k.registrationsThisInterval.Set(ctx, subMath.SaturatingAdd(thisInterval, 1))
}

func (k *Keeper) addToTotalStake(ctx context.Context, amount uint64) error {
	total, err := k.GetTotalStake(ctx)
	if err != nil {
		return err
	}
	return k.totalStake.Set(ctx, subMath.SaturatingAdd(total, amount))
}

func (k *Keeper) subFromTotalStake(ctx context.Context, amount uint64) error {
	total, err := k.GetTotalStake(ctx)
	if err != nil {
		return err
	}
	return k.totalStake.Set(ctx, subMath.SaturatingSub(total, amount))
}
