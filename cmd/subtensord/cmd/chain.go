package cmd

import (
	"cosmossdk.io/log"
	cosmosMath "cosmossdk.io/math"
	"cosmossdk.io/store"
	storemetrics "cosmossdk.io/store/metrics"
	storetypes "cosmossdk.io/store/types"
	cmtproto "github.com/cometbft/cometbft/proto/tendermint/types"
	dbm "github.com/cosmos/cosmos-db"
	"github.com/cosmos/cosmos-sdk/runtime"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	subtensor "github.com/opentensor/subtensor-deprecated/x/subtensor/module"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// chain drives the subtensor keeper block by block on an in-memory store.
type chain struct {
	cms    storetypes.CommitMultiStore
	logger log.Logger
	bank   *ledgerBank
	keeper keeper.Keeper
	height int64
}

func newChain(logger log.Logger, authority string) (*chain, error) {
	db := dbm.NewMemDB()
	cms := store.NewCommitMultiStore(db, logger, storemetrics.NewNoOpMetrics())
	key := storetypes.NewKVStoreKey(types.StoreKey)
	cms.MountStoreWithDB(key, storetypes.StoreTypeIAVL, db)
	if err := cms.LoadLatestVersion(); err != nil {
		return nil, err
	}
	bank := newLedgerBank()
	return &chain{
		cms:    cms,
		logger: logger,
		bank:   bank,
		keeper: keeper.NewKeeper(runtime.NewKVStoreService(key), bank, authority),
	}, nil
}

// context returns a context for the current height with a fresh event manager.
func (c *chain) context() sdk.Context {
	return sdk.NewContext(c.cms, cmtproto.Header{Height: c.height}, false, c.logger)
}

// initGenesis loads gs at height 1. Genesis stake is credited to the module account
// the way a bank genesis would back it.
func (c *chain) initGenesis(gs *types.GenesisState) error {
	c.height = 1
	ctx := c.context()
	if err := c.keeper.InitGenesis(ctx, gs); err != nil {
		return err
	}
	for _, n := range gs.Neurons {
		c.bank.credit(moduleAccount(types.SubtensorStakingAccountName), cosmosMath.NewIntFromUint64(n.Stake))
	}
	c.cms.Commit()
	return nil
}

// nextBlock advances the height and runs the begin blocker, returning the context
// transactions of the block execute in.
func (c *chain) nextBlock() (sdk.Context, error) {
	c.height++
	ctx := c.context()
	if err := subtensor.BeginBlocker(ctx, c.keeper); err != nil {
		return ctx, err
	}
	return ctx, nil
}

func (c *chain) commit() {
	c.cms.Commit()
}
