package keeper_test

import (
	"errors"
	"math"

	"github.com/golang/mock/gomock"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *KeeperTestSuite) TestRegister() {
	coldkey := newAddress()
	hotkey := newAddress()
	block, nonce, work := s.seal(hotkey)

	uid, err := s.keeper.Register(s.ctx, block, nonce, work, hotkey, coldkey)
	s.Require().NoError(err)
	s.Require().Equal(keeper.Uid(0), uid)

	neuron, err := s.keeper.GetNeuron(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Equal(types.NewNeuron(0, hotkey, coldkey, startBlock), neuron)

	registeredAt, err := s.keeper.GetBlockAtRegistration(s.ctx, uid)
	s.Require().NoError(err)
	s.Require().Equal(uint64(startBlock), registeredAt)

	used, err := s.keeper.IsWorkUsed(s.ctx, work)
	s.Require().NoError(err)
	s.Require().True(used)

	thisBlock, err := s.keeper.GetRegistrationsThisBlock(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), thisBlock)
	thisInterval, err := s.keeper.GetRegistrationsThisInterval(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(1), thisInterval)

	s.requireEvent(types.EventTypeNeuronRegistered)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRegisterWorkBlockWindow() {
	hotkey := newAddress()
	hotkeyAddr := mustAccAddress(hotkey)

	for _, blockNumber := range []uint64{startBlock + 1, startBlock - types.WorkBlockWindow, 0} {
		work := types.CreateSealHash(blockNumber, 0, hotkeyAddr)
		_, err := s.keeper.Register(s.ctx, blockNumber, 0, work, hotkey, newAddress())
		s.Require().ErrorIs(err, types.ErrInvalidWorkBlock, "block %d", blockNumber)
	}

	oldest := uint64(startBlock - types.WorkBlockWindow + 1)
	work := types.CreateSealHash(oldest, 0, hotkeyAddr)
	_, err := s.keeper.Register(s.ctx, oldest, 0, work, hotkey, newAddress())
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestRegisterWorkRepeated() {
	hotkey := newAddress()
	block, nonce, work := s.seal(hotkey)
	_, err := s.keeper.Register(s.ctx, block, nonce, work, hotkey, newAddress())
	s.Require().NoError(err)

	_, err = s.keeper.Register(s.ctx, block, nonce, work, newAddress(), newAddress())
	s.Require().ErrorIs(err, types.ErrWorkRepeated)
}

func (s *KeeperTestSuite) TestRegisterInvalidSeal() {
	hotkey := newAddress()
	block, nonce, work := s.seal(hotkey)

	// seal of another hotkey
	_, err := s.keeper.Register(s.ctx, block, nonce, work, newAddress(), newAddress())
	s.Require().ErrorIs(err, types.ErrInvalidSeal)

	_, err = s.keeper.Register(s.ctx, block, nonce, work[:types.WorkLen-1], hotkey, newAddress())
	s.Require().ErrorIs(err, types.ErrInvalidSeal)

	_, err = s.keeper.Register(s.ctx, block, nonce+1, work, hotkey, newAddress())
	s.Require().ErrorIs(err, types.ErrInvalidSeal)
}

func (s *KeeperTestSuite) TestRegisterInvalidDifficulty() {
	_, err := s.keeper.SetDifficulty(s.ctx, math.MaxInt64)
	s.Require().NoError(err)

	hotkey := newAddress()
	work := types.CreateSealHash(startBlock, 0, mustAccAddress(hotkey))
	_, err = s.keeper.Register(s.ctx, startBlock, 0, work, hotkey, newAddress())
	s.Require().ErrorIs(err, types.ErrInvalidDifficulty)

	n, err := s.keeper.GetNeuronCount(s.ctx)
	s.Require().NoError(err)
	s.Require().Zero(n)
}

func (s *KeeperTestSuite) TestRegisterAlreadyRegistered() {
	coldkey := newAddress()
	_, hotkey := s.registerNeuron(coldkey)

	work := types.CreateSealHash(startBlock, 12345, mustAccAddress(hotkey))
	_, err := s.keeper.Register(s.ctx, startBlock, 12345, work, hotkey, coldkey)
	s.Require().ErrorIs(err, types.ErrAlreadyRegistered)
}

func (s *KeeperTestSuite) TestRegisterPerBlockLimit() {
	s.setParams(func(p *types.Params) { p.MaxRegistrationsPerBlock = 1 })
	s.registerNeuron(newAddress())

	hotkey := newAddress()
	block, nonce, work := s.seal(hotkey)
	_, err := s.keeper.Register(s.ctx, block, nonce, work, hotkey, newAddress())
	s.Require().ErrorIs(err, types.ErrToManyRegistrationsThisBlock)

	// the next block starts a fresh count
	s.Require().NoError(s.keeper.ResetRegistrationsThisBlock(s.ctx))
	_, err = s.keeper.Register(s.ctx, block, nonce, work, hotkey, newAddress())
	s.Require().NoError(err)
}

func (s *KeeperTestSuite) TestRegisterReplacesLowestScoringNeuron() {
	s.setParams(func(p *types.Params) {
		p.MaxAllowedUids = 2
		p.ImmunityPeriod = 0
	})
	hotkeys, coldkeys := s.registerNeurons(2)
	s.Require().NoError(s.keeper.SetStakeFromVector(s.ctx, []uint64{10, 20}))
	s.Require().NoError(s.keeper.SetWeightsFromMatrix(s.ctx, [][]uint32{{0, 1}, {1, 0}}))
	s.Require().NoError(s.keeper.SetBondsFromMatrix(s.ctx, [][]uint64{{0, 3}, {4, 0}}))

	// no step has run, every score is zero and the lowest uid goes
	s.bankKeeper.EXPECT().
		SendCoinsFromModuleToAccount(gomock.Any(), types.SubtensorStakingAccountName, mustAccAddress(coldkeys[0]), raoCoins(10)).
		Return(nil)
	newColdkey := newAddress()
	uid, newHotkey := s.registerNeuron(newColdkey)
	s.Require().Equal(keeper.Uid(0), uid)

	n, err := s.keeper.GetNeuronCount(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint32(2), n)

	registered, err := s.keeper.IsHotkeyRegistered(s.ctx, hotkeys[0])
	s.Require().NoError(err)
	s.Require().False(registered)

	neuron, err := s.keeper.GetNeuron(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(types.NewNeuron(0, newHotkey, newColdkey, startBlock), neuron)

	totalStake, err := s.keeper.GetTotalStake(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(20), totalStake)

	weights, err := s.keeper.GetWeights(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([][]uint32{{0, 0}, {0, 0}}, weights)
	bonds, err := s.keeper.GetBonds(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([][]uint64{{0, 0}, {0, 0}}, bonds)

	s.requireEvent(types.EventTypeNeuronPruned)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRegisterReplacesWhenRefundFails() {
	s.setParams(func(p *types.Params) {
		p.MaxAllowedUids = 2
		p.ImmunityPeriod = 0
	})
	hotkeys, coldkeys := s.registerNeurons(2)
	s.Require().NoError(s.keeper.SetStakeFromVector(s.ctx, []uint64{10, 20}))

	s.bankKeeper.EXPECT().
		SendCoinsFromModuleToAccount(gomock.Any(), types.SubtensorStakingAccountName, mustAccAddress(coldkeys[0]), raoCoins(10)).
		Return(errors.New("module account underfunded"))
	newColdkey := newAddress()
	uid, newHotkey := s.registerNeuron(newColdkey)
	s.Require().Equal(keeper.Uid(0), uid)

	registered, err := s.keeper.IsHotkeyRegistered(s.ctx, hotkeys[0])
	s.Require().NoError(err)
	s.Require().False(registered)

	neuron, err := s.keeper.GetNeuron(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(types.NewNeuron(0, newHotkey, newColdkey, startBlock), neuron)

	totalStake, err := s.keeper.GetTotalStake(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(20), totalStake)

	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRegisterAllNeuronsImmune() {
	s.setParams(func(p *types.Params) {
		p.MaxAllowedUids = 1
		p.ImmunityPeriod = 1000
	})
	s.registerNeuron(newAddress())
	s.Require().NoError(s.keeper.ResetRegistrationsThisBlock(s.ctx))

	hotkey := newAddress()
	block, nonce, work := s.seal(hotkey)
	_, err := s.keeper.Register(s.ctx, block, nonce, work, hotkey, newAddress())
	s.Require().ErrorIs(err, types.ErrAllNeuronsImmune)

	used, err := s.keeper.IsWorkUsed(s.ctx, work)
	s.Require().NoError(err)
	s.Require().False(used)
}
