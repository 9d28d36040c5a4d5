package keeper_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *KeeperTestSuite) TestGenesisRoundTrip() {
	params := types.DefaultParams()
	params.MinimumDifficulty = 50
	genesis := &types.GenesisState{
		Params:        params,
		Difficulty:    10,
		TotalIssuance: 99,
		Neurons: []types.GenesisNeuron{
			{Hotkey: newAddress(), Coldkey: newAddress(), Stake: 40},
			{Hotkey: newAddress(), Coldkey: newAddress()},
		},
	}
	s.Require().NoError(s.keeper.InitGenesis(s.ctx, genesis))

	totalStake, err := s.keeper.GetTotalStake(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(40), totalStake)
	uid, err := s.keeper.GetUidForHotkey(s.ctx, genesis.Neurons[1].Hotkey)
	s.Require().NoError(err)
	s.Require().Equal(uint32(1), uid)
	s.requireInvariants()

	exported, err := s.keeper.ExportGenesis(s.ctx)
	s.Require().NoError(err)
	// difficulty is stored clamped
	genesis.Difficulty = 50
	s.Require().Equal(genesis, exported)
}

func (s *KeeperTestSuite) TestInitGenesisRejectsDuplicateHotkeys() {
	hotkey := newAddress()
	genesis := types.DefaultGenesis()
	genesis.Neurons = []types.GenesisNeuron{
		{Hotkey: hotkey, Coldkey: newAddress()},
		{Hotkey: hotkey, Coldkey: newAddress()},
	}
	err := s.keeper.InitGenesis(s.ctx, genesis)
	s.Require().ErrorIs(err, types.ErrInvalidGenesis)
}

func (s *KeeperTestSuite) TestInvariantsCatchStakeDrift() {
	s.registerNeurons(1)
	s.Require().NoError(s.keeper.SetStakeFromVector(s.ctx, []uint64{5}))
	s.Require().NoError(s.keeper.SetTotalStake(s.ctx, 6))

	_, broken := keeper.TotalStakeEqualsNeuronStake(s.keeper)(s.ctx)
	s.Require().True(broken)
}
