package keeper_test

import (
	"errors"

	"github.com/golang/mock/gomock"
	subMath "github.com/opentensor/subtensor-deprecated/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

const stepEmission = 1_000_000_000

// setupThreeNeurons seeds stake 1:1:2 where 0 rates 1, 1 rates 2 and 2 splits
// between 0 and 1.
func (s *KeeperTestSuite) setupThreeNeurons() (hotkeys, coldkeys []string) {
	s.setParams(func(p *types.Params) {
		p.Rho = 10
		p.Kappa = 2
		p.BondsMovingAverage = 900_000
		p.SelfOwnership = 2
		p.ValidatorExcludeQuantile = 0
		p.ImmunityPeriod = 0
	})
	hotkeys, coldkeys = s.registerNeurons(3)
	s.Require().NoError(s.keeper.SetStakeFromVector(s.ctx, []uint64{1, 1, 2}))
	s.Require().NoError(s.keeper.SetWeightsFromMatrix(s.ctx, [][]uint32{
		{0, 7, 0},
		{0, 0, 100},
		{5, 5, 0},
	}))
	return hotkeys, coldkeys
}

func (s *KeeperTestSuite) requireUintNear(expected, actual, delta uint64) {
	diff := expected - actual
	if actual > expected {
		diff = actual - expected
	}
	s.Require().LessOrEqual(diff, delta, "want %d got %d", expected, actual)
}

func (s *KeeperTestSuite) TestRunMechanismStep() {
	s.setupThreeNeurons()

	s.bankKeeper.EXPECT().
		MintCoins(gomock.Any(), types.SubtensorStakingAccountName, gomock.Any()).
		Return(nil)
	s.Require().NoError(s.keeper.RunMechanismStep(s.ctx, stepEmission))

	emissions, err := s.keeper.GetEmissions(s.ctx)
	s.Require().NoError(err)
	s.requireUintNear(357278827, emissions[0], 2)
	s.requireUintNear(396870720, emissions[1], 2)
	s.requireUintNear(245850452, emissions[2], 2)

	var total uint64
	for _, e := range emissions {
		total += e
	}
	s.Require().LessOrEqual(total, uint64(stepEmission))

	stakes, err := s.keeper.GetStakes(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([]uint64{1 + emissions[0], 1 + emissions[1], 2 + emissions[2]}, stakes)

	totalStake, err := s.keeper.GetTotalStake(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(4+total, totalStake)
	issuance, err := s.keeper.GetTotalIssuance(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(total, issuance)

	ranks, err := s.keeper.GetRanks(s.ctx)
	s.Require().NoError(err)
	epsilon := subMath.MustNewFixedFromString("0.000000001")
	s.Require().True(subMath.InDelta(subMath.NewFixedFromFraction(1, 2), subMath.NewFixedFromUnitFraction(ranks[1]), epsilon))

	bonds, err := s.keeper.GetBondRow(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Len(bonds, 1)
	s.Require().Equal(uint32(1), bonds[0].Uid)

	last, err := s.keeper.GetLastMechanismStepBlock(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(startBlock), last)

	// neuron 0 has the lowest pruning score
	marked, err := s.keeper.IsMarkedForPruning(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().True(marked)
	score0, err := s.keeper.GetPruningScore(s.ctx, 0)
	s.Require().NoError(err)
	score1, err := s.keeper.GetPruningScore(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().True(score0.LT(score1))

	s.requireEvent(types.EventTypeMechanismStep)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRunMechanismStepMintFailureIsNotFatal() {
	s.setupThreeNeurons()

	s.bankKeeper.EXPECT().
		MintCoins(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("minting disabled"))
	s.Require().NoError(s.keeper.RunMechanismStep(s.ctx, stepEmission))

	issuance, err := s.keeper.GetTotalIssuance(s.ctx)
	s.Require().NoError(err)
	s.Require().NotZero(issuance)
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestRunMechanismStepWithoutWeightsMintsNothing() {
	s.registerNeurons(2)
	s.Require().NoError(s.keeper.SetStakeFromVector(s.ctx, []uint64{3, 4}))

	// no MintCoins expectation, zero emission never reaches the bank
	s.Require().NoError(s.keeper.RunMechanismStep(s.ctx, stepEmission))

	stakes, err := s.keeper.GetStakes(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([]uint64{3, 4}, stakes)
}

func (s *KeeperTestSuite) TestRegisterReclaimsMarkedNeuron() {
	_, coldkeys := s.setupThreeNeurons()
	s.bankKeeper.EXPECT().MintCoins(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	s.Require().NoError(s.keeper.RunMechanismStep(s.ctx, stepEmission))

	s.setParams(func(p *types.Params) { p.MaxAllowedUids = 3 })
	stake0, err := s.keeper.GetNeuron(s.ctx, 0)
	s.Require().NoError(err)
	s.bankKeeper.EXPECT().
		SendCoinsFromModuleToAccount(gomock.Any(), types.SubtensorStakingAccountName, mustAccAddress(coldkeys[0]), raoCoins(int64(stake0.Stake))).
		Return(nil)

	uid, _ := s.registerNeuron(newAddress())
	s.Require().Equal(keeper.Uid(0), uid)

	marked, err := s.keeper.IsMarkedForPruning(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().False(marked)
	score, err := s.keeper.GetPruningScore(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().True(score.IsZero())

	// rows of the other neurons no longer point at the reclaimed uid
	weights, err := s.keeper.GetWeights(s.ctx)
	s.Require().NoError(err)
	for _, row := range weights {
		s.Require().Zero(row[0])
	}
	s.requireInvariants()
}

func (s *KeeperTestSuite) TestResetBonds() {
	s.registerNeurons(2)
	s.Require().NoError(s.keeper.SetBondsFromMatrix(s.ctx, [][]uint64{{0, 3}, {4, 0}}))

	s.Require().NoError(s.keeper.ResetBonds(s.ctx))

	bonds, err := s.keeper.GetBonds(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([][]uint64{{0, 0}, {0, 0}}, bonds)
	s.requireEvent(types.EventTypeResetBonds)
}
