package msgserver_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *MsgServerTestSuite) TestUpdateParams() {
	_, err := s.msgServer.UpdateParams(s.ctx, &types.MsgUpdateParams{
		Sender: s.adminAddr,
		Params: types.OptionalParams{
			Rho:            []uint64{20},
			MaxWeightLimit: []uint32{1 << 30},
		},
	})
	s.Require().NoError(err)

	params, err := s.keeper.GetParams(s.ctx)
	s.Require().NoError(err)
	want := types.DefaultParams()
	want.Rho = 20
	want.MaxWeightLimit = 1 << 30
	s.Require().Equal(want, params)

	s.Require().True(s.hasEvent(types.ParamSetEventType("rho")))
	s.Require().True(s.hasEvent(types.ParamSetEventType("max_weight_limit")))
	s.Require().False(s.hasEvent(types.ParamSetEventType("kappa")))
}

func (s *MsgServerTestSuite) TestUpdateParamsIgnoresMultiValueFields() {
	_, err := s.msgServer.UpdateParams(s.ctx, &types.MsgUpdateParams{
		Sender: s.adminAddr,
		Params: types.OptionalParams{Kappa: []uint64{3, 4}},
	})
	s.Require().NoError(err)

	params, err := s.keeper.GetParams(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultParams().Kappa, params.Kappa)
}

func (s *MsgServerTestSuite) TestUpdateParamsUnauthorized() {
	_, err := s.msgServer.UpdateParams(s.ctx, &types.MsgUpdateParams{
		Sender: newAddress(),
		Params: types.OptionalParams{Rho: []uint64{20}},
	})
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	params, err := s.keeper.GetParams(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultParams(), params)
}

func (s *MsgServerTestSuite) TestUpdateParamsRejectsInvalid() {
	_, err := s.msgServer.UpdateParams(s.ctx, &types.MsgUpdateParams{
		Sender: s.adminAddr,
		Params: types.OptionalParams{
			Rho:                      []uint64{20},
			ValidatorExcludeQuantile: []uint32{150},
		},
	})
	s.Require().ErrorIs(err, types.ErrStorageValueOutOfRange)

	params, err := s.keeper.GetParams(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(types.DefaultParams(), params)
	s.Require().False(s.hasEvent(types.ParamSetEventType("rho")))
}

func (s *MsgServerTestSuite) TestSetDifficulty() {
	_, err := s.msgServer.SetDifficulty(s.ctx, &types.MsgSetDifficulty{Sender: s.adminAddr, Difficulty: 5000})
	s.Require().NoError(err)
	difficulty, err := s.keeper.GetDifficulty(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(5000), difficulty)

	_, err = s.msgServer.SetDifficulty(s.ctx, &types.MsgSetDifficulty{Sender: newAddress(), Difficulty: 7})
	s.Require().ErrorIs(err, types.ErrUnauthorized)
	difficulty, err = s.keeper.GetDifficulty(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(5000), difficulty)
}

func (s *MsgServerTestSuite) TestResetBonds() {
	s.register()
	s.register()
	s.Require().NoError(s.keeper.SetBondsFromMatrix(s.ctx, [][]uint64{{0, 9}, {9, 0}}))

	_, err := s.msgServer.ResetBonds(s.ctx, &types.MsgResetBonds{Sender: newAddress()})
	s.Require().ErrorIs(err, types.ErrUnauthorized)

	_, err = s.msgServer.ResetBonds(s.ctx, &types.MsgResetBonds{Sender: s.adminAddr})
	s.Require().NoError(err)
	bonds, err := s.keeper.GetBonds(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([][]uint64{{0, 0}, {0, 0}}, bonds)
	s.Require().True(s.hasEvent(types.EventTypeResetBonds))
}
