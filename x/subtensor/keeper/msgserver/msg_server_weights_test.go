package msgserver_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *MsgServerTestSuite) TestSetWeights() {
	_, hotkey := s.register()
	s.register()

	_, err := s.msgServer.SetWeights(s.ctx, &types.MsgSetWeights{
		Sender:  hotkey,
		Uids:    []uint32{1},
		Weights: []uint32{10},
	})
	s.Require().NoError(err)

	weights, err := s.keeper.GetWeights(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([][]uint32{{0, 4294967295}, {0, 0}}, weights)
	s.Require().True(s.hasEvent(types.EventTypeWeightsSet))
}

func (s *MsgServerTestSuite) TestSetWeightsRejected() {
	_, hotkey := s.register()

	_, err := s.msgServer.SetWeights(s.ctx, &types.MsgSetWeights{
		Sender:  hotkey,
		Uids:    []uint32{0, 1},
		Weights: []uint32{10},
	})
	s.Require().ErrorIs(err, types.ErrWeightVecNotEqualSize)
	s.Require().False(s.hasEvent(types.EventTypeWeightsSet))
}
