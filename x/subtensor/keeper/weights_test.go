package keeper_test

import (
	"math"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *KeeperTestSuite) TestSetWeightsStoresNormalizedRow() {
	hotkeys, _ := s.registerNeurons(3)
	s.ctx = s.ctx.WithBlockHeight(startBlock + 5)

	err := s.keeper.SetWeights(s.ctx, hotkeys[0], []uint32{2, 1}, []uint32{2, 1})
	s.Require().NoError(err)

	row, err := s.keeper.GetWeightRow(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(types.WeightRow{
		{Uid: 1, Weight: 1431655765},
		{Uid: 2, Weight: 2863311530},
	}, row)

	neuron, err := s.keeper.GetNeuron(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(uint64(startBlock+5), neuron.LastUpdate)
	s.requireEvent(types.EventTypeWeightsSet)
}

func (s *KeeperTestSuite) TestSetWeightsDropsZeroWeights() {
	hotkeys, _ := s.registerNeurons(2)

	err := s.keeper.SetWeights(s.ctx, hotkeys[0], []uint32{0, 1}, []uint32{5, 0})
	s.Require().NoError(err)

	row, err := s.keeper.GetWeightRow(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(types.WeightRow{{Uid: 0, Weight: math.MaxUint32}}, row)
}

func (s *KeeperTestSuite) TestSetWeightsValidation() {
	hotkeys, _ := s.registerNeurons(2)

	tests := []struct {
		name    string
		hotkey  string
		params  func(p *types.Params)
		uids    []uint32
		weights []uint32
		wantErr error
	}{
		{
			name:    "unregistered hotkey",
			hotkey:  newAddress(),
			uids:    []uint32{0},
			weights: []uint32{1},
			wantErr: types.ErrNotRegistered,
		},
		{
			name:    "length mismatch",
			hotkey:  hotkeys[0],
			uids:    []uint32{0, 1},
			weights: []uint32{1},
			wantErr: types.ErrWeightVecNotEqualSize,
		},
		{
			name:    "duplicate uids",
			hotkey:  hotkeys[0],
			uids:    []uint32{1, 1},
			weights: []uint32{1, 2},
			wantErr: types.ErrDuplicateUids,
		},
		{
			name:    "uid outside registry",
			hotkey:  hotkeys[0],
			uids:    []uint32{5},
			weights: []uint32{1},
			wantErr: types.ErrInvalidUid,
		},
		{
			name:    "too few non-zero weights",
			hotkey:  hotkeys[0],
			params:  func(p *types.Params) { p.MinAllowedWeights = 2 },
			uids:    []uint32{0, 1},
			weights: []uint32{1, 0},
			wantErr: types.ErrNotSettingEnoughWeights,
		},
		{
			name:    "max min ratio",
			hotkey:  hotkeys[0],
			params:  func(p *types.Params) { p.MaxAllowedMaxMinRatio = 2 },
			uids:    []uint32{0, 1},
			weights: []uint32{1, 3},
			wantErr: types.ErrMaxAllowedMaxMinRatioExceeded,
		},
		{
			name:    "single weight above limit",
			hotkey:  hotkeys[0],
			params:  func(p *types.Params) { p.MaxWeightLimit = math.MaxUint32 / 2 },
			uids:    []uint32{1},
			weights: []uint32{1},
			wantErr: types.ErrMaxWeightExceeded,
		},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			s.setParams(func(p *types.Params) {
				*p = types.DefaultParams()
				if tc.params != nil {
					tc.params(p)
				}
			})
			err := s.keeper.SetWeights(s.ctx, tc.hotkey, tc.uids, tc.weights)
			s.Require().ErrorIs(err, tc.wantErr)
		})
	}
}

func (s *KeeperTestSuite) TestSetWeightsRejectedCallKeepsRow() {
	hotkeys, _ := s.registerNeurons(2)
	s.Require().NoError(s.keeper.SetWeights(s.ctx, hotkeys[0], []uint32{1}, []uint32{1}))
	before, err := s.keeper.GetWeightRow(s.ctx, 0)
	s.Require().NoError(err)

	s.ctx = s.ctx.WithBlockHeight(startBlock + 1)
	err = s.keeper.SetWeights(s.ctx, hotkeys[0], []uint32{0, 0}, []uint32{1, 1})
	s.Require().ErrorIs(err, types.ErrDuplicateUids)

	after, err := s.keeper.GetWeightRow(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(before, after)
	neuron, err := s.keeper.GetNeuron(s.ctx, 0)
	s.Require().NoError(err)
	s.Require().Equal(uint64(startBlock), neuron.LastUpdate)
}

func (s *KeeperTestSuite) TestSetWeightsRejectsInactiveTarget() {
	hotkeys, _ := s.registerNeurons(2)
	neuron, err := s.keeper.GetNeuron(s.ctx, 1)
	s.Require().NoError(err)
	neuron.Active = 0
	s.Require().NoError(s.keeper.SetNeuron(s.ctx, neuron))

	err = s.keeper.SetWeights(s.ctx, hotkeys[0], []uint32{1}, []uint32{1})
	s.Require().ErrorIs(err, types.ErrInvalidUid)
}
