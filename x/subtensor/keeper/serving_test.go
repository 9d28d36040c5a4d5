package keeper_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *KeeperTestSuite) TestServeAxon() {
	_, hotkey := s.registerNeuron(newAddress())

	axon := types.AxonInfo{Version: 2, Ip: "10.0.0.1", Port: 8091, IpType: types.IpTypeV4}
	s.Require().NoError(s.keeper.ServeAxon(s.ctx, hotkey, axon))

	neuron, err := s.keeper.GetNeuronForHotkey(s.ctx, hotkey)
	s.Require().NoError(err)
	s.Require().Equal(axon, neuron.Axon)
	s.requireEvent(types.EventTypeAxonServed)

	v6 := types.AxonInfo{Version: 2, Ip: "2001:db8::1", Port: 8091, IpType: types.IpTypeV6}
	s.Require().NoError(s.keeper.ServeAxon(s.ctx, hotkey, v6))
}

func (s *KeeperTestSuite) TestServeAxonValidation() {
	_, hotkey := s.registerNeuron(newAddress())

	tests := []struct {
		name    string
		axon    types.AxonInfo
		wantErr error
	}{
		{"unknown ip type", types.AxonInfo{Ip: "10.0.0.1", IpType: 5}, types.ErrInvalidIpType},
		{"unparseable", types.AxonInfo{Ip: "not-an-ip", IpType: types.IpTypeV4}, types.ErrInvalidIpAddress},
		{"unspecified v4", types.AxonInfo{Ip: "0.0.0.0", IpType: types.IpTypeV4}, types.ErrInvalidIpAddress},
		{"unspecified v6", types.AxonInfo{Ip: "::", IpType: types.IpTypeV6}, types.ErrInvalidIpAddress},
		{"v6 labelled v4", types.AxonInfo{Ip: "2001:db8::1", IpType: types.IpTypeV4}, types.ErrInvalidIpAddress},
		{"v4 labelled v6", types.AxonInfo{Ip: "10.0.0.1", IpType: types.IpTypeV6}, types.ErrInvalidIpAddress},
		{"image modality", types.AxonInfo{Ip: "10.0.0.1", IpType: types.IpTypeV4, Modality: 1}, types.ErrInvalidModality},
	}
	for _, tc := range tests {
		s.Run(tc.name, func() {
			err := s.keeper.ServeAxon(s.ctx, hotkey, tc.axon)
			s.Require().ErrorIs(err, tc.wantErr)
		})
	}

	neuron, err := s.keeper.GetNeuronForHotkey(s.ctx, hotkey)
	s.Require().NoError(err)
	s.Require().Equal(types.AxonInfo{}, neuron.Axon)
}

func (s *KeeperTestSuite) TestServeAxonUnregistered() {
	axon := types.AxonInfo{Ip: "10.0.0.1", IpType: types.IpTypeV4}
	err := s.keeper.ServeAxon(s.ctx, newAddress(), axon)
	s.Require().ErrorIs(err, types.ErrNotRegistered)
}
