package msgserver_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *MsgServerTestSuite) TestServeAxon() {
	_, hotkey := s.register()

	_, err := s.msgServer.ServeAxon(s.ctx, &types.MsgServeAxon{
		Sender: hotkey,
		Ip:     "192.168.1.20",
		Port:   8091,
		IpType: types.IpTypeV4,
	})
	s.Require().NoError(err)

	neuron, err := s.keeper.GetNeuronForHotkey(s.ctx, hotkey)
	s.Require().NoError(err)
	s.Require().Equal("192.168.1.20", neuron.Axon.Ip)
	s.Require().Equal(uint32(8091), neuron.Axon.Port)
}

func (s *MsgServerTestSuite) TestServeAxonRejectsModality() {
	_, hotkey := s.register()

	_, err := s.msgServer.ServeAxon(s.ctx, &types.MsgServeAxon{
		Sender:   hotkey,
		Ip:       "192.168.1.20",
		IpType:   types.IpTypeV4,
		Modality: 2,
	})
	s.Require().ErrorIs(err, types.ErrInvalidModality)
}
