package msgserver_test

import (
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

func (s *MsgServerTestSuite) TestRegister() {
	uid, hotkey := s.register()
	s.Require().Equal(uint32(0), uid)

	registered, err := s.keeper.IsHotkeyRegistered(s.ctx, hotkey)
	s.Require().NoError(err)
	s.Require().True(registered)
	s.Require().True(s.hasEvent(types.EventTypeNeuronRegistered))

	uid, _ = s.register()
	s.Require().Equal(uint32(1), uid)
}

func (s *MsgServerTestSuite) TestRegisterRejectionWritesNothing() {
	msg := s.registerMsg(newAddress(), newAddress())
	msg.Nonce++

	_, err := s.msgServer.Register(s.ctx, msg)
	s.Require().ErrorIs(err, types.ErrInvalidSeal)

	n, err := s.keeper.GetNeuronCount(s.ctx)
	s.Require().NoError(err)
	s.Require().Zero(n)
	used, err := s.keeper.IsWorkUsed(s.ctx, msg.Work)
	s.Require().NoError(err)
	s.Require().False(used)
	s.Require().False(s.hasEvent(types.EventTypeNeuronRegistered))
}

func (s *MsgServerTestSuite) TestRegisterInvalidSender() {
	msg := s.registerMsg(newAddress(), newAddress())
	msg.Sender = "not-an-address"

	_, err := s.msgServer.Register(s.ctx, msg)
	s.Require().Error(err)
}
