package msgserver_test

import (
	cosmosMath "cosmossdk.io/math"
	"github.com/golang/mock/gomock"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
)

func (s *MsgServerTestSuite) TestAddAndRemoveStake() {
	s.Require().NoError(s.keeper.ResetRegistrationsThisBlock(s.ctx))
	hotkey := newAddress()
	coldkey := newAddress()
	_, err := s.msgServer.Register(s.ctx, s.registerMsg(hotkey, coldkey))
	s.Require().NoError(err)

	s.bankKeeper.EXPECT().
		GetBalance(gomock.Any(), gomock.Any(), types.DefaultBondDenom).
		Return(sdk.NewCoin(types.DefaultBondDenom, cosmosMath.NewInt(100)))
	s.bankKeeper.EXPECT().
		SendCoinsFromAccountToModule(gomock.Any(), gomock.Any(), types.SubtensorStakingAccountName, gomock.Any()).
		Return(nil)
	_, err = s.msgServer.AddStake(s.ctx, &types.MsgAddStake{Sender: coldkey, Hotkey: hotkey, Amount: 100})
	s.Require().NoError(err)

	s.bankKeeper.EXPECT().
		SendCoinsFromModuleToAccount(gomock.Any(), types.SubtensorStakingAccountName, gomock.Any(), gomock.Any()).
		Return(nil)
	_, err = s.msgServer.RemoveStake(s.ctx, &types.MsgRemoveStake{Sender: coldkey, Hotkey: hotkey, Amount: 30})
	s.Require().NoError(err)

	stakes, err := s.keeper.GetStakes(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal([]uint64{70}, stakes)
	totalStake, err := s.keeper.GetTotalStake(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(uint64(70), totalStake)
}

func (s *MsgServerTestSuite) TestRemoveStakeFromOthersHotkey() {
	_, hotkey := s.register()

	_, err := s.msgServer.RemoveStake(s.ctx, &types.MsgRemoveStake{Sender: newAddress(), Hotkey: hotkey, Amount: 1})
	s.Require().ErrorIs(err, types.ErrNonAssociatedColdKey)
}
