package cmd

import (
	"context"
	"fmt"

	cosmosMath "cosmossdk.io/math"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	authtypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

var _ types.BankKeeper = (*ledgerBank)(nil)

// ledgerBank is a single-denom balance sheet standing in for x/bank when the
// module runs outside an app.
type ledgerBank struct {
	balances map[string]cosmosMath.Int
}

func newLedgerBank() *ledgerBank {
	return &ledgerBank{balances: make(map[string]cosmosMath.Int)}
}

func moduleAccount(name string) string {
	return authtypes.NewModuleAddress(name).String()
}

func (b *ledgerBank) balance(addr string) cosmosMath.Int {
	if v, ok := b.balances[addr]; ok {
		return v
	}
	return cosmosMath.ZeroInt()
}

func (b *ledgerBank) credit(addr string, amount cosmosMath.Int) {
	b.balances[addr] = b.balance(addr).Add(amount)
}

func (b *ledgerBank) move(from, to string, amt sdk.Coins) error {
	amount := amt.AmountOf(types.DefaultBondDenom)
	if b.balance(from).LT(amount) {
		return fmt.Errorf("%s holds %s, need %s", from, b.balance(from), amount)
	}
	b.balances[from] = b.balance(from).Sub(amount)
	b.credit(to, amount)
	return nil
}

func (b *ledgerBank) GetBalance(_ context.Context, addr sdk.AccAddress, denom string) sdk.Coin {
	if denom != types.DefaultBondDenom {
		return sdk.NewCoin(denom, cosmosMath.ZeroInt())
	}
	return sdk.NewCoin(denom, b.balance(addr.String()))
}

func (b *ledgerBank) SendCoinsFromAccountToModule(_ context.Context, senderAddr sdk.AccAddress, recipientModule string, amt sdk.Coins) error {
	return b.move(senderAddr.String(), moduleAccount(recipientModule), amt)
}

func (b *ledgerBank) SendCoinsFromModuleToAccount(_ context.Context, senderModule string, recipientAddr sdk.AccAddress, amt sdk.Coins) error {
	return b.move(moduleAccount(senderModule), recipientAddr.String(), amt)
}

func (b *ledgerBank) MintCoins(_ context.Context, moduleName string, amt sdk.Coins) error {
	b.credit(moduleAccount(moduleName), amt.AmountOf(types.DefaultBondDenom))
	return nil
}
