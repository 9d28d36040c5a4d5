package types

import (
	"cosmossdk.io/errors"
	sdk "github.com/cosmos/cosmos-sdk/types"
	sdkerrors "github.com/cosmos/cosmos-sdk/types/errors"
)

// MsgSetWeights replaces the sender hotkey's outgoing weight row.
type MsgSetWeights struct {
	Sender  string   `json:"sender"`
	Uids    []uint32 `json:"uids"`
	Weights []uint32 `json:"weights"`
}

type MsgSetWeightsResponse struct{}

// MsgAddStake moves Amount from the sender coldkey's balance to Hotkey's stake.
type MsgAddStake struct {
	Sender string `json:"sender"`
	Hotkey string `json:"hotkey"`
	Amount uint64 `json:"amount"`
}

type MsgAddStakeResponse struct{}

// MsgRemoveStake moves Amount of Hotkey's stake back to the sender coldkey.
type MsgRemoveStake struct {
	Sender string `json:"sender"`
	Hotkey string `json:"hotkey"`
	Amount uint64 `json:"amount"`
}

type MsgRemoveStakeResponse struct{}

// MsgServeAxon records the endpoint served by the sender hotkey.
type MsgServeAxon struct {
	Sender   string `json:"sender"`
	Version  uint32 `json:"version"`
	Ip       string `json:"ip"`
	Port     uint32 `json:"port"`
	IpType   uint32 `json:"ip_type"`
	Modality uint32 `json:"modality"`
}

type MsgServeAxonResponse struct{}

// MsgRegister admits Hotkey into the registry against a proof of work.
type MsgRegister struct {
	Sender      string `json:"sender"`
	BlockNumber uint64 `json:"block_number"`
	Nonce       uint64 `json:"nonce"`
	Work        []byte `json:"work"`
	Hotkey      string `json:"hotkey"`
	Coldkey     string `json:"coldkey"`
}

type MsgRegisterResponse struct {
	Uid uint32 `json:"uid"`
}

type MsgUpdateParams struct {
	Sender string         `json:"sender"`
	Params OptionalParams `json:"params"`
}

type MsgUpdateParamsResponse struct{}

// MsgSetDifficulty overrides the registration difficulty, within the configured bounds.
type MsgSetDifficulty struct {
	Sender     string `json:"sender"`
	Difficulty uint64 `json:"difficulty"`
}

type MsgSetDifficultyResponse struct{}

// MsgResetBonds zeroes every bond row.
type MsgResetBonds struct {
	Sender string `json:"sender"`
}

type MsgResetBondsResponse struct{}

func validateAddress(field, addr string) error {
	if _, err := sdk.AccAddressFromBech32(addr); err != nil {
		return errors.Wrapf(sdkerrors.ErrInvalidAddress, "invalid %s address (%s)", field, err)
	}
	return nil
}

func (msg *MsgSetWeights) Validate() error {
	return validateAddress("sender", msg.Sender)
}

func (msg *MsgAddStake) Validate() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	return validateAddress("hotkey", msg.Hotkey)
}

func (msg *MsgRemoveStake) Validate() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	return validateAddress("hotkey", msg.Hotkey)
}

func (msg *MsgServeAxon) Validate() error {
	return validateAddress("sender", msg.Sender)
}

func (msg *MsgRegister) Validate() error {
	if err := validateAddress("sender", msg.Sender); err != nil {
		return err
	}
	if err := validateAddress("hotkey", msg.Hotkey); err != nil {
		return err
	}
	return validateAddress("coldkey", msg.Coldkey)
}

func (msg *MsgUpdateParams) Validate() error {
	return validateAddress("sender", msg.Sender)
}

func (msg *MsgSetDifficulty) Validate() error {
	return validateAddress("sender", msg.Sender)
}

func (msg *MsgResetBonds) Validate() error {
	return validateAddress("sender", msg.Sender)
}
