package msgserver

import (
	"context"
	"errors"

	errorsmod "cosmossdk.io/errors"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/metrics"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
)

// labels for rejected registrations, in admission check order
var rejectionReasons = []struct {
	err    *errorsmod.Error
	reason string
}{
	{types.ErrInvalidWorkBlock, "invalid_work_block"},
	{types.ErrWorkRepeated, "work_repeated"},
	{types.ErrInvalidSeal, "invalid_seal"},
	{types.ErrInvalidDifficulty, "invalid_difficulty"},
	{types.ErrAlreadyRegistered, "already_registered"},
	{types.ErrToManyRegistrationsThisBlock, "too_many_registrations_this_block"},
	{types.ErrAllNeuronsImmune, "all_neurons_immune"},
}

func rejectionReason(err error) string {
	for _, r := range rejectionReasons {
		if errors.Is(err, r.err) {
			return r.reason
		}
	}
	return "other"
}

// Register admits a new hotkey against a proof of work.
func (ms msgServer) Register(ctx context.Context, msg *types.MsgRegister) (*types.MsgRegisterResponse, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	var uid uint32
	err := atomically(ctx, func(ctx context.Context) (err error) {
		uid, err = ms.k.Register(ctx, msg.BlockNumber, msg.Nonce, msg.Work, msg.Hotkey, msg.Coldkey)
		return err
	})
	if err != nil {
		metrics.IncrRegistrationRejected(rejectionReason(err))
		return nil, err
	}
	return &types.MsgRegisterResponse{Uid: uid}, nil
}
