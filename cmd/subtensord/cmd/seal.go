package cmd

import (
	"context"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

const (
	flagBlock      = "block"
	flagDifficulty = "difficulty"
	flagStartNonce = "start-nonce"
	flagTimeout    = "timeout"
)

func NewSealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seal [hotkey]",
		Short: "Solve the registration proof of work for a hotkey",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hotkey, err := sdk.AccAddressFromBech32(args[0])
			if err != nil {
				return err
			}
			block, _ := cmd.Flags().GetUint64(flagBlock)
			difficulty, _ := cmd.Flags().GetUint64(flagDifficulty)
			startNonce, _ := cmd.Flags().GetUint64(flagStartNonce)
			timeout, _ := cmd.Flags().GetDuration(flagTimeout)

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()

			nonce, work, err := types.SolvePow(ctx, block, hotkey, difficulty, startNonce)
			if err != nil {
				return fmt.Errorf("no seal found for difficulty %d: %w", difficulty, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "block: %d\nnonce: %d\nwork: %s\n", block, nonce, hex.EncodeToString(work))
			return nil
		},
	}
	cmd.Flags().Uint64(flagBlock, 0, "block number the work is bound to")
	cmd.Flags().Uint64(flagDifficulty, types.DefaultDifficulty, "difficulty the seal must meet")
	cmd.Flags().Uint64(flagStartNonce, 0, "first nonce to try")
	cmd.Flags().Duration(flagTimeout, time.Minute, "give up after this long")
	return cmd
}
