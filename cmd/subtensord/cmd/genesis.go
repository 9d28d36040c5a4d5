package cmd

import (
	"fmt"
	"os"

	"github.com/cometbft/cometbft/crypto/secp256k1"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

const (
	flagNeurons = "neurons"
	flagStake   = "stake"
	flagSeed    = "seed"
	flagOut     = "out"
)

func NewGenesisCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "genesis",
		Short: "Print a genesis TOML with the default params and generated neurons",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			neurons, _ := cmd.Flags().GetUint32(flagNeurons)
			stake, _ := cmd.Flags().GetUint64(flagStake)
			seed, _ := cmd.Flags().GetInt64(flagSeed)
			out, _ := cmd.Flags().GetString(flagOut)

			gs := generateGenesis(neurons, stake, seed)
			if err := gs.Validate(); err != nil {
				return err
			}
			bz, err := types.MarshalGenesisTOML(gs)
			if err != nil {
				return err
			}
			if out == "" {
				_, err = cmd.OutOrStdout().Write(bz)
				return err
			}
			return os.WriteFile(out, bz, 0o600)
		},
	}
	cmd.Flags().Uint32(flagNeurons, 8, "number of neurons to generate")
	cmd.Flags().Uint64(flagStake, 1_000_000_000, "stake of every generated neuron")
	cmd.Flags().Int64(flagSeed, 1, "seed the generated keys derive from")
	cmd.Flags().String(flagOut, "", "write to this file instead of stdout")
	return cmd
}

// deterministicAddress derives an account address from a label so that the same
// seed always yields the same registry.
func deterministicAddress(label string) sdk.AccAddress {
	return sdk.AccAddress(secp256k1.GenPrivKeySecp256k1([]byte(label)).PubKey().Address())
}

func generateGenesis(neurons uint32, stake uint64, seed int64) *types.GenesisState {
	gs := types.DefaultGenesis()
	for i := uint32(0); i < neurons; i++ {
		gs.Neurons = append(gs.Neurons, types.GenesisNeuron{
			Hotkey:  deterministicAddress(fmt.Sprintf("hotkey-%d-%d", seed, i)).String(),
			Coldkey: deterministicAddress(fmt.Sprintf("coldkey-%d-%d", seed, i)).String(),
			Stake:   stake,
		})
	}
	return gs
}
