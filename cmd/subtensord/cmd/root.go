package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the subtensord command tree.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "subtensord",
		Short:         "Incentive mechanism and registration tooling for the subtensor module",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(
		NewGenesisCmd(),
		NewSealCmd(),
		NewSimulateCmd(),
	)
	return rootCmd
}
