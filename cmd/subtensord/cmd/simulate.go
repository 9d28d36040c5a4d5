package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"math/rand"
	"text/tabwriter"

	"cosmossdk.io/log"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/keeper/queryserver"
	"github.com/opentensor/subtensor-deprecated/x/subtensor/types"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/spf13/cobra"
)

const (
	flagGenesis               = "genesis"
	flagBlocks                = "blocks"
	flagWeightsEvery          = "weights-every"
	flagRegistrationsPerBlock = "registrations-per-block"
	flagOutput                = "output"
	flagVerbose               = "verbose"
)

type simulationConfig struct {
	genesis               *types.GenesisState
	blocks                int64
	weightsEvery          int64
	registrationsPerBlock int
	seed                  int64
	logger                log.Logger
}

type neuronSummary struct {
	Uid       uint32  `json:"uid"`
	Hotkey    string  `json:"hotkey"`
	Active    bool    `json:"active"`
	Stake     uint64  `json:"stake"`
	Rank      float64 `json:"rank"`
	Trust     float64 `json:"trust"`
	Consensus float64 `json:"consensus"`
	Incentive float64 `json:"incentive"`
	Dividends float64 `json:"dividends"`
	Emission  uint64  `json:"emission"`
}

type simulationSummary struct {
	Height           int64           `json:"height"`
	TotalStake       uint64          `json:"total_stake"`
	TotalIssuance    uint64          `json:"total_issuance"`
	Difficulty       uint64          `json:"difficulty"`
	Registrations    uint64          `json:"registrations"`
	RejectedWeights  uint64          `json:"rejected_weights"`
	RejectedRegister uint64          `json:"rejected_registrations"`
	Neurons          []neuronSummary `json:"neurons"`
}

func NewSimulateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the module on an in-memory store and print the resulting metagraph",
		Long: `Runs the begin blocker for the requested number of blocks. Every neuron resets its
weights to random targets on a fixed cadence and new hotkeys may register each block
by solving the proof of work at the current difficulty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := simulationConfig{}
			genesisPath, _ := cmd.Flags().GetString(flagGenesis)
			cfg.blocks, _ = cmd.Flags().GetInt64(flagBlocks)
			cfg.weightsEvery, _ = cmd.Flags().GetInt64(flagWeightsEvery)
			cfg.registrationsPerBlock, _ = cmd.Flags().GetInt(flagRegistrationsPerBlock)
			cfg.seed, _ = cmd.Flags().GetInt64(flagSeed)
			output, _ := cmd.Flags().GetString(flagOutput)
			verbose, _ := cmd.Flags().GetBool(flagVerbose)

			if genesisPath != "" {
				gs, err := types.ReadGenesisTOML(genesisPath)
				if err != nil {
					return err
				}
				cfg.genesis = gs
			} else {
				neurons, _ := cmd.Flags().GetUint32(flagNeurons)
				stake, _ := cmd.Flags().GetUint64(flagStake)
				cfg.genesis = generateGenesis(neurons, stake, cfg.seed)
			}
			cfg.logger = log.NewNopLogger()
			if verbose {
				cfg.logger = log.NewLogger(cmd.ErrOrStderr())
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			summary, err := runSimulation(ctx, cfg)
			if err != nil {
				return err
			}
			switch output {
			case "json":
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			case "text":
				return writeSummary(cmd.OutOrStdout(), summary)
			default:
				return fmt.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().String(flagGenesis, "", "genesis TOML to start from, generated when empty")
	cmd.Flags().Uint32(flagNeurons, 8, "neurons to generate when no genesis is given")
	cmd.Flags().Uint64(flagStake, 1_000_000_000, "stake of every generated neuron")
	cmd.Flags().Int64(flagSeed, 1, "seed for generated keys and weights")
	cmd.Flags().Int64(flagBlocks, 300, "blocks to run")
	cmd.Flags().Int64(flagWeightsEvery, 10, "blocks between weight updates")
	cmd.Flags().Int(flagRegistrationsPerBlock, 0, "registrations attempted every block")
	cmd.Flags().String(flagOutput, "text", "output format (text|json)")
	cmd.Flags().Bool(flagVerbose, false, "log module output to stderr")
	return cmd
}

func runSimulation(ctx context.Context, cfg simulationConfig) (*simulationSummary, error) {
	c, err := newChain(cfg.logger, deterministicAddress("authority").String())
	if err != nil {
		return nil, err
	}
	if err := c.initGenesis(cfg.genesis); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.seed)) //nolint:gosec
	summary := &simulationSummary{}
	for i := int64(0); i < cfg.blocks; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		blockCtx, err := c.nextBlock()
		if err != nil {
			return nil, err
		}
		if cfg.weightsEvery > 0 && c.height%cfg.weightsEvery == 0 {
			if err := setRandomWeights(blockCtx, c.keeper, rng, summary); err != nil {
				return nil, err
			}
		}
		for r := 0; r < cfg.registrationsPerBlock; r++ {
			label := fmt.Sprintf("%d-%d-%d", cfg.seed, c.height, r)
			if err := registerHotkey(ctx, blockCtx, c.keeper, label, summary); err != nil {
				return nil, err
			}
		}
		c.commit()
	}

	queryCtx := c.context()
	if msg, broken := keeper.AllInvariants(c.keeper)(queryCtx); broken {
		return nil, fmt.Errorf("invariant broken after %d blocks: %s", c.height, msg)
	}
	return summarize(queryCtx, c.keeper, c.height, summary)
}

// deliver runs fn on a branch of the block state that is only written back on success.
func deliver(ctx sdk.Context, fn func(ctx sdk.Context) error) error {
	cacheCtx, write := ctx.CacheContext()
	if err := fn(cacheCtx); err != nil {
		return err
	}
	write()
	return nil
}

// setRandomWeights has every neuron rate a random subset of the registry.
func setRandomWeights(ctx sdk.Context, k keeper.Keeper, rng *rand.Rand, summary *simulationSummary) error {
	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return err
	}
	n := len(neurons)
	for _, neuron := range neurons {
		perm := rng.Perm(n)[:rng.Intn(n)+1]
		uids := make([]uint32, len(perm))
		weights := make([]uint32, len(perm))
		for i, target := range perm {
			uids[i] = uint32(target)
			weights[i] = uint32(rng.Intn(1000)) + 1
		}
		err := deliver(ctx, func(ctx sdk.Context) error {
			return k.SetWeights(ctx, neuron.Hotkey, uids, weights)
		})
		if err != nil {
			summary.RejectedWeights++
			k.Logger(ctx).Debug("weights rejected", "uid", neuron.Uid, "error", err)
		}
	}
	return nil
}

// registerHotkey solves the current difficulty for a new hotkey and registers it.
func registerHotkey(ctx context.Context, blockCtx sdk.Context, k keeper.Keeper, label string, summary *simulationSummary) error {
	hotkey := deterministicAddress("register-hotkey-" + label)
	coldkey := deterministicAddress("register-coldkey-" + label)
	difficulty, err := k.GetDifficulty(blockCtx)
	if err != nil {
		return err
	}
	block := uint64(blockCtx.BlockHeight())
	nonce, work, err := types.SolvePow(ctx, block, hotkey, difficulty, 0)
	if err != nil {
		return err
	}
	err = deliver(blockCtx, func(ctx sdk.Context) error {
		_, err := k.Register(ctx, block, nonce, work, hotkey.String(), coldkey.String())
		return err
	})
	if err != nil {
		summary.RejectedRegister++
		k.Logger(blockCtx).Debug("registration rejected", "hotkey", hotkey.String(), "error", err)
		return nil
	}
	summary.Registrations++
	return nil
}

func unitFraction(v uint64) float64 {
	return float64(v) / math.MaxUint64
}

func summarize(ctx sdk.Context, k keeper.Keeper, height int64, summary *simulationSummary) (*simulationSummary, error) {
	qs := queryserver.NewQueryServerImpl(k)
	step, err := qs.GetStepState(ctx, &types.GetStepStateRequest{})
	if err != nil {
		return nil, err
	}
	registration, err := qs.GetRegistrationState(ctx, &types.GetRegistrationStateRequest{})
	if err != nil {
		return nil, err
	}
	metagraph, err := qs.GetMetagraph(ctx, &types.GetMetagraphRequest{})
	if err != nil {
		return nil, err
	}
	summary.Height = height
	summary.TotalStake = step.TotalStake
	summary.TotalIssuance = step.TotalIssuance
	summary.Difficulty = registration.Difficulty

	neurons, err := k.GetAllNeurons(ctx)
	if err != nil {
		return nil, err
	}
	summary.Neurons = make([]neuronSummary, metagraph.N)
	for i := range summary.Neurons {
		summary.Neurons[i] = neuronSummary{
			Uid:       uint32(i),
			Hotkey:    neurons[i].Hotkey,
			Active:    metagraph.Active[i] == 1,
			Stake:     metagraph.Stake[i],
			Rank:      unitFraction(metagraph.Rank[i]),
			Trust:     unitFraction(metagraph.Trust[i]),
			Consensus: unitFraction(metagraph.Consensus[i]),
			Incentive: unitFraction(metagraph.Incentive[i]),
			Dividends: unitFraction(metagraph.Dividends[i]),
			Emission:  metagraph.Emission[i],
		}
	}
	return summary, nil
}

func writeSummary(w io.Writer, s *simulationSummary) error {
	fmt.Fprintf(w, "height: %d\ntotal stake: %d\ntotal issuance: %d\ndifficulty: %d\n", s.Height, s.TotalStake, s.TotalIssuance, s.Difficulty)
	fmt.Fprintf(w, "registrations: %d (rejected %d)\nrejected weights: %d\n\n", s.Registrations, s.RejectedRegister, s.RejectedWeights)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "UID\tACTIVE\tSTAKE\tRANK\tTRUST\tCONSENSUS\tINCENTIVE\tDIVIDENDS\tEMISSION")
	for _, n := range s.Neurons {
		fmt.Fprintf(tw, "%d\t%t\t%d\t%.6f\t%.6f\t%.6f\t%.6f\t%.6f\t%d\n",
			n.Uid, n.Active, n.Stake, n.Rank, n.Trust, n.Consensus, n.Incentive, n.Dividends, n.Emission)
	}
	return tw.Flush()
}
