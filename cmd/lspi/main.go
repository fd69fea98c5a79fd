// Command lspi collects samples from the chain walk domain and learns
// policies from them with Least-Squares Policy Iteration.
//
// Configuration is read, in increasing order of precedence, from
// defaults, an optional config file, LSPI_ prefixed environment
// variables, and flags.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	v          = viper.New()
	configFile string
	logger     zerolog.Logger
	cfg        *Config
)

var rootCmd = &cobra.Command{
	Use:   "lspi",
	Short: "Least-Squares Policy Iteration on the chain walk domain",
	Long: `lspi learns linear action-value policies from batches of samples
with Least-Squares Policy Iteration.

Samples are gathered from the chain walk domain with a random policy
by the collect command, policies are learned from saved samples by the
learn command, and the chain command runs both and evaluates the
learned policy.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configFile != "" {
			v.SetConfigFile(configFile)
			if err := v.ReadInConfig(); err != nil {
				return fmt.Errorf("could not read config file: %v", err)
			}
		}

		var err error
		cfg, err = load(v)
		if err != nil {
			return err
		}

		logger, err = newLogger(cfg.LogLevel)
		return err
	},
}

func init() {
	defaults := Default()
	setDefaults(v, defaults)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configFile, "config", "", "Config file (json, yaml, or toml)")
	flags.Uint64("seed", defaults.Seed, "Seed for random number generation")
	flags.String("log-level", defaults.LogLevel, "Log level (debug, info, warn, error)")

	// Chain settings
	flags.Int("states", defaults.Chain.NumStates, "Number of states in the chain")
	flags.String("reward-location", string(defaults.Chain.RewardLocation), "Rewarding states (Ends, Middle, HalfMiddles)")
	flags.Float64("failure", defaults.Chain.FailureProbability, "Probability that actions fail")
	flags.String("sample-file", defaults.SampleFile, "File samples are saved to and loaded from")

	// Collection settings
	flags.Int("samples", defaults.Samples, "Number of samples to collect")
	flags.Int("reset-every", defaults.ResetEvery, "Reset the chain every n samples (0 to never reset)")
	flags.String("return-file", defaults.ReturnFile, "File to save sample returns to (empty to disable)")

	// Learning settings
	flags.String("basis", string(defaults.Basis.Type), "Basis function (Fake, Polynomial, Radial, Exact, TileCoding)")
	flags.Int("degree", defaults.Basis.Degree, "Degree of the polynomial basis")
	flags.Float64("discount", defaults.Policy.Discount, "Discount factor")
	flags.Float64("explore", defaults.Policy.Explore, "Exploration probability of the learned policy")
	flags.String("tie-breaking", string(defaults.Policy.TieBreaking), "Tie-breaking strategy (FirstWins, LastWins, RandomWins)")
	flags.String("initial-weights", defaults.InitialWeights, "Initial policy weights (Uniform, Zero)")
	flags.Float64("epsilon", defaults.Learn.Epsilon, "Convergence threshold")
	flags.Int("max-iterations", defaults.Learn.MaxIterations, "Maximum number of policy iterations")
	flags.String("solver", string(defaults.Solver.Type), "Solver (LSTDQ, LSTDQOpt)")
	flags.Float64("precondition", defaults.Solver.PreconditionValue, "Solver precondition value")
	flags.String("solver-file", defaults.Solver.File, "JSON file describing the solver")
	flags.String("weight-file", defaults.WeightFile, "File the learned weights are saved to")
	flags.String("distance-file", defaults.DistanceFile, "File to save iteration distances to (empty to disable)")
	flags.String("plot-file", defaults.PlotFile, "HTML file to plot convergence to (empty to disable)")
	flags.String("chain-plot", defaults.ChainPlot, "PNG file to plot learned Q-values to (empty to disable)")
	flags.Bool("progress", defaults.Progress, "Display a progress bar while learning")
	flags.Int("checkpoint-every", defaults.CheckpointEvery, "Checkpoint weights every n iterations (0 to disable)")
	flags.String("checkpoint-path", defaults.CheckpointPath, "Path prefix of checkpoint files")
	flags.Int("eval-steps", defaults.EvalSteps, "Number of steps to evaluate policies for")

	bindFlags(flags, map[string]string{
		"seed":             "seed",
		"log-level":        "log_level",
		"states":           "chain.numstates",
		"reward-location":  "chain.rewardlocation",
		"failure":          "chain.failureprobability",
		"sample-file":      "sample_file",
		"samples":          "samples",
		"reset-every":      "reset_every",
		"return-file":      "return_file",
		"basis":            "basis.type",
		"degree":           "basis.degree",
		"discount":         "policy.discount",
		"explore":          "policy.explore",
		"tie-breaking":     "policy.tiebreaking",
		"initial-weights":  "initial_weights",
		"epsilon":          "learn.epsilon",
		"max-iterations":   "learn.maxiterations",
		"solver":           "solver.type",
		"precondition":     "solver.precondition_value",
		"solver-file":      "solver.file",
		"weight-file":      "weight_file",
		"distance-file":    "distance_file",
		"plot-file":        "plot_file",
		"chain-plot":       "chain_plot",
		"progress":         "progress",
		"checkpoint-every": "checkpoint_every",
		"checkpoint-path":  "checkpoint_path",
		"eval-steps":       "eval_steps",
	})

	v.SetEnvPrefix("LSPI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	rootCmd.AddCommand(collectCmd, learnCmd, chainCmd)
}

// bindFlags binds flags to their viper keys
func bindFlags(flags *pflag.FlagSet, keys map[string]string) {
	for flag, key := range keys {
		if err := v.BindPFlag(key, flags.Lookup(flag)); err != nil {
			panic(fmt.Sprintf("bindFlags: %v", err))
		}
	}
}

// newLogger returns a logger writing to stderr, tagging every message
// with a unique run ID
func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q: %v",
			level, err)
	}

	return zerolog.New(os.Stderr).
		Level(lvl).
		With().
		Timestamp().
		Str("run_id", uuid.New().String()).
		Logger(), nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
