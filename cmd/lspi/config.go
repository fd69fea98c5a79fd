package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/viper"

	lspi "github.com/samuelfneumann/golspi"
	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/environment/chain"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/solver"
)

// Config holds all configuration of the lspi command
type Config struct {
	Seed     uint64 `mapstructure:"seed"`
	LogLevel string `mapstructure:"log_level"`

	// Sample collection
	Chain      chain.Config `mapstructure:"chain"`
	Samples    int          `mapstructure:"samples"`
	ResetEvery int          `mapstructure:"reset_every"`
	SampleFile string       `mapstructure:"sample_file"`
	ReturnFile string       `mapstructure:"return_file"`

	// Learning
	Basis  basis.Config  `mapstructure:"basis"`
	Policy policy.Config `mapstructure:"policy"`
	// InitialWeights is either Uniform or Zero
	InitialWeights string       `mapstructure:"initial_weights"`
	Learn          lspi.Config  `mapstructure:"learn"`
	Solver         SolverConfig `mapstructure:"solver"`
	WeightFile     string       `mapstructure:"weight_file"`
	DistanceFile   string       `mapstructure:"distance_file"`
	PlotFile       string       `mapstructure:"plot_file"`
	ChainPlot      string       `mapstructure:"chain_plot"`
	Progress       bool         `mapstructure:"progress"`

	// Checkpointing, disabled if CheckpointEvery is 0
	CheckpointEvery int    `mapstructure:"checkpoint_every"`
	CheckpointPath  string `mapstructure:"checkpoint_path"`

	// Evaluation
	EvalSteps int `mapstructure:"eval_steps"`
}

// SolverConfig selects a solver. If File is set, the solver is read
// from a JSON file holding a solver.Typed, and Type and
// PreconditionValue are ignored.
type SolverConfig struct {
	Type              solver.Type `mapstructure:"type"`
	PreconditionValue float64     `mapstructure:"precondition_value"`
	File              string      `mapstructure:"file"`
}

// Default returns a config with sensible defaults
func Default() *Config {
	c := policy.DefaultConfig()
	c.Discount = 0.9

	return &Config{
		Seed:       1,
		LogLevel:   "info",
		Chain:      chain.DefaultConfig(),
		Samples:    1000,
		SampleFile: "samples.bin",
		Basis: basis.Config{
			Type:   basis.PolynomialType,
			Degree: 3,
		},
		Policy:         c,
		InitialWeights: uniformWeights,
		Learn:          lspi.DefaultConfig(),
		Solver: SolverConfig{
			Type:              solver.LSTDQType,
			PreconditionValue: 0.1,
		},
		WeightFile:     "weights.bin",
		CheckpointPath: "checkpoint",
		EvalSteps:      1000,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if err := c.Chain.Validate(); err != nil {
		return fmt.Errorf("chain: %v", err)
	}
	if err := c.Policy.Validate(); err != nil {
		return fmt.Errorf("policy: %v", err)
	}
	if c.InitialWeights != uniformWeights && c.InitialWeights != zeroWeights {
		return fmt.Errorf("initial_weights must be %s or %s, have %q",
			uniformWeights, zeroWeights, c.InitialWeights)
	}
	if err := c.Learn.Validate(); err != nil {
		return fmt.Errorf("learn: %v", err)
	}
	if c.Samples < 1 {
		return fmt.Errorf("samples must be positive")
	}
	if c.ResetEvery < 0 {
		return fmt.Errorf("reset_every must be non-negative")
	}
	if c.CheckpointEvery < 0 {
		return fmt.Errorf("checkpoint_every must be non-negative")
	}
	if c.EvalSteps < 0 {
		return fmt.Errorf("eval_steps must be non-negative")
	}
	return nil
}

// CreateSolver returns the solver described by the config
func (s SolverConfig) CreateSolver() (*solver.Typed, error) {
	if s.File == "" {
		switch s.Type {
		case solver.LSTDQOptType:
			return solver.NewLSTDQOptTyped(s.PreconditionValue)
		default:
			return solver.NewTyped(s.Type,
				solver.LSTDQConfig{PreconditionValue: s.PreconditionValue})
		}
	}

	data, err := os.ReadFile(s.File)
	if err != nil {
		return nil, fmt.Errorf("createSolver: could not read solver "+
			"file: %v", err)
	}
	var typed solver.Typed
	if err := json.Unmarshal(data, &typed); err != nil {
		return nil, fmt.Errorf("createSolver: %v", err)
	}
	return &typed, nil
}

// setDefaults registers the defaults of a config with v
func setDefaults(v *viper.Viper, c *Config) {
	v.SetDefault("seed", c.Seed)
	v.SetDefault("log_level", c.LogLevel)

	v.SetDefault("chain.numstates", c.Chain.NumStates)
	v.SetDefault("chain.rewardlocation", string(c.Chain.RewardLocation))
	v.SetDefault("chain.failureprobability", c.Chain.FailureProbability)
	v.SetDefault("samples", c.Samples)
	v.SetDefault("reset_every", c.ResetEvery)
	v.SetDefault("sample_file", c.SampleFile)
	v.SetDefault("return_file", c.ReturnFile)

	v.SetDefault("basis.type", string(c.Basis.Type))
	v.SetDefault("basis.degree", c.Basis.Degree)
	v.SetDefault("policy.discount", c.Policy.Discount)
	v.SetDefault("policy.explore", c.Policy.Explore)
	v.SetDefault("policy.tiebreaking", string(c.Policy.TieBreaking))
	v.SetDefault("initial_weights", c.InitialWeights)
	v.SetDefault("learn.epsilon", c.Learn.Epsilon)
	v.SetDefault("learn.maxiterations", c.Learn.MaxIterations)
	v.SetDefault("solver.type", string(c.Solver.Type))
	v.SetDefault("solver.precondition_value", c.Solver.PreconditionValue)
	v.SetDefault("solver.file", c.Solver.File)

	v.SetDefault("weight_file", c.WeightFile)
	v.SetDefault("distance_file", c.DistanceFile)
	v.SetDefault("plot_file", c.PlotFile)
	v.SetDefault("chain_plot", c.ChainPlot)
	v.SetDefault("progress", c.Progress)
	v.SetDefault("checkpoint_every", c.CheckpointEvery)
	v.SetDefault("checkpoint_path", c.CheckpointPath)
	v.SetDefault("eval_steps", c.EvalSteps)
}

// load reads the configuration from v, which holds the defaults, the
// config file, the environment, and flags
func load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("could not decode configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}
	return cfg, nil
}
