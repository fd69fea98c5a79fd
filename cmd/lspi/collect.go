package main

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/environment/chain"
	"github.com/samuelfneumann/golspi/experiment"
	"github.com/samuelfneumann/golspi/experiment/tracker"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// Window of the return tracker when the chain is never reset
const returnWindow = 100

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect samples from the chain with a random policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, samples, err := collect(cfg, logger)
		if err != nil {
			return err
		}

		if err := sample.Save(cfg.SampleFile, samples); err != nil {
			return err
		}
		logger.Info().
			Int("samples", len(samples)).
			Str("file", cfg.SampleFile).
			Msg("saved samples")
		return nil
	},
}

// randomPolicy returns a policy which selects actions uniformly at
// random
func randomPolicy(numActions int, seed uint64) (*policy.Policy, error) {
	b, err := basis.NewFake(numActions)
	if err != nil {
		return nil, err
	}
	c := policy.DefaultConfig()
	c.Explore = 1.0
	return policy.New(b, c, nil, seed)
}

// collect gathers samples from a new chain with a random policy
func collect(c *Config, logger zerolog.Logger) (*chain.Chain,
	[]sample.Sample, error) {
	d, err := c.Chain.Create(c.Seed)
	if err != nil {
		return nil, nil, err
	}

	p, err := randomPolicy(d.NumActions(), c.Seed)
	if err != nil {
		return nil, nil, err
	}

	collector, err := experiment.NewCollector(d, p, c.ResetEvery)
	if err != nil {
		return nil, nil, err
	}

	var returns *tracker.Return
	if c.ReturnFile != "" {
		window := c.ResetEvery
		if window == 0 {
			window = returnWindow
		}
		returns, err = tracker.NewReturn(c.ReturnFile, window)
		if err != nil {
			return nil, nil, err
		}
		collector.Register(returns)
	}

	samples, err := collector.Run(c.Samples)
	if err != nil {
		return nil, nil, fmt.Errorf("collect: %v", err)
	}
	if err := collector.Save(); err != nil {
		return nil, nil, fmt.Errorf("collect: %v", err)
	}

	total := 0.0
	for _, s := range samples {
		total += s.Reward
	}
	event := logger.Info().
		Int("samples", len(samples)).
		Float64("reward", total).
		Str("reward_location", string(c.Chain.RewardLocation))
	if returns != nil {
		event = event.Int("segments", len(returns.Returns()))
	}
	event.Msg("collected samples")

	return d, samples, nil
}
