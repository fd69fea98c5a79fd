package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/samuelfneumann/golspi/experiment"
	"github.com/samuelfneumann/golspi/plot"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Collect samples, learn a policy, and evaluate it on the chain",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, samples, err := collect(cfg, logger)
		if err != nil {
			return err
		}

		learned, err := learn(cfg, logger, samples, d.NumActions())
		if err != nil {
			return err
		}

		random, err := randomPolicy(d.NumActions(), cfg.Seed+1)
		if err != nil {
			return err
		}
		if err := d.Reset(nil); err != nil {
			return err
		}
		randomReward, err := experiment.Evaluate(d, random, cfg.EvalSteps)
		if err != nil {
			return err
		}
		if err := d.Reset(nil); err != nil {
			return err
		}
		learnedReward, err := experiment.Evaluate(d, learned, cfg.EvalSteps)
		if err != nil {
			return err
		}

		logger.Info().
			Int("steps", cfg.EvalSteps).
			Float64("random_reward", randomReward).
			Float64("learned_reward", learnedReward).
			Msg("evaluated policies")

		if cfg.ChainPlot != "" {
			if err := plot.SaveChain(cfg.ChainPlot, learned, d.NumStates(),
				d.ActionName); err != nil {
				return err
			}
			logger.Info().Str("file", cfg.ChainPlot).Msg("plotted Q-values")
		}

		return printPolicy(os.Stdout, d, learned)
	},
}
