package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	lspi "github.com/samuelfneumann/golspi"
	"github.com/samuelfneumann/golspi/experiment/checkpointer"
	"github.com/samuelfneumann/golspi/experiment/tracker"
	"github.com/samuelfneumann/golspi/plot"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
	"github.com/samuelfneumann/golspi/utils/matutils/initializers/weights"
	"github.com/samuelfneumann/golspi/utils/progressbar"
)

var learnCmd = &cobra.Command{
	Use:   "learn",
	Short: "Learn a policy from saved samples",
	RunE: func(cmd *cobra.Command, args []string) error {
		samples, err := sample.Load(cfg.SampleFile)
		if err != nil {
			return err
		}
		logger.Info().
			Int("samples", len(samples)).
			Str("file", cfg.SampleFile).
			Msg("loaded samples")

		d, err := cfg.Chain.Create(cfg.Seed)
		if err != nil {
			return err
		}

		learned, err := learn(cfg, logger, samples, d.NumActions())
		if err != nil {
			return err
		}
		return printPolicy(os.Stdout, d, learned)
	},
}

// progressTracker displays a progress bar of policy iteration
type progressTracker struct {
	bar *progressbar.ManualProgressBar
}

// Track implements the lspi.Tracker interface
func (p progressTracker) Track(lspi.Iteration) error {
	p.bar.Increment()
	return p.bar.Display()
}

const (
	uniformWeights = "Uniform"
	zeroWeights    = "Zero"
)

// initialWeights returns a weight vector of the given size initialized
// as kind describes
func initialWeights(kind string, size int, seed uint64) (*mat.VecDense,
	error) {
	var initializer weights.Initializer
	switch kind {
	case uniformWeights:
		initializer = weights.NewUniform(-1.0, 1.0, seed)
	case zeroWeights:
		initializer = weights.NewLinearUV(weights.NewZeroUV())
	default:
		return nil, fmt.Errorf("initialWeights: unknown initialization %q",
			kind)
	}

	w := mat.NewVecDense(size, nil)
	initializer.Initialize(w)
	return w, nil
}

// learn learns a policy from samples as described by the config
func learn(c *Config, logger zerolog.Logger, samples []sample.Sample,
	numActions int) (*policy.Policy, error) {
	b, err := c.Basis.Create(numActions)
	if err != nil {
		return nil, fmt.Errorf("learn: could not create basis: %v", err)
	}

	w, err := initialWeights(c.InitialWeights, b.Size(), c.Seed)
	if err != nil {
		return nil, fmt.Errorf("learn: %v", err)
	}
	initial, err := policy.New(b, c.Policy, w, c.Seed)
	if err != nil {
		return nil, fmt.Errorf("learn: could not create policy: %v", err)
	}

	s, err := c.Solver.CreateSolver()
	if err != nil {
		return nil, fmt.Errorf("learn: could not create solver: %v", err)
	}

	distances := tracker.NewDistance(c.DistanceFile)
	trackers := []lspi.Tracker{distances}

	if c.CheckpointEvery > 0 {
		n, err := checkpointer.NewNStep(c.CheckpointEvery,
			checkpointer.FilenameEnumerator(0, c.CheckpointPath, ".bin"))
		if err != nil {
			return nil, fmt.Errorf("learn: %v", err)
		}
		trackers = append(trackers, n)
	}

	var bar *progressbar.ManualProgressBar
	if c.Progress {
		bar = progressbar.NewManualProgressBar(os.Stderr, 40,
			c.Learn.MaxIterations)
		trackers = append(trackers, progressTracker{bar})
	}

	learner, err := lspi.NewLearner(c.Learn, logger.With().
		Str("basis", string(c.Basis.Type)).
		Str("solver", string(s.Type)).
		Logger(), trackers...)
	if err != nil {
		return nil, err
	}

	learned, err := learner.Learn(samples, initial, s)
	if bar != nil {
		bar.Finish()
		bar.Display()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		return nil, err
	}

	if err := checkpointer.SaveWeights(c.WeightFile,
		learned.Weights()); err != nil {
		return nil, err
	}
	logger.Info().Str("file", c.WeightFile).Msg("saved weights")

	if c.DistanceFile != "" {
		if err := distances.Save(); err != nil {
			return nil, err
		}
	}
	if c.PlotFile != "" {
		series := plot.Series{
			Name:   string(c.Basis.Type),
			Values: distances.Distances(),
		}
		if err := plot.SaveConvergence(c.PlotFile, "LSPI convergence",
			series); err != nil {
			return nil, err
		}
		logger.Info().Str("file", c.PlotFile).Msg("plotted convergence")
	}

	return learned, nil
}
