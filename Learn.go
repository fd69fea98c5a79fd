// Package lspi implements Least-Squares Policy Iteration.
//
// LSPI learns a linear action-value function from a fixed batch of
// samples. Starting from an initial policy, each iteration evaluates
// the current greedy policy with a Solver, usually LSTDQ, and uses the
// resulting weights as the next policy. Iteration stops once the
// weights change by at most a threshold, or after a maximum number of
// iterations.
package lspi

import (
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
	"github.com/samuelfneumann/golspi/solver"
	"github.com/samuelfneumann/golspi/utils/matutils"
)

// Iteration describes a single completed policy iteration
type Iteration struct {
	// Number is the 1-based iteration number
	Number int

	// Distance is the Euclidean distance between the weights before
	// and after the iteration
	Distance float64

	// Weights are the weights after the iteration
	Weights *mat.VecDense
}

// Tracker tracks the progress of policy iteration. Track is called
// after each iteration.
type Tracker interface {
	Track(Iteration) error
}

// Learner runs policy iteration
type Learner struct {
	config   Config
	logger   zerolog.Logger
	trackers []Tracker
}

// NewLearner returns a new Learner. Each iteration is sent to the
// trackers and logged at debug level.
func NewLearner(c Config, logger zerolog.Logger,
	trackers ...Tracker) (*Learner, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &Learner{config: c, logger: logger, trackers: trackers}, nil
}

// Register adds a Tracker to the Learner
func (l *Learner) Register(t Tracker) {
	l.trackers = append(l.trackers, t)
}

// Learn runs policy iteration over the samples starting from the
// initial policy. The returned policy is a new policy which shares no
// weights with initial. The initial policy is not modified.
func (l *Learner) Learn(samples []sample.Sample, initial *policy.Policy,
	s solver.Solver) (*policy.Policy, error) {
	if initial == nil {
		return nil, lspierr.Config("learn", "initial policy must be "+
			"non-nil")
	}
	if s == nil {
		return nil, lspierr.Config("learn", "solver must be non-nil")
	}

	current := initial
	currentWeights := initial.Weights()
	distance := 0.0
	converged := false

	iteration := 0
	for iteration < l.config.MaxIterations && !converged {
		iteration++

		weights, err := s.Solve(samples, current)
		if err != nil {
			return nil, errors.Wrapf(err, "learn: iteration %d", iteration)
		}
		if weights == nil || weights.Len() != currentWeights.Len() {
			return nil, lspierr.Computation("learn", "solver returned weights "+
				"of the wrong length at iteration %d", iteration)
		}

		distance = matutils.Distance(weights, currentWeights)
		current = current.WithWeights(weights)
		currentWeights = current.Weights()
		converged = distance <= l.config.Epsilon

		l.logger.Debug().
			Int("iteration", iteration).
			Float64("distance", distance).
			Msg("policy iteration")

		for _, t := range l.trackers {
			it := Iteration{
				Number:   iteration,
				Distance: distance,
				Weights:  current.Weights(),
			}
			if err := t.Track(it); err != nil {
				return nil, errors.Wrapf(err, "learn: could not track "+
					"iteration %d", iteration)
			}
		}
	}

	l.logger.Info().
		Int("iterations", iteration).
		Float64("distance", distance).
		Bool("converged", converged).
		Int("samples", len(samples)).
		Msg("policy iteration finished")

	return current, nil
}

// Learn runs policy iteration over the samples starting from the
// initial policy, until the weights change by at most epsilon or
// maxIterations iterations have been run
func Learn(samples []sample.Sample, initial *policy.Policy,
	s solver.Solver, epsilon float64,
	maxIterations int) (*policy.Policy, error) {
	c := Config{Epsilon: epsilon, MaxIterations: maxIterations}
	l, err := NewLearner(c, zerolog.Nop())
	if err != nil {
		return nil, err
	}
	return l.Learn(samples, initial, s)
}
