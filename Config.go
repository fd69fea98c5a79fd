package lspi

import (
	"github.com/samuelfneumann/golspi/lspierr"
)

const (
	// DefaultEpsilon is the default convergence threshold
	DefaultEpsilon float64 = 1e-5

	// DefaultMaxIterations is the default maximum number of policy
	// iterations
	DefaultMaxIterations int = 10
)

// Config configures the policy iteration loop
type Config struct {
	// Epsilon is the convergence threshold. Policy iteration stops
	// once the Euclidean distance between consecutive weight vectors
	// is at most Epsilon.
	Epsilon float64

	// MaxIterations is the maximum number of policy iterations
	MaxIterations int
}

// DefaultConfig returns the default Config
func DefaultConfig() Config {
	return Config{
		Epsilon:       DefaultEpsilon,
		MaxIterations: DefaultMaxIterations,
	}
}

// Validate returns a configuration error if the Config is invalid
func (c Config) Validate() error {
	if !(c.Epsilon > 0) {
		return lspierr.Config("validate", "epsilon must be > 0, have %v",
			c.Epsilon)
	}
	if c.MaxIterations < 1 {
		return lspierr.Config("validate", "maxIterations must be >= 1, "+
			"have %d", c.MaxIterations)
	}
	return nil
}
