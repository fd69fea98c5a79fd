package chain

import (
	"github.com/samuelfneumann/golspi/lspierr"
)

// RewardLocation determines which states of the chain give a +1
// reward when entered
type RewardLocation string

const (
	// Ends gives rewards at both ends of the chain
	Ends RewardLocation = "Ends"

	// Middle gives rewards at the two middle states of the chain
	Middle RewardLocation = "Middle"

	// HalfMiddles gives rewards in the middle of each half of the
	// chain
	HalfMiddles RewardLocation = "HalfMiddles"
)

// MinStates is the minimum number of states in a chain
const MinStates = 4

// Config describes a Chain
type Config struct {
	NumStates          int
	RewardLocation     RewardLocation
	FailureProbability float64
}

// DefaultConfig returns a chain of 10 states with rewards at the ends
// and actions which fail with probability 0.1
func DefaultConfig() Config {
	return Config{
		NumStates:          10,
		RewardLocation:     Ends,
		FailureProbability: 0.1,
	}
}

// Validate returns a configuration error if the Config is invalid
func (c Config) Validate() error {
	if c.NumStates < MinStates {
		return lspierr.Config("validate", "numStates must be >= %d, "+
			"have %d", MinStates, c.NumStates)
	}
	if !(c.FailureProbability >= 0 && c.FailureProbability <= 1) {
		return lspierr.Config("validate", "failure probability must be "+
			"in [0, 1], have %v", c.FailureProbability)
	}
	switch c.RewardLocation {
	case Ends, Middle, HalfMiddles:
	default:
		return lspierr.Config("validate", "unknown reward location %q",
			c.RewardLocation)
	}
	return nil
}

// Create returns a new Chain described by the Config
func (c Config) Create(seed uint64) (*Chain, error) {
	return New(c, seed)
}

// rewardStates returns the two states which give a reward when
// entered
func (c Config) rewardStates() [2]int {
	switch c.RewardLocation {
	case Middle:
		return [2]int{c.NumStates / 2, c.NumStates/2 + 1}
	case HalfMiddles:
		return [2]int{c.NumStates / 4, 3 * c.NumStates / 4}
	default:
		return [2]int{0, c.NumStates - 1}
	}
}
