package policy

import (
	"github.com/samuelfneumann/golspi/lspierr"
)

// TieBreakingStrategy determines which action is chosen when multiple
// actions have the same, maximal Q-value
type TieBreakingStrategy string

const (
	// FirstWins chooses the tied action with the lowest index
	FirstWins TieBreakingStrategy = "FirstWins"

	// LastWins chooses the tied action with the highest index
	LastWins TieBreakingStrategy = "LastWins"

	// RandomWins chooses uniformly at random between tied actions
	RandomWins TieBreakingStrategy = "RandomWins"
)

// Valid returns whether the strategy is a known strategy
func (t TieBreakingStrategy) Valid() bool {
	switch t {
	case FirstWins, LastWins, RandomWins:
		return true
	}
	return false
}

// Config configures a Policy
type Config struct {
	// Discount is the discount factor γ of future rewards
	Discount float64

	// Explore is the probability of selecting a random action
	Explore float64

	TieBreaking TieBreakingStrategy
}

// DefaultConfig returns a Config with discount 1, no exploration, and
// random tie-breaking
func DefaultConfig() Config {
	return Config{
		Discount:    1.0,
		Explore:     0.0,
		TieBreaking: RandomWins,
	}
}

// Validate returns a configuration error if the Config is invalid
func (c Config) Validate() error {
	if !(c.Discount >= 0 && c.Discount <= 1) {
		return lspierr.Config("validate", "discount must be in [0, 1], "+
			"have %v", c.Discount)
	}
	if !(c.Explore >= 0 && c.Explore <= 1) {
		return lspierr.Config("validate", "explore must be in [0, 1], "+
			"have %v", c.Explore)
	}
	if !c.TieBreaking.Valid() {
		return lspierr.Config("validate", "unknown tie-breaking strategy "+
			"%q", c.TieBreaking)
	}
	return nil
}
