// Package chain implements the chain walk domain.
//
// The chain is a line of discrete states. In each state, the agent
// can move left or right. Actions fail with some probability, in which
// case the agent moves in the opposite direction. Moving past either
// end of the chain leaves the agent where it is. Entering one of two
// special states gives a reward of +1, all other transitions give a
// reward of 0. The chain never terminates.
package chain

import (
	"fmt"
	"math"
	"strings"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/golspi/environment"
	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/sample"
	"github.com/samuelfneumann/golspi/utils/intutils"
)

// Actions in the chain
const (
	Left int = iota
	Right
)

var actionNames = []string{"left", "right"}

// Chain implements the chain walk domain. States are vectors with a
// single element, the index of the occupied state.
type Chain struct {
	config  Config
	rewards [2]int
	state   int
	starter environment.Starter
	failure distuv.Bernoulli
}

// New returns a new Chain starting in a uniform random state
func New(c Config, seed uint64) (*Chain, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	starter, err := environment.NewCategoricalStarter([]int{c.NumStates},
		seed)
	if err != nil {
		return nil, lspierr.Config("new", "%v", err)
	}

	chain := &Chain{
		config:  c,
		rewards: c.rewardStates(),
		starter: starter,
		failure: distuv.Bernoulli{
			P:   c.FailureProbability,
			Src: rand.NewSource(seed + 1),
		},
	}
	chain.state = int(starter.Start().AtVec(0))

	return chain, nil
}

// Config returns the configuration of the chain
func (c *Chain) Config() Config {
	return c.config
}

// NumStates returns the number of states in the chain
func (c *Chain) NumStates() int {
	return c.config.NumStates
}

// RewardStates returns the two states which give a reward of +1 when
// entered
func (c *Chain) RewardStates() [2]int {
	return c.rewards
}

// NumActions returns 2
func (c *Chain) NumActions() int {
	return len(actionNames)
}

// CurrentState returns the current state
func (c *Chain) CurrentState() mat.Vector {
	return mat.NewVecDense(1, []float64{float64(c.state)})
}

// ApplyAction moves the agent left or right. With the failure
// probability, the agent moves in the opposite direction.
func (c *Chain) ApplyAction(action int) (sample.Sample, error) {
	if action < 0 || action >= c.NumActions() {
		return sample.Sample{}, lspierr.Index("applyAction", action,
			c.NumActions())
	}

	failed := c.failure.Rand() == 1.0
	next := c.state
	if (action == Left) != failed {
		next--
	} else {
		next++
	}
	next = intutils.Clip(next, 0, c.config.NumStates-1)

	reward := 0.0
	if next == c.rewards[0] || next == c.rewards[1] {
		reward = 1.0
	}

	s := sample.New(c.CurrentState(), action, reward,
		mat.NewVecDense(1, []float64{float64(next)}), false)
	c.state = next

	return s, nil
}

// Reset resets the chain to a given state. If state is nil, a uniform
// random state is chosen.
func (c *Chain) Reset(state mat.Vector) error {
	if state == nil {
		c.state = int(c.starter.Start().AtVec(0))
		return nil
	}

	if state.Len() != 1 {
		return lspierr.Shape("reset", "state must have exactly one "+
			"dimension, have %d", state.Len())
	}
	s := state.AtVec(0)
	if math.IsNaN(s) || s < 0 || s >= float64(c.config.NumStates) {
		return lspierr.Shape("reset", "state must be in [0, %d), have %v",
			c.config.NumStates, s)
	}

	c.state = int(s)
	return nil
}

// ActionName returns the name of an action
func (c *Chain) ActionName(action int) string {
	if action < 0 || action >= len(actionNames) {
		return fmt.Sprintf("unknown(%d)", action)
	}
	return actionNames[action]
}

// String returns a string representation of the chain, marking the
// current state with an x and reward states with a +
func (c *Chain) String() string {
	var b strings.Builder
	b.WriteString("|")
	for i := 0; i < c.config.NumStates; i++ {
		switch {
		case i == c.state:
			b.WriteString("x")
		case i == c.rewards[0] || i == c.rewards[1]:
			b.WriteString("+")
		default:
			b.WriteString(" ")
		}
		b.WriteString("|")
	}
	return b.String()
}
