// Package environment outlines the interfaces needed to implement
// domains from which LSPI samples are gathered
package environment

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/sample"
)

// Starter implements a distribution of starting states and samples
// starting states for domains
type Starter interface {
	Start() *mat.VecDense
}

// Domain is a simulated environment with a discrete set of actions.
// Applying an action transitions the domain to a new state and returns
// the sample describing the transition.
type Domain interface {
	NumActions() int

	// CurrentState returns a copy of the current state
	CurrentState() mat.Vector

	// ApplyAction applies an action in [0, NumActions()) and returns
	// the resulting transition
	ApplyAction(action int) (sample.Sample, error)

	// Reset resets the domain to the given state. If state is nil, a
	// starting state is sampled.
	Reset(state mat.Vector) error

	// ActionName returns a human readable name of an action
	ActionName(action int) string
}
