// Package basis implements basis functions used by LSPI policies.
//
// A basis function takes in a state vector and an action index and
// returns a vector of features, referred to as φ. The φ vector is
// dotted with the weight vector of a policy to calculate the
// approximate Q-value of the state-action pair.
package basis

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
)

// Basis computes feature vectors of state-action pairs
type Basis interface {
	// Size returns the length of the feature vectors returned by
	// Evaluate, referred to as k
	Size() int

	// Evaluate returns the feature vector φ(state, action) of length
	// Size(). An index error is returned if action is not in
	// [0, NumActions()) and a shape error is returned if the state is
	// incompatible with the basis.
	Evaluate(state mat.Vector, action int) (*mat.VecDense, error)

	// NumActions returns the number of actions
	NumActions() int

	// SetNumActions sets the number of actions. Size() changes
	// accordingly.
	SetNumActions(n int) error
}

// actions tracks the number of actions of a Basis
type actions struct {
	numActions int
}

func newActions(op string, numActions int) (actions, error) {
	if err := ValidateNumActions(op, numActions); err != nil {
		return actions{}, err
	}
	return actions{numActions}, nil
}

// NumActions returns the number of actions
func (a *actions) NumActions() int {
	return a.numActions
}

// SetNumActions sets the number of actions
func (a *actions) SetNumActions(n int) error {
	if err := ValidateNumActions("setNumActions", n); err != nil {
		return err
	}
	a.numActions = n
	return nil
}

// checkAction returns an index error if action is not a valid action
func (a *actions) checkAction(op string, action int) error {
	if action < 0 || action >= a.numActions {
		return lspierr.Index(op, action, a.numActions)
	}
	return nil
}

// ValidateNumActions returns a configuration error if numActions < 1
func ValidateNumActions(op string, numActions int) error {
	if numActions < 1 {
		return lspierr.Config(op, "numActions must be >= 1, have %d",
			numActions)
	}
	return nil
}
