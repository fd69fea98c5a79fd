package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/utils/intutils"
)

// Exact is a tabular basis. Each state-action pair of a discrete state
// space has its own feature. States are vectors of integral values,
// where dimension i takes values in [0, numStates[i]).
//
// The feature of state s and action a is at index
//
//	a * ∏ numStates + Σᵢ sᵢ * ∏_{j<i} numStates[j]
type Exact struct {
	actions
	numStates []int
	stateSize int
}

// NewExact returns a new exact basis over a state space with
// numStates[i] values along dimension i
func NewExact(numStates []int, numActions int) (*Exact, error) {
	const op = "newExact"

	if len(numStates) == 0 {
		return nil, lspierr.Config(op, "numStates must be non-empty")
	}
	for i, n := range numStates {
		if n < 1 {
			return nil, lspierr.Config(op, "numStates[%d] must be >= 1, "+
				"have %d", i, n)
		}
	}

	a, err := newActions(op, numActions)
	if err != nil {
		return nil, err
	}

	states := make([]int, len(numStates))
	copy(states, numStates)

	return &Exact{
		actions:   a,
		numStates: states,
		stateSize: intutils.Prod(states),
	}, nil
}

// NumStates returns the number of values along each state dimension
func (e *Exact) NumStates() []int {
	states := make([]int, len(e.numStates))
	copy(states, e.numStates)
	return states
}

// Size returns ∏ numStates * NumActions()
func (e *Exact) Size() int {
	return e.stateSize * e.numActions
}

// Evaluate returns the one-hot feature vector of the state-action pair
func (e *Exact) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	const op = "evaluate"

	if err := e.checkAction(op, action); err != nil {
		return nil, err
	}
	if state == nil || state.Len() != len(e.numStates) {
		return nil, lspierr.Shape(op, "state must have %d dimensions",
			len(e.numStates))
	}

	index := 0
	stride := 1
	for i, n := range e.numStates {
		s := state.AtVec(i)
		if s != math.Trunc(s) || s < 0 || s >= float64(n) {
			return nil, lspierr.Shape(op, "state dimension %d must be an "+
				"integer in [0, %d), have %v", i, n, s)
		}
		index += int(s) * stride
		stride *= n
	}

	phi := mat.NewVecDense(e.Size(), nil)
	phi.SetVec(action*e.stateSize+index, 1.0)
	return phi, nil
}
