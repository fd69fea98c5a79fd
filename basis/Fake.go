package basis

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/utils/matutils"
)

// Fake is a basis function with a single, constant feature. It is
// useful for testing and for policies which only act randomly.
type Fake struct {
	actions
}

// NewFake returns a new Fake basis for numActions actions
func NewFake(numActions int) (*Fake, error) {
	a, err := newActions("newFake", numActions)
	if err != nil {
		return nil, err
	}
	return &Fake{a}, nil
}

// Size returns 1
func (f *Fake) Size() int {
	return 1
}

// Evaluate returns the vector [1.0]. The state is ignored and may be
// nil.
func (f *Fake) Evaluate(_ mat.Vector, action int) (*mat.VecDense, error) {
	if err := f.checkAction("evaluate", action); err != nil {
		return nil, err
	}
	return matutils.VecOnes(1), nil
}
