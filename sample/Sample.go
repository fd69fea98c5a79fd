// Package sample implements the transition samples LSPI learns from
package sample

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/utils/matutils"
)

// Sample is a single transition (s, a, r, s') gathered from a domain.
// If Absorb is true, the transition ended in an absorbing state and
// NextState is never evaluated by the solver.
type Sample struct {
	State     mat.Vector
	Action    int
	Reward    float64
	NextState mat.Vector
	Absorb    bool
}

// New returns a new Sample. The state vectors are copied.
func New(state mat.Vector, action int, reward float64,
	nextState mat.Vector, absorb bool) Sample {
	return Sample{
		State:     clone(state),
		Action:    action,
		Reward:    reward,
		NextState: clone(nextState),
		Absorb:    absorb,
	}
}

// String returns a string representation of the Sample
func (s Sample) String() string {
	return fmt.Sprintf("Sample(%v, %d, %v, %v, %t)", vecString(s.State),
		s.Action, s.Reward, vecString(s.NextState), s.Absorb)
}

// clone copies v, keeping nil vectors as untyped nils
func clone(v mat.Vector) mat.Vector {
	if v == nil {
		return nil
	}
	return matutils.CloneVec(v)
}

func vecString(v mat.Vector) string {
	if v == nil {
		return "nil"
	}
	return matutils.Format(v.T())
}
