package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
)

// OneDimensionalPolynomial is a polynomial basis over a one
// dimensional state. Each action has its own block of degree+1
// features:
//
//	φ(s, a) = [0, ..., 0, 1, s, s², ..., s^degree, 0, ..., 0]
//
// where the non-zero block starts at index a * (degree+1).
type OneDimensionalPolynomial struct {
	actions
	degree int
}

// NewOneDimensionalPolynomial returns a new polynomial basis of the
// given degree for numActions actions
func NewOneDimensionalPolynomial(degree,
	numActions int) (*OneDimensionalPolynomial, error) {
	if degree < 0 {
		return nil, lspierr.Config("newOneDimensionalPolynomial",
			"degree must be >= 0, have %d", degree)
	}

	a, err := newActions("newOneDimensionalPolynomial", numActions)
	if err != nil {
		return nil, err
	}

	return &OneDimensionalPolynomial{actions: a, degree: degree}, nil
}

// Degree returns the degree of the polynomial
func (p *OneDimensionalPolynomial) Degree() int {
	return p.degree
}

// Size returns (degree + 1) * NumActions()
func (p *OneDimensionalPolynomial) Size() int {
	return (p.degree + 1) * p.numActions
}

// Evaluate returns the polynomial features of the state in the
// action's block
func (p *OneDimensionalPolynomial) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := p.checkAction("evaluate", action); err != nil {
		return nil, err
	}
	if state == nil || state.Len() != 1 {
		return nil, lspierr.Shape("evaluate", "state must have exactly "+
			"one dimension")
	}

	phi := mat.NewVecDense(p.Size(), nil)
	offset := action * (p.degree + 1)
	s := state.AtVec(0)
	for i := 0; i <= p.degree; i++ {
		phi.SetVec(offset+i, math.Pow(s, float64(i)))
	}
	return phi, nil
}
