package basis

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/utils/matutils"
)

// Radial is a Gaussian radial basis function. Each action has its own
// block of len(means)+1 features: a constant 1 followed by
//
//	exp(-γ ‖s - μᵢ‖²)
//
// for each mean μᵢ.
type Radial struct {
	actions
	means []*mat.VecDense
	gamma float64
}

// NewRadial returns a new radial basis function. All means must have
// the same length, which is the length of states that can be
// evaluated. Gamma must be positive.
func NewRadial(means []mat.Vector, gamma float64,
	numActions int) (*Radial, error) {
	const op = "newRadial"

	if len(means) == 0 {
		return nil, lspierr.Config(op, "at least one mean is required")
	}
	if !(gamma > 0) {
		return nil, lspierr.Config(op, "gamma must be > 0, have %v", gamma)
	}

	dims := means[0].Len()
	copied := make([]*mat.VecDense, len(means))
	for i, mean := range means {
		if mean.Len() != dims {
			return nil, lspierr.Config(op, "mean %d has %d dimensions, "+
				"expected %d", i, mean.Len(), dims)
		}
		copied[i] = matutils.CloneVec(mean)
	}

	a, err := newActions(op, numActions)
	if err != nil {
		return nil, err
	}

	return &Radial{actions: a, means: copied, gamma: gamma}, nil
}

// Means returns the means of the radial basis functions
func (r *Radial) Means() []mat.Vector {
	means := make([]mat.Vector, len(r.means))
	for i := range r.means {
		means[i] = r.means[i]
	}
	return means
}

// Gamma returns the width parameter γ
func (r *Radial) Gamma() float64 {
	return r.gamma
}

// Size returns (len(means) + 1) * NumActions()
func (r *Radial) Size() int {
	return (len(r.means) + 1) * r.numActions
}

// Evaluate returns the radial features of the state in the action's
// block
func (r *Radial) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := r.checkAction("evaluate", action); err != nil {
		return nil, err
	}
	if state == nil || state.Len() != r.means[0].Len() {
		return nil, lspierr.Shape("evaluate", "state must have %d "+
			"dimensions", r.means[0].Len())
	}

	phi := mat.NewVecDense(r.Size(), nil)
	offset := action * (len(r.means) + 1)
	phi.SetVec(offset, 1.0)

	diff := mat.NewVecDense(state.Len(), nil)
	for i, mean := range r.means {
		diff.SubVec(state, mean)
		sqDist := mat.Dot(diff, diff)
		phi.SetVec(offset+i+1, math.Exp(-r.gamma*sqDist))
	}
	return phi, nil
}
