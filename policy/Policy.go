// Package policy implements linear action-value policies learned by
// LSPI.
//
// A Policy approximates the Q-value of a state-action pair as the dot
// product of a weight vector with the features of a basis function:
//
//	Q(s, a) = w · φ(s, a)
//
// Policies select the greedy action with respect to Q, or a uniform
// random action with probability Explore.
package policy

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/utils/floatutils"
	"github.com/samuelfneumann/golspi/utils/matutils"
	"github.com/samuelfneumann/golspi/utils/matutils/initializers/weights"
)

// Policy is a linear action-value policy
type Policy struct {
	basis       basis.Basis
	discount    float64
	explore     float64
	tieBreaking TieBreakingStrategy
	weights     *mat.VecDense

	rng      *rand.Rand
	explorer distuv.Bernoulli
}

// New returns a new Policy over basis b. The weights w are copied and
// must have length b.Size(). If w is nil, weights are drawn uniformly
// from [-1, 1). The seed seeds both weight initialization and the
// random number generation used for exploration and tie-breaking.
func New(b basis.Basis, c Config, w mat.Vector, seed uint64) (*Policy,
	error) {
	const op = "new"

	if b == nil {
		return nil, lspierr.Config(op, "basis must be non-nil")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var policyWeights *mat.VecDense
	if w == nil {
		policyWeights = mat.NewVecDense(b.Size(), nil)
		weights.NewUniform(-1.0, 1.0, seed).Initialize(policyWeights)
	} else {
		if w.Len() != b.Size() {
			return nil, lspierr.Config(op, "weights must have length %d, "+
				"have %d", b.Size(), w.Len())
		}
		policyWeights = matutils.CloneVec(w)
	}

	return newPolicy(b, c.Discount, c.Explore, c.TieBreaking,
		policyWeights, seed), nil
}

func newPolicy(b basis.Basis, discount, explore float64,
	tieBreaking TieBreakingStrategy, w *mat.VecDense, seed uint64) *Policy {
	source := rand.NewSource(seed)
	return &Policy{
		basis:       b,
		discount:    discount,
		explore:     explore,
		tieBreaking: tieBreaking,
		weights:     w,
		rng:         rand.New(source),
		explorer:    distuv.Bernoulli{P: explore, Src: source},
	}
}

// Basis returns the basis function of the policy
func (p *Policy) Basis() basis.Basis {
	return p.basis
}

// Discount returns the discount factor of the policy
func (p *Policy) Discount() float64 {
	return p.discount
}

// Explore returns the probability of selecting a random action
func (p *Policy) Explore() float64 {
	return p.explore
}

// TieBreaking returns the tie-breaking strategy of the policy
func (p *Policy) TieBreaking() TieBreakingStrategy {
	return p.tieBreaking
}

// Weights returns a copy of the weights of the policy
func (p *Policy) Weights() *mat.VecDense {
	return matutils.CloneVec(p.weights)
}

// NumActions returns the number of actions the policy chooses between
func (p *Policy) NumActions() int {
	return p.basis.NumActions()
}

// CalcQValue returns the Q-value of the state-action pair
func (p *Policy) CalcQValue(state mat.Vector, action int) (float64, error) {
	if action < 0 || action >= p.NumActions() {
		return 0, lspierr.Index("calcQValue", action, p.NumActions())
	}

	phi, err := p.basis.Evaluate(state, action)
	if err != nil {
		return 0, err
	}
	if phi.Len() != p.weights.Len() {
		return 0, lspierr.Config("calcQValue", "basis returned %d "+
			"features for %d weights", phi.Len(), p.weights.Len())
	}

	return mat.Dot(p.weights, phi), nil
}

// QValues returns the Q-values of all actions in a state
func (p *Policy) QValues(state mat.Vector) ([]float64, error) {
	values := make([]float64, p.NumActions())
	for a := range values {
		q, err := p.CalcQValue(state, a)
		if err != nil {
			return nil, err
		}
		values[a] = q
	}
	return values, nil
}

// BestAction returns the greedy action in a state, breaking ties
// between actions with exactly equal Q-values using the policy's
// tie-breaking strategy
func (p *Policy) BestAction(state mat.Vector) (int, error) {
	values, err := p.QValues(state)
	if err != nil {
		return 0, err
	}

	_, best := floatutils.MaxSlice(values)
	switch p.tieBreaking {
	case FirstWins:
		return best[0], nil
	case LastWins:
		return best[len(best)-1], nil
	default:
		if len(best) == 1 {
			return best[0], nil
		}
		return best[p.rng.Intn(len(best))], nil
	}
}

// SelectAction selects an action in a state. With probability
// Explore(), a uniform random action is returned. Otherwise, the best
// action is returned.
func (p *Policy) SelectAction(state mat.Vector) (int, error) {
	if p.explore > 0 && p.explorer.Rand() == 1.0 {
		return p.rng.Intn(p.NumActions()), nil
	}
	return p.BestAction(state)
}

// Clone returns a copy of the policy with its own copy of the weights.
// The basis is shared with the receiver.
func (p *Policy) Clone() *Policy {
	return p.WithWeights(p.weights)
}

// WithWeights returns a copy of the policy which uses a copy of the
// weights w. The basis is shared with the receiver.
func (p *Policy) WithWeights(w mat.Vector) *Policy {
	return newPolicy(p.basis, p.discount, p.explore, p.tieBreaking,
		matutils.CloneVec(w), p.rng.Uint64())
}
