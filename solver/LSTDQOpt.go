package solver

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// LSTDQOpt computes the same solution as LSTDQ, but maintains the
// inverse B = (δI + A)⁻¹ directly with one Sherman-Morrison update per
// sample. No linear system is solved. The precondition value δ must
// be positive so that the initial inverse I/δ exists.
type LSTDQOpt struct {
	PreconditionValue float64
}

// NewLSTDQOpt returns a new LSTDQOpt solver
func NewLSTDQOpt(preconditionValue float64) (*LSTDQOpt, error) {
	if err := validatePrecondition("newLSTDQOpt", preconditionValue,
		true); err != nil {
		return nil, err
	}
	return &LSTDQOpt{PreconditionValue: preconditionValue}, nil
}

// Solve returns the LSTDQ weights of the greedy policy of p
func (l *LSTDQOpt) Solve(samples []sample.Sample,
	p *policy.Policy) (*mat.VecDense, error) {
	if err := validatePrecondition("solve", l.PreconditionValue,
		true); err != nil {
		return nil, err
	}
	if p == nil {
		return nil, lspierr.Config("solve", "policy must be non-nil")
	}

	k := p.Basis().Size()
	inv := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		inv.Set(i, i, 1/l.PreconditionValue)
	}
	b := mat.NewVecDense(k, nil)

	diff := mat.NewVecDense(k, nil)
	invPhi := mat.NewVecDense(k, nil)
	diffInv := mat.NewVecDense(k, nil)

	for i, s := range samples {
		phi, phiNext, err := features(s, p)
		if err != nil {
			return nil, errors.Wrapf(err, "solve: sample %d", i)
		}

		if phiNext == nil {
			diff.CopyVec(phi)
		} else {
			diff.AddScaledVec(phi, -p.Discount(), phiNext)
		}

		// B ← B - (B φ)(dᵀ B) / (1 + dᵀ B φ)
		invPhi.MulVec(inv, phi)
		diffInv.MulVec(inv.T(), diff)
		denom := 1 + mat.Dot(diff, invPhi)
		if denom == 0 {
			return nil, lspierr.Computation("solve", "sample %d makes the "+
				"system singular", i)
		}
		inv.RankOne(inv, -1/denom, invPhi, diffInv)

		b.AddScaledVec(b, s.Reward, phi)
	}

	w := mat.NewVecDense(k, nil)
	w.MulVec(inv, b)
	return w, nil
}

// LSTDQOptConfig describes an LSTDQOpt solver
type LSTDQOptConfig struct {
	PreconditionValue float64
}

// NewLSTDQOptTyped returns a new Typed LSTDQOpt solver
func NewLSTDQOptTyped(preconditionValue float64) (*Typed, error) {
	return NewTyped(LSTDQOptType, LSTDQOptConfig{preconditionValue})
}

// Create returns the LSTDQOpt solver described by the config
func (l LSTDQOptConfig) Create() (Solver, error) {
	return NewLSTDQOpt(l.PreconditionValue)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (l LSTDQOptConfig) ValidType(t Type) bool {
	return t == LSTDQOptType
}
