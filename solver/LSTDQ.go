package solver

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// Machine epsilon of float64. Systems whose LU condition number
// exceeds 1/machineEpsilon are solved with the pseudo-inverse.
const machineEpsilon = 0x1p-52

// Singular values below pinvCutoff times the largest singular value
// are treated as zero when computing the pseudo-inverse.
const pinvCutoff = 1e-15

// LSTDQ implements Least-Squares Temporal Difference Q-learning. It
// builds the linear system
//
//	A = Σ φ(s, a) (φ(s, a) - γ φ(s', π(s')))ᵀ + δI
//	b = Σ φ(s, a) r
//
// over a batch of samples, where π is the greedy policy being
// evaluated and δ is the precondition value, and returns the solution
// w of A w = b. Absorbing samples contribute φ(s, a) φ(s, a)ᵀ to A.
//
// A is solved directly when it is well conditioned. Otherwise, the
// Moore-Penrose pseudo-inverse of A is used.
type LSTDQ struct {
	PreconditionValue float64
}

// NewLSTDQ returns a new LSTDQ solver. The precondition value must be
// non-negative.
func NewLSTDQ(preconditionValue float64) (*LSTDQ, error) {
	if err := validatePrecondition("newLSTDQ", preconditionValue,
		false); err != nil {
		return nil, err
	}
	return &LSTDQ{PreconditionValue: preconditionValue}, nil
}

// System returns the preconditioned linear system A w = b of LSTDQ
// built from the samples for the greedy policy of p
func (l *LSTDQ) System(samples []sample.Sample,
	p *policy.Policy) (*mat.Dense, *mat.VecDense, error) {
	if err := validatePrecondition("system", l.PreconditionValue,
		false); err != nil {
		return nil, nil, err
	}
	if p == nil {
		return nil, nil, lspierr.Config("system", "policy must be non-nil")
	}

	k := p.Basis().Size()
	a := mat.NewDense(k, k, nil)
	b := mat.NewVecDense(k, nil)
	diff := mat.NewVecDense(k, nil)

	for i, s := range samples {
		phi, phiNext, err := features(s, p)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "system: sample %d", i)
		}

		if phiNext == nil {
			diff.CopyVec(phi)
		} else {
			diff.AddScaledVec(phi, -p.Discount(), phiNext)
		}

		a.RankOne(a, 1.0, phi, diff)
		b.AddScaledVec(b, s.Reward, phi)
	}

	for i := 0; i < k; i++ {
		a.Set(i, i, a.At(i, i)+l.PreconditionValue)
	}

	return a, b, nil
}

// Solve returns the LSTDQ weights of the greedy policy of p
func (l *LSTDQ) Solve(samples []sample.Sample,
	p *policy.Policy) (*mat.VecDense, error) {
	a, b, err := l.System(samples, p)
	if err != nil {
		return nil, err
	}

	if w, ok := solveLU(a, b); ok {
		return w, nil
	}
	return solvePinv(a, b)
}

// features returns φ(s, a) and, for non-absorbing samples,
// φ(s', π(s')) of a sample
func features(s sample.Sample, p *policy.Policy) (*mat.VecDense,
	*mat.VecDense, error) {
	k := p.Basis().Size()

	phi, err := p.Basis().Evaluate(s.State, s.Action)
	if err != nil {
		return nil, nil, err
	}
	if phi.Len() != k {
		return nil, nil, lspierr.Config("features", "basis returned %d "+
			"features, expected %d", phi.Len(), k)
	}

	if s.Absorb {
		return phi, nil, nil
	}

	next, err := p.BestAction(s.NextState)
	if err != nil {
		return nil, nil, err
	}
	phiNext, err := p.Basis().Evaluate(s.NextState, next)
	if err != nil {
		return nil, nil, err
	}

	return phi, phiNext, nil
}

// solveLU solves a w = b with an LU decomposition. The returned bool
// is false if a is singular or too ill-conditioned to be solved
// directly.
func solveLU(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, bool) {
	var lu mat.LU
	lu.Factorize(a)

	cond := lu.Cond()
	if math.IsInf(cond, 0) || math.IsNaN(cond) || cond > 1/machineEpsilon {
		return nil, false
	}

	k, _ := a.Dims()
	w := mat.NewVecDense(k, nil)
	if err := lu.SolveVecTo(w, false, b); err != nil {
		return nil, false
	}
	return w, true
}

// solvePinv solves a w = b using the Moore-Penrose pseudo-inverse of a,
// computed from its singular value decomposition
func solvePinv(a *mat.Dense, b *mat.VecDense) (*mat.VecDense, error) {
	var svd mat.SVD
	if ok := svd.Factorize(a, mat.SVDThin); !ok {
		return nil, lspierr.Computation("solvePinv", "singular value "+
			"decomposition failed")
	}

	var u, v mat.Dense
	svd.UTo(&u)
	svd.VTo(&v)
	values := svd.Values(nil)

	// pinv(a) b = V Σ⁺ Uᵀ b
	scaled := mat.NewVecDense(len(values), nil)
	scaled.MulVec(u.T(), b)
	cutoff := pinvCutoff * values[0]
	for i, sigma := range values {
		if sigma > cutoff {
			scaled.SetVec(i, scaled.AtVec(i)/sigma)
		} else {
			scaled.SetVec(i, 0)
		}
	}

	k, _ := a.Dims()
	w := mat.NewVecDense(k, nil)
	w.MulVec(&v, scaled)

	for i := 0; i < k; i++ {
		if x := w.AtVec(i); math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, lspierr.Computation("solvePinv", "solution is "+
				"not finite")
		}
	}
	return w, nil
}

func validatePrecondition(op string, value float64, positive bool) error {
	if math.IsNaN(value) || value < 0 || (positive && value == 0) {
		bound := ">= 0"
		if positive {
			bound = "> 0"
		}
		return lspierr.Config(op, "precondition value must be %s, have %v",
			bound, value)
	}
	return nil
}

// LSTDQConfig describes an LSTDQ solver
type LSTDQConfig struct {
	PreconditionValue float64
}

// NewLSTDQTyped returns a new Typed LSTDQ solver
func NewLSTDQTyped(preconditionValue float64) (*Typed, error) {
	return NewTyped(LSTDQType, LSTDQConfig{preconditionValue})
}

// Create returns the LSTDQ solver described by the config
func (l LSTDQConfig) Create() (Solver, error) {
	return NewLSTDQ(l.PreconditionValue)
}

// ValidType returns if the given Solver type is a valid type to be
// created with this config.
func (l LSTDQConfig) ValidType(t Type) bool {
	return t == LSTDQType
}
