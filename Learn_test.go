package lspi

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
)

// solverFunc adapts a function to the solver.Solver interface
type solverFunc func([]sample.Sample, *policy.Policy) (*mat.VecDense, error)

func (f solverFunc) Solve(samples []sample.Sample,
	p *policy.Policy) (*mat.VecDense, error) {
	return f(samples, p)
}

// trackerFunc adapts a function to the Tracker interface
type trackerFunc func(Iteration) error

func (f trackerFunc) Track(it Iteration) error {
	return f(it)
}

func newPolicy(t *testing.T) *policy.Policy {
	b, err := basis.NewOneDimensionalPolynomial(2, 2)
	require.NoError(t, err)
	p, err := policy.New(b, policy.DefaultConfig(), nil, 1)
	require.NoError(t, err)
	return p
}

func newSamples() []sample.Sample {
	return []sample.Sample{
		sample.New(mat.NewVecDense(1, []float64{0}), 0, 1,
			mat.NewVecDense(1, []float64{1}), false),
	}
}

// copyWeights returns a solver which returns a copy of the policy
// weights and counts its calls
func copyWeights(calls *int) solverFunc {
	return func(_ []sample.Sample, p *policy.Policy) (*mat.VecDense, error) {
		*calls++
		return p.Weights(), nil
	}
}

func TestDefaultConfig(t *testing.T) {
	c := DefaultConfig()
	assert.Equal(t, 1e-5, c.Epsilon)
	assert.Equal(t, 10, c.MaxIterations)
	assert.NoError(t, c.Validate())
}

func TestMaxIterations(t *testing.T) {
	calls := 0
	s := solverFunc(func(_ []sample.Sample,
		p *policy.Policy) (*mat.VecDense, error) {
		calls++
		w := p.Weights()
		w.AddVec(w, mat.NewVecDense(w.Len(), filled(w.Len(), 100)))
		return w, nil
	})

	_, err := Learn(newSamples(), newPolicy(t), s, 1e-5, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, calls)
}

func TestEpsilon(t *testing.T) {
	calls := 0
	_, err := Learn(newSamples(), newPolicy(t), copyWeights(&calls), 1e-5, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
}

func TestConvergesOnSecondIteration(t *testing.T) {
	target := mat.NewVecDense(6, filled(6, 0.5))

	calls := 0
	s := solverFunc(func(_ []sample.Sample,
		p *policy.Policy) (*mat.VecDense, error) {
		calls++
		return mat.VecDenseCopyOf(target), nil
	})

	learned, err := Learn(newSamples(), newPolicy(t), s, 1e-5, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.True(t, mat.Equal(target, learned.Weights()))
}

func TestReturnsNewPolicy(t *testing.T) {
	initial := newPolicy(t)
	initialWeights := initial.Weights()

	calls := 0
	learned, err := Learn(newSamples(), initial, copyWeights(&calls), 1e-5,
		10)
	require.NoError(t, err)

	assert.NotSame(t, initial, learned)
	assert.True(t, mat.Equal(initialWeights, learned.Weights()))

	// Weights are independent of the initial policy
	raw := learned.Weights().RawVector().Data
	assert.NotSame(t, &initialWeights.RawVector().Data[0], &raw[0])
	assert.True(t, mat.Equal(initialWeights, initial.Weights()))
}

func TestSolverArguments(t *testing.T) {
	samples := newSamples()
	initial := newPolicy(t)

	s := solverFunc(func(data []sample.Sample,
		p *policy.Policy) (*mat.VecDense, error) {
		assert.Equal(t, samples, data)
		assert.Same(t, initial, p)
		return p.Weights(), nil
	})

	_, err := Learn(samples, initial, s, 1e-5, 10)
	require.NoError(t, err)
}

func TestConfigErrors(t *testing.T) {
	calls := 0
	s := copyWeights(&calls)

	tests := []struct {
		name          string
		epsilon       float64
		maxIterations int
	}{
		{"ZeroEpsilon", 0, 10},
		{"NegativeEpsilon", -1e-5, 10},
		{"ZeroIterations", 1e-5, 0},
		{"NegativeIterations", 1e-5, -1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Learn(newSamples(), newPolicy(t), s, test.epsilon,
				test.maxIterations)
			assert.True(t, lspierr.IsConfig(err))
		})
	}
	assert.Equal(t, 0, calls)

	_, err := Learn(newSamples(), nil, s, 1e-5, 10)
	assert.True(t, lspierr.IsConfig(err))
	_, err = Learn(newSamples(), newPolicy(t), nil, 1e-5, 10)
	assert.True(t, lspierr.IsConfig(err))
}

func TestSolverErrors(t *testing.T) {
	failing := solverFunc(func([]sample.Sample,
		*policy.Policy) (*mat.VecDense, error) {
		return nil, lspierr.Computation("solve", "failed")
	})
	_, err := Learn(newSamples(), newPolicy(t), failing, 1e-5, 10)
	assert.True(t, lspierr.IsComputation(err))

	wrongLength := solverFunc(func([]sample.Sample,
		*policy.Policy) (*mat.VecDense, error) {
		return mat.NewVecDense(1, nil), nil
	})
	_, err = Learn(newSamples(), newPolicy(t), wrongLength, 1e-5, 10)
	assert.True(t, lspierr.IsComputation(err))
	assert.False(t, lspierr.IsConfig(err))

	nilWeights := solverFunc(func([]sample.Sample,
		*policy.Policy) (*mat.VecDense, error) {
		return nil, nil
	})
	_, err = Learn(newSamples(), newPolicy(t), nilWeights, 1e-5, 10)
	assert.True(t, lspierr.IsComputation(err))
}

func TestLearnerTrackersAndLogging(t *testing.T) {
	var out bytes.Buffer
	logger := zerolog.New(&out).Level(zerolog.DebugLevel)

	var iterations []Iteration
	tracker := trackerFunc(func(it Iteration) error {
		iterations = append(iterations, it)
		return nil
	})

	calls := 0
	l, err := NewLearner(Config{Epsilon: 1e-5, MaxIterations: 5}, logger,
		tracker)
	require.NoError(t, err)

	learned, err := l.Learn(newSamples(), newPolicy(t), copyWeights(&calls))
	require.NoError(t, err)

	require.Len(t, iterations, 1)
	assert.Equal(t, 1, iterations[0].Number)
	assert.Equal(t, 0.0, iterations[0].Distance)
	assert.True(t, mat.Equal(learned.Weights(), iterations[0].Weights))

	assert.Contains(t, out.String(), `"iteration":1`)
	assert.Contains(t, out.String(), `"converged":true`)
}

func TestLearnerTrackerError(t *testing.T) {
	failing := trackerFunc(func(Iteration) error {
		return errors.New("disk full")
	})

	calls := 0
	l, err := NewLearner(DefaultConfig(), zerolog.Nop())
	require.NoError(t, err)
	l.Register(failing)

	_, err = l.Learn(newSamples(), newPolicy(t), copyWeights(&calls))
	assert.Error(t, err)
}

func TestNewLearnerErrors(t *testing.T) {
	_, err := NewLearner(Config{}, zerolog.Nop())
	assert.True(t, lspierr.IsConfig(err))
}

func filled(n int, value float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = value
	}
	return data
}
