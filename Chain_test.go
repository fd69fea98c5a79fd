package lspi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	lspi "github.com/samuelfneumann/golspi"
	"github.com/samuelfneumann/golspi/basis"
	"github.com/samuelfneumann/golspi/environment/chain"
	"github.com/samuelfneumann/golspi/experiment"
	"github.com/samuelfneumann/golspi/policy"
	"github.com/samuelfneumann/golspi/sample"
	"github.com/samuelfneumann/golspi/solver"
)

const steps = 1000

// randomSamples returns samples gathered by a uniform random policy on
// the default chain, along with the chain
func randomSamples(t *testing.T) (*chain.Chain, []sample.Sample) {
	d, err := chain.DefaultConfig().Create(42)
	require.NoError(t, err)

	b, err := basis.NewFake(d.NumActions())
	require.NoError(t, err)
	c := policy.Config{Discount: 0.9, Explore: 1, TieBreaking: policy.RandomWins}
	random, err := policy.New(b, c, nil, 42)
	require.NoError(t, err)

	samples, err := experiment.Collect(d, random, steps)
	require.NoError(t, err)
	return d, samples
}

func cumulativeReward(samples []sample.Sample) float64 {
	total := 0.0
	for _, s := range samples {
		total += s.Reward
	}
	return total
}

func TestChainLearning(t *testing.T) {
	radialMeans := make([]mat.Vector, 5)
	for i := range radialMeans {
		radialMeans[i] = mat.NewVecDense(1, []float64{float64(2 * i)})
	}

	tests := []struct {
		name  string
		basis func() (basis.Basis, error)
	}{
		{"Polynomial", func() (basis.Basis, error) {
			return basis.NewOneDimensionalPolynomial(3, 2)
		}},
		{"Radial", func() (basis.Basis, error) {
			return basis.NewRadial(radialMeans, 0.5, 2)
		}},
		{"Exact", func() (basis.Basis, error) {
			return basis.NewExact([]int{10}, 2)
		}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d, samples := randomSamples(t)
			randomReward := cumulativeReward(samples)

			b, err := test.basis()
			require.NoError(t, err)
			c := policy.Config{Discount: 0.9, TieBreaking: policy.RandomWins}
			initial, err := policy.New(b, c, nil, 1)
			require.NoError(t, err)

			s, err := solver.NewLSTDQ(0.1)
			require.NoError(t, err)

			learned, err := lspi.Learn(samples, initial, s,
				lspi.DefaultEpsilon, lspi.DefaultMaxIterations)
			require.NoError(t, err)

			require.NoError(t, d.Reset(nil))
			reward, err := experiment.Evaluate(d, learned, steps)
			require.NoError(t, err)
			assert.Greater(t, reward, randomReward)
		})
	}
}
