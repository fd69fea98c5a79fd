package matutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestCloneVec(t *testing.T) {
	v := mat.NewVecDense(3, []float64{1, 2, 3})
	clone := CloneVec(v)
	require.True(t, mat.Equal(v, clone))

	v.SetVec(0, -1)
	assert.Equal(t, 1.0, clone.AtVec(0))

	assert.Nil(t, CloneVec(nil))
}

func TestDistance(t *testing.T) {
	a := mat.NewVecDense(2, []float64{0, 0})
	b := mat.NewVecDense(2, []float64{3, 4})
	assert.InDelta(t, 5.0, Distance(a, b), 1e-12)
	assert.Equal(t, 0.0, Distance(b, b))

	assert.Panics(t, func() { Distance(a, mat.NewVecDense(1, nil)) })
}

func TestVecOnes(t *testing.T) {
	assert.True(t, mat.Equal(mat.NewVecDense(2, []float64{1, 1}),
		VecOnes(2)))
}
