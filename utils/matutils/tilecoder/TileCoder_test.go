package tilecoder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

func newTwoDim(t *testing.T, bias bool) *TileCoder {
	tc, err := New(
		mat.NewVecDense(2, []float64{0, 0}),
		mat.NewVecDense(2, []float64{1, 1}),
		[][]int{{2, 2}, {4, 3}},
		12,
		bias,
	)
	require.NoError(t, err)
	return tc
}

func TestVecLength(t *testing.T) {
	assert.Equal(t, 4+12, newTwoDim(t, false).VecLength())
	assert.Equal(t, 4+12+1, newTwoDim(t, true).VecLength())
	assert.Equal(t, 2, newTwoDim(t, true).NumTilings())
	assert.Equal(t, 2, newTwoDim(t, true).Dims())
}

func TestEncode(t *testing.T) {
	for _, bias := range []bool{false, true} {
		tc := newTwoDim(t, bias)
		v := mat.NewVecDense(2, []float64{0.3, 0.8})

		encoded, err := tc.Encode(v)
		require.NoError(t, err)
		require.Equal(t, tc.VecLength(), encoded.Len())

		// One active tile per tiling, plus the bias unit
		active := floats.Sum(encoded.RawVector().Data)
		want := float64(tc.NumTilings())
		if bias {
			want++
			assert.Equal(t, 1.0, encoded.AtVec(0))
		}
		assert.Equal(t, want, active)

		// Encoding is deterministic
		again, err := tc.Encode(v)
		require.NoError(t, err)
		assert.True(t, mat.Equal(encoded, again))
	}
}

func TestEncodeIndicesWithinTiling(t *testing.T) {
	tc := newTwoDim(t, false)
	indices, err := tc.EncodeIndices(mat.NewVecDense(2, []float64{5, -5}))
	require.NoError(t, err)
	require.Len(t, indices, 2)

	// Out of bounds vectors are clipped into the edge tiles
	assert.True(t, indices[0] >= 0 && indices[0] < 4)
	assert.True(t, indices[1] >= 4 && indices[1] < 16)
}

func TestEncodeWrongDims(t *testing.T) {
	tc := newTwoDim(t, false)
	_, err := tc.Encode(mat.NewVecDense(3, nil))
	assert.Error(t, err)
}

func TestNewErrors(t *testing.T) {
	min := mat.NewVecDense(2, nil)
	max := mat.NewVecDense(2, []float64{1, 1})

	_, err := New(min, mat.NewVecDense(1, []float64{1}), [][]int{{2, 2}}, 1,
		false)
	assert.Error(t, err)

	_, err = New(min, max, nil, 1, false)
	assert.Error(t, err)

	_, err = New(min, max, [][]int{{2}}, 1, false)
	assert.Error(t, err)

	_, err = New(min, max, [][]int{{2, 0}}, 1, false)
	assert.Error(t, err)

	_, err = New(min, min, [][]int{{2, 2}}, 1, false)
	assert.Error(t, err)
}

func BenchmarkTileCoder(b *testing.B) {
	tc, err := New(
		mat.NewVecDense(8, []float64{0, 0, 0, 0, 0, 0, 0, 0}),
		mat.NewVecDense(8, []float64{1, 1, 1, 1, 1, 1, 1, 1}),
		[][]int{{4, 4, 4, 4, 4, 4, 4, 4}},
		12,
		true,
	)
	if err != nil {
		b.Fatal(err)
	}

	y := mat.NewVecDense(8, []float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5})

	for i := 0; i < b.N; i++ {
		tc.Encode(y)
	}
}
