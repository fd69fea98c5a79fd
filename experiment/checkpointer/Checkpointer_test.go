package checkpointer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	lspi "github.com/samuelfneumann/golspi"
)

var _ lspi.Tracker = &NStep{}

func TestFilenameEnumerator(t *testing.T) {
	next := FilenameEnumerator(0, "weights", ".bin")
	assert.Equal(t, "weights1.bin", next())
	assert.Equal(t, "weights2.bin", next())

	next = FilenameEnumerator(10, "w", "")
	assert.Equal(t, "w11", next())
}

func TestSaveLoadWeights(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "weights.bin")
	w := mat.NewVecDense(3, []float64{1, -2.5, 3})

	require.NoError(t, SaveWeights(filename, w))
	loaded, err := LoadWeights(filename)
	require.NoError(t, err)
	assert.True(t, mat.Equal(w, loaded))

	_, err = LoadWeights(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}

func TestNStep(t *testing.T) {
	dir := t.TempDir()
	n, err := NewNStep(2, FilenameEnumerator(0,
		filepath.Join(dir, "weights"), ".bin"))
	require.NoError(t, err)

	for i := 1; i <= 5; i++ {
		w := mat.NewVecDense(2, []float64{float64(i), 0})
		require.NoError(t, n.Track(lspi.Iteration{Number: i, Weights: w}))
	}

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	// Iterations 2 and 4 are checkpointed
	for i, want := range []float64{2, 4} {
		w, err := LoadWeights(filepath.Join(dir,
			FilenameEnumerator(i, "weights", ".bin")()))
		require.NoError(t, err)
		assert.Equal(t, want, w.AtVec(0))
	}
}

func TestNewNStepErrors(t *testing.T) {
	_, err := NewNStep(0, FilenameEnumerator(0, "w", ".bin"))
	assert.Error(t, err)
	_, err = NewNStep(1, nil)
	assert.Error(t, err)
}
