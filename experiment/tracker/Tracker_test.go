package tracker

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	lspi "github.com/samuelfneumann/golspi"
	"github.com/samuelfneumann/golspi/sample"
)

var _ lspi.Tracker = &Distance{}

func rewarded(r float64, absorb bool) sample.Sample {
	s := mat.NewVecDense(1, nil)
	return sample.New(s, 0, r, s, absorb)
}

func TestReturn(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "return.bin")
	r, err := NewReturn(filename, 3)
	require.NoError(t, err)

	rewards := []float64{1, 0, 1, 1, 1, 1, 0}
	for _, reward := range rewards {
		require.NoError(t, r.Track(rewarded(reward, false)))
	}
	assert.Equal(t, []float64{2, 3}, r.Returns())

	// Absorbing samples end the segment early
	require.NoError(t, r.Track(rewarded(5, true)))
	assert.Equal(t, []float64{2, 3, 5}, r.Returns())

	require.NoError(t, r.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3, 5}, data)
}

func TestReturnWindow(t *testing.T) {
	_, err := NewReturn("return.bin", 0)
	assert.Error(t, err)
}

func TestDistance(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "distance.bin")
	d := NewDistance(filename)

	for i, dist := range []float64{3, 0.5, 0} {
		require.NoError(t, d.Track(lspi.Iteration{Number: i + 1,
			Distance: dist}))
	}
	assert.Equal(t, []float64{3, 0.5, 0}, d.Distances())

	require.NoError(t, d.Save())
	data, err := LoadData(filename)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 0.5, 0}, data)
}

func TestLoadDataMissing(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.bin"))
	assert.Error(t, err)
}
