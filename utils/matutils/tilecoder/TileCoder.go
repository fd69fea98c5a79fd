// Package tilecoder implements tile coding of vectors
package tilecoder

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r1"
	"gonum.org/v1/gonum/stat/distmv"
	"gonum.org/v1/gonum/stat/samplemv"

	"github.com/samuelfneumann/golspi/utils/floatutils"
	"github.com/samuelfneumann/golspi/utils/intutils"
)

// Controls tiling offsets. For each dimension, tilings are offset by
// randomly sampling from a uniform distribution with support
// [- tiling width/OffsetDiv, tiling width/OffsetDiv]
const OffsetDiv float64 = 1.5

// TileCoder implements functionality for tile coding a vector. Tile
// coding takes a low-dimensional vector and changes it into a large,
// sparse vector consisting of only 0's and 1's. Each 1 represents the
// coordinates of the original vector in some space of tilings. For
// example:
//
//	[0.5, 0.1] -> [0, 0, 0, 1, 0, 0, 1, 0]
//
// The number of nonzero elements in the tile-coded representation equals
// the number of tilings used to encode the vector. The number of total
// features in the tile-coded representation is the sum over tilings of
// the number of tiles in each tiling. Tile coding requires that the
// space to be tiled be bounded.
//
// This implementation uses dense tilings over the entire state space,
// hash-based tile coding is not used.
type TileCoder struct {
	numTilings  int
	minDims     mat.Vector
	offsets     []*mat.Dense
	bins        [][]int
	binLengths  [][]float64
	seed        uint64
	includeBias bool
}

// New creates and returns a new TileCoder struct. The minDims
// and maxDims arguments are the bounds on each dimension between which
// tilings will be placed. These arguments should have the same shape
// as vectors which will be tile coded.
//
// The bins argument determines both the number of tilings to use and
// the number of tiles per each tiling. The number of elements in the
// outer slice determines the number of tilings to use. The sub-slices
// determine how many tiles are placed along each dimension for the
// respective tiling. For example, if bins := [][]int{{2, 2}, {4, 3}},
// then the TileCoder uses two tilings. The first tiling is a 2x2
// tiling. The second tiling uses 4 tiles along the first dimension and
// 3 tiles along the second dimension.
//
// The parameter includeBias determines whether or not a bias unit is
// kept as the first unit in the tile coded representation.
func New(minDims, maxDims mat.Vector, bins [][]int,
	seed uint64, includeBias bool) (*TileCoder, error) {
	if minDims.Len() != maxDims.Len() {
		return nil, fmt.Errorf("new: cannot specify minimum with a "+
			"different number of dimensions than maximum: %d != %d",
			minDims.Len(), maxDims.Len())
	}
	if len(bins) == 0 {
		return nil, fmt.Errorf("new: cannot have less than 1 tiling")
	}

	// Calculate the length of bins and the tiling offset bounds
	var bounds []r1.Interval
	numTilings := len(bins)
	binLengths := make([][]float64, numTilings)

	for j := 0; j < numTilings; j++ {
		if len(bins[j]) != minDims.Len() {
			return nil, fmt.Errorf("new: there should be a single number "+
				"of bins for each dimension in tiling %d: \n\thave(%d) "+
				"\n\twant (%d)", j, len(bins[j]), minDims.Len())
		}

		binLengths[j] = make([]float64, minDims.Len())
		for i := 0; i < minDims.Len(); i++ {
			if bins[j][i] < 1 {
				return nil, fmt.Errorf("new: tiling %d has %d tiles along "+
					"dimension %d", j, bins[j][i], i)
			}
			if maxDims.AtVec(i) <= minDims.AtVec(i) {
				return nil, fmt.Errorf("new: maximum %v must exceed "+
					"minimum %v along dimension %d", maxDims.AtVec(i),
					minDims.AtVec(i), i)
			}

			// Calculate the length of bins
			binLength := (maxDims.AtVec(i) - minDims.AtVec(i))
			binLength /= float64(bins[j][i])
			bound := binLength / OffsetDiv // Bounds tiling offsets

			binLengths[j][i] = binLength
			bounds = append(bounds, r1.Interval{Min: -bound, Max: bound})
		}
	}

	// Create RNG for uniform sampling of tiling offsets
	source := rand.NewSource(seed)
	u := distmv.NewUniform(bounds, source)
	sampler := samplemv.IID{Dist: u}

	// Calculate offsets. Each sample holds the offsets of all tilings,
	// but only the block belonging to tiling i is used for tiling i.
	offsets := make([]*mat.Dense, numTilings)
	for i := 0; i < numTilings; i++ {
		samples := mat.NewDense(1, len(bounds), nil)
		sampler.Sample(samples)

		start := i * minDims.Len()
		offsets[i] = mat.DenseCopyOf(samples.Slice(0, 1, start,
			start+minDims.Len()))
	}

	return &TileCoder{
		numTilings:  numTilings,
		minDims:     minDims,
		offsets:     offsets,
		bins:        bins,
		binLengths:  binLengths,
		seed:        seed,
		includeBias: includeBias,
	}, nil
}

// Calculates how many features exist in the tile-coded representation
// before tiling number i
func (t *TileCoder) featuresBeforeTiling(i int) int {
	features := 0
	for j := 0; j < i; j++ {
		features += intutils.Prod(t.bins[j])
	}
	return features
}

// encodeWithTiling returns the index of the tile coded feature vector
// which should be a 1.0 when the input vector v is encoded with tiling
// number tiling in the TileCoder.
func (t *TileCoder) encodeWithTiling(v mat.Vector, tiling int) int {
	bias := 0
	if t.includeBias {
		bias = 1
	}

	// indexOffset is the index into the tile-coded vector at which
	// the current tiling will start
	indexOffset := t.featuresBeforeTiling(tiling)
	index := 0
	stride := 1

	// Tile code the vector based on the current tiling. The last
	// dimension varies fastest in the flattened tiling.
	for i := len(t.bins[tiling]) - 1; i > -1; i-- {
		// Offset the tiling
		data := v.AtVec(i) + t.offsets[tiling].At(0, i)

		// Calculate the index of the tile along the current feature
		// dimension in which the feature falls
		tile := math.Floor((data - t.minDims.AtVec(i)) /
			t.binLengths[tiling][i])

		// Clip tile to within tiling bounds
		tile = floatutils.Clip(tile, 0.0, float64(t.bins[tiling][i]-1))

		index += int(tile) * stride
		stride *= t.bins[tiling][i]
	}
	return indexOffset + index + bias
}

// EncodeIndices returns a slice of the non-zero indices in the tile
// coded vector when v is tile coded with the receiving TileCoder t.
// If a bias unit is used, its index (0) is the last element.
func (t *TileCoder) EncodeIndices(v mat.Vector) ([]int, error) {
	if v.Len() != t.minDims.Len() {
		return nil, fmt.Errorf("encodeIndices: vector has %d dimensions, "+
			"tile coder expects %d", v.Len(), t.minDims.Len())
	}

	indices := make([]int, 0, t.numTilings+1)
	for i := 0; i < t.numTilings; i++ {
		indices = append(indices, t.encodeWithTiling(v, i))
	}

	if t.includeBias {
		indices = append(indices, 0)
	}
	return indices, nil
}

// Encode encodes a single vector as a tile-coded vector
func (t *TileCoder) Encode(v mat.Vector) (*mat.VecDense, error) {
	indices, err := t.EncodeIndices(v)
	if err != nil {
		return nil, fmt.Errorf("encode: %v", err)
	}

	tileCoded := mat.NewVecDense(t.VecLength(), nil)
	for _, index := range indices {
		tileCoded.SetVec(index, 1.0)
	}
	return tileCoded, nil
}

// String returns a string representation of a *TileCoder
func (t *TileCoder) String() string {
	return fmt.Sprintf("Tilings %d  |  Tiles: %v", t.numTilings, t.bins)
}

// VecLength returns the number of features in a tile-coded vector
func (t *TileCoder) VecLength() int {
	baseVec := t.featuresBeforeTiling(t.numTilings)
	if t.includeBias {
		return baseVec + 1
	}
	return baseVec
}

// NumTilings returns the number of tilings the tile coder uses for
// encoding vectors
func (t *TileCoder) NumTilings() int {
	return t.numTilings
}

// Dims returns the number of dimensions of vectors that can be encoded
func (t *TileCoder) Dims() int {
	return t.minDims.Len()
}
