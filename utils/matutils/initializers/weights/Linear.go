package weights

import (
	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// LinearUV initializes a linear weight vector using weights drawn
// independently from a univariate distribution
type LinearUV struct {
	distuv.Rander
}

// NewLinearUV creates and returns a new LinearUV
func NewLinearUV(rand distuv.Rander) LinearUV {
	if rand == nil {
		panic("rand cannot be nil")
	}
	return LinearUV{rand}
}

// NewUniform returns a LinearUV which draws weights uniformly from
// [min, max) using a source seeded with seed
func NewUniform(min, max float64, seed uint64) LinearUV {
	source := rand.NewSource(seed)
	return NewLinearUV(distuv.Uniform{Min: min, Max: max, Src: source})
}

// Initialize initializes a vector of weights using values drawn from
// a univariate distribution
func (l LinearUV) Initialize(weights *mat.VecDense) {
	if weights == nil {
		return
	}

	for i := 0; i < weights.Len(); i++ {
		weights.SetVec(i, l.Rand())
	}
}
