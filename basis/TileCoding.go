package basis

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
	"github.com/samuelfneumann/golspi/utils/matutils/tilecoder"
)

// TileCoding is a basis which tile codes a bounded, continuous state.
// Each action has its own block of tile-coded features.
type TileCoding struct {
	actions
	coder *tilecoder.TileCoder
}

// NewTileCoding returns a new tile coding basis. See tilecoder.New for
// a description of the minDims, maxDims, bins, seed, and includeBias
// parameters.
func NewTileCoding(minDims, maxDims mat.Vector, bins [][]int,
	numActions int, seed uint64, includeBias bool) (*TileCoding, error) {
	const op = "newTileCoding"

	if minDims == nil || maxDims == nil {
		return nil, lspierr.Config(op, "state bounds must be non-nil")
	}
	coder, err := tilecoder.New(minDims, maxDims, bins, seed, includeBias)
	if err != nil {
		return nil, lspierr.Config(op, "%v", err)
	}

	a, err := newActions(op, numActions)
	if err != nil {
		return nil, err
	}

	return &TileCoding{actions: a, coder: coder}, nil
}

// Size returns the length of a tile-coded state times NumActions()
func (t *TileCoding) Size() int {
	return t.coder.VecLength() * t.numActions
}

// Evaluate returns the tile-coded state in the action's block
func (t *TileCoding) Evaluate(state mat.Vector,
	action int) (*mat.VecDense, error) {
	if err := t.checkAction("evaluate", action); err != nil {
		return nil, err
	}
	if state == nil || state.Len() != t.coder.Dims() {
		return nil, lspierr.Shape("evaluate", "state must have %d "+
			"dimensions", t.coder.Dims())
	}

	indices, err := t.coder.EncodeIndices(state)
	if err != nil {
		return nil, lspierr.Shape("evaluate", "%v", err)
	}

	phi := mat.NewVecDense(t.Size(), nil)
	offset := action * t.coder.VecLength()
	for _, i := range indices {
		phi.SetVec(offset+i, 1.0)
	}
	return phi, nil
}

// String returns a string representation of the basis
func (t *TileCoding) String() string {
	return fmt.Sprintf("TileCoding(%v, actions: %d)", t.coder, t.numActions)
}
