// Package checkpointer implements checkpointing of policy weights
// during policy iteration
package checkpointer

import (
	"fmt"
	"os"

	"gonum.org/v1/gonum/mat"

	lspi "github.com/samuelfneumann/golspi"
)

// Checkpointer checkpoints policy weights based on policy iterations
type Checkpointer interface {
	Checkpoint(lspi.Iteration) error
}

// SaveWeights saves a weight vector to a file in gonum's binary format
func SaveWeights(filename string, weights *mat.VecDense) error {
	data, err := weights.MarshalBinary()
	if err != nil {
		return fmt.Errorf("saveWeights: could not marshal weights: %v", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("saveWeights: could not write weights: %v", err)
	}
	return nil
}

// LoadWeights loads a weight vector saved with SaveWeights
func LoadWeights(filename string) (*mat.VecDense, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("loadWeights: could not read weights: %v",
			err)
	}

	var weights mat.VecDense
	if err := weights.UnmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("loadWeights: could not unmarshal "+
			"weights: %v", err)
	}
	return &weights, nil
}
