package checkpointer

import (
	"fmt"

	lspi "github.com/samuelfneumann/golspi"
)

// NStep implements checkpointing every N policy iterations. NStep is
// an lspi.Tracker, so it can be registered with an lspi.Learner.
type NStep struct {
	interval int

	// filename returns the string filename of the file to save the
	// weights in.
	//
	// If each checkpoint should be saved in a separate file with
	// each file having an incremented number as a suffix (e.g.
	// file1.bin, file2.bin, ..., fileK.bin), then simply use the
	// static function FilenameEnumerator, which will return a function
	// that will enumerate filenames.
	filename func() string
}

// NewNStep returns a checkpointer that checkpoints every n iterations
func NewNStep(n int, filename func() string) (*NStep, error) {
	if n < 1 {
		return nil, fmt.Errorf("newNStep: n must be >= 1, have %d", n)
	}
	if filename == nil {
		return nil, fmt.Errorf("newNStep: filename function must be " +
			"non-nil")
	}
	return &NStep{interval: n, filename: filename}, nil
}

// Checkpoint saves the weights of the iteration if its number is a
// multiple of the checkpointing interval
func (n *NStep) Checkpoint(it lspi.Iteration) error {
	if it.Number%n.interval == 0 {
		return SaveWeights(n.filename(), it.Weights)
	}
	return nil
}

// Track implements the lspi.Tracker interface
func (n *NStep) Track(it lspi.Iteration) error {
	return n.Checkpoint(it)
}
