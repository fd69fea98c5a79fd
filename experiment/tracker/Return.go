package tracker

import (
	"fmt"

	"github.com/samuelfneumann/golspi/sample"
)

// Return tracks and saves the return of consecutive segments of
// samples. A segment ends after window samples, or when an absorbing
// sample is tracked, whichever happens first. Domains which never
// absorb, such as the chain, are split into segments of window
// samples.
//
// Note: A segment must finish for this Tracker to save its return.
type Return struct {
	window        int
	count         int
	currentReturn float64
	returns       []float64
	filename      string
}

// NewReturn creates and returns a new *Return Tracker which saves to
// filename
func NewReturn(filename string, window int) (*Return, error) {
	if window < 1 {
		return nil, fmt.Errorf("newReturn: window must be >= 1, have %d",
			window)
	}
	return &Return{window: window, filename: filename}, nil
}

// Track accumulates the reward of a sample into the return of the
// current segment
func (r *Return) Track(s sample.Sample) error {
	r.currentReturn += s.Reward
	r.count++

	if s.Absorb || r.count == r.window {
		r.returns = append(r.returns, r.currentReturn)
		r.currentReturn = 0.0
		r.count = 0
	}
	return nil
}

// Returns returns the returns of all finished segments
func (r *Return) Returns() []float64 {
	returns := make([]float64, len(r.returns))
	copy(returns, r.returns)
	return returns
}

// Save saves the data tracked by the Return Tracker to disk.
func (r *Return) Save() error {
	return saveData(r.filename, r.returns)
}
