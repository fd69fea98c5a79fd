package tracker

import (
	lspi "github.com/samuelfneumann/golspi"
)

// Distance tracks the distance between consecutive weight vectors of
// policy iteration. It implements lspi.Tracker.
type Distance struct {
	distances []float64
	filename  string
}

// NewDistance returns a new Distance tracker which saves to filename
func NewDistance(filename string) *Distance {
	return &Distance{filename: filename}
}

// Track records the distance of a policy iteration
func (d *Distance) Track(it lspi.Iteration) error {
	d.distances = append(d.distances, it.Distance)
	return nil
}

// Distances returns the distances of all tracked iterations, in order
func (d *Distance) Distances() []float64 {
	distances := make([]float64, len(d.distances))
	copy(distances, d.distances)
	return distances
}

// Save saves the tracked distances to disk
func (d *Distance) Save() error {
	return saveData(d.filename, d.distances)
}
