package sample

import (
	"encoding/gob"
	"fmt"
	"io"
	"os"

	"gonum.org/v1/gonum/mat"
)

// record is the gob encoded form of a Sample. mat.Vector is an
// interface and cannot be gob encoded directly.
type record struct {
	State     []float64
	Action    int
	Reward    float64
	NextState []float64
	Absorb    bool
	HasNext   bool
}

// Save saves a batch of samples to a file using gob encoding
func Save(filename string, samples []Sample) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("save: could not create file: %v", err)
	}
	return save(file, samples)
}

// save encodes samples to w and closes it
func save(w io.WriteCloser, samples []Sample) (err error) {
	defer func() {
		if closeErr := w.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("save: could not close file: %v", closeErr)
		}
	}()

	records := make([]record, len(samples))
	for i, s := range samples {
		records[i] = record{
			State:     toSlice(s.State),
			Action:    s.Action,
			Reward:    s.Reward,
			NextState: toSlice(s.NextState),
			Absorb:    s.Absorb,
			HasNext:   s.NextState != nil,
		}
	}

	enc := gob.NewEncoder(w)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("save: could not encode samples: %v", err)
	}
	return nil
}

// Load loads a batch of samples saved with Save
func Load(filename string) ([]Sample, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("load: could not open file: %v", err)
	}
	defer file.Close()

	var records []record
	dec := gob.NewDecoder(file)
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("load: could not decode samples: %v", err)
	}

	samples := make([]Sample, len(records))
	for i, r := range records {
		samples[i] = Sample{
			State:  fromSlice(r.State),
			Action: r.Action,
			Reward: r.Reward,
			Absorb: r.Absorb,
		}
		if r.HasNext {
			samples[i].NextState = fromSlice(r.NextState)
		}
	}
	return samples, nil
}

func toSlice(v mat.Vector) []float64 {
	if v == nil {
		return nil
	}
	data := make([]float64, v.Len())
	for i := range data {
		data[i] = v.AtVec(i)
	}
	return data
}

// fromSlice returns a vector over data. The zero-length vector cannot
// be represented by gonum, so empty states are loaded as nil.
func fromSlice(data []float64) mat.Vector {
	if len(data) == 0 {
		return nil
	}
	return mat.NewVecDense(len(data), data)
}
