package basis

import (
	"gonum.org/v1/gonum/mat"

	"github.com/samuelfneumann/golspi/lspierr"
)

// Type describes a type of basis function
type Type string

const (
	FakeType       Type = "Fake"
	PolynomialType Type = "Polynomial"
	RadialType     Type = "Radial"
	ExactType      Type = "Exact"
	TileCodingType Type = "TileCoding"
)

// Config describes a basis function. Only the fields used by the basis
// named by Type need to be set.
type Config struct {
	Type Type

	// Polynomial
	Degree int

	// Radial
	Means [][]float64
	Gamma float64

	// Exact
	NumStates []int

	// TileCoding
	Min, Max    []float64
	Bins        [][]int
	Seed        uint64
	IncludeBias bool
}

// Create returns a new basis with numActions actions described by
// the Config
func (c Config) Create(numActions int) (Basis, error) {
	switch c.Type {
	case FakeType:
		return NewFake(numActions)

	case PolynomialType:
		return NewOneDimensionalPolynomial(c.Degree, numActions)

	case RadialType:
		means := make([]mat.Vector, len(c.Means))
		for i := range c.Means {
			if len(c.Means[i]) == 0 {
				return nil, lspierr.Config("create", "mean %d is empty", i)
			}
			means[i] = mat.NewVecDense(len(c.Means[i]), c.Means[i])
		}
		return NewRadial(means, c.Gamma, numActions)

	case ExactType:
		return NewExact(c.NumStates, numActions)

	case TileCodingType:
		if len(c.Min) == 0 || len(c.Max) == 0 {
			return nil, lspierr.Config("create", "tile coding bounds must "+
				"be non-empty")
		}
		min := mat.NewVecDense(len(c.Min), c.Min)
		max := mat.NewVecDense(len(c.Max), c.Max)
		return NewTileCoding(min, max, c.Bins, numActions, c.Seed,
			c.IncludeBias)
	}

	return nil, lspierr.Config("create", "unknown basis type %q", c.Type)
}
