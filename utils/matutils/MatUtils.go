// Package matutils implements utility function for working with mat.Matrix
// structs
package matutils

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Format formats a matrix for printing
func Format(X mat.Matrix) string {
	fa := mat.Formatted(X, mat.Prefix(""), mat.Squeeze())
	return fmt.Sprintf("%v", fa)
}

// CloneVec returns a copy of v which shares no storage with v. A nil
// vector is cloned to nil.
func CloneVec(v mat.Vector) *mat.VecDense {
	if v == nil {
		return nil
	}
	clone := mat.NewVecDense(v.Len(), nil)
	clone.CloneFromVec(v)
	return clone
}

// VecOnes returns a vector of 1.0's
func VecOnes(length int) *mat.VecDense {
	oneSlice := make([]float64, length)
	for i := 0; i < length; i++ {
		oneSlice[i] = 1.0
	}
	return mat.NewVecDense(length, oneSlice)
}

// Distance returns the Euclidean distance between two vectors of the
// same length
func Distance(a, b mat.Vector) float64 {
	if a.Len() != b.Len() {
		panic(fmt.Sprintf("distance: vector lengths differ (%d != %d)",
			a.Len(), b.Len()))
	}
	diff := mat.NewVecDense(a.Len(), nil)
	diff.SubVec(a, b)
	return mat.Norm(diff, 2)
}
