// Package intutils provides utilities for working with ints
package intutils

// Prod calculates the product of all integers in a []int. The product
// of an empty slice is 1.
func Prod(ints []int) int {
	prod := 1
	for _, v := range ints {
		prod *= v
	}
	return prod
}

// Clip clips an integer to within [min, max]
func Clip(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
