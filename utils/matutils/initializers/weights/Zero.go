package weights

// ZeroUV is a distuv.Rander which always draws 0, so that a LinearUV
// built from it initializes all weights to zero
type ZeroUV struct{}

// NewZeroUV returns a new ZeroUV
func NewZeroUV() ZeroUV {
	return ZeroUV{}
}

// Rand draws a random number from the interval [0, 0]
func (z ZeroUV) Rand() float64 {
	return 0.0
}
