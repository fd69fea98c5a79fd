// Package lspierr defines the classes of errors that can be returned
// by LSPI components.
//
// Errors are returned wrapped around one of the sentinel errors of this
// package, so that callers can determine the class of an error with the
// Is* functions regardless of how much context was added to it.
package lspierr

import (
	"github.com/pkg/errors"
)

// ErrConfig reports a violation of a caller contract which is detected
// before any work is done, such as a discount outside [0, 1] or a
// non-positive convergence threshold.
var ErrConfig = errors.New("invalid configuration")

// ErrIndex reports an action index outside of [0, NumActions).
var ErrIndex = errors.New("action index out of range")

// ErrShape reports a state vector that is incompatible with what a
// basis function expects.
var ErrShape = errors.New("incompatible state")

// ErrComputation reports a numerical failure that could not be
// recovered from, for example when both the direct and the
// pseudo-inverse solves of a linear system fail.
var ErrComputation = errors.New("computation failed")

// Config returns a configuration error for operation op
func Config(op, format string, args ...interface{}) error {
	return wrap(ErrConfig, op, format, args...)
}

// Index returns an index error for operation op
func Index(op string, action, numActions int) error {
	return wrap(ErrIndex, op, "action %d not in [0, %d)", action, numActions)
}

// Shape returns a shape error for operation op
func Shape(op, format string, args ...interface{}) error {
	return wrap(ErrShape, op, format, args...)
}

// Computation returns a computation error for operation op
func Computation(op, format string, args ...interface{}) error {
	return wrap(ErrComputation, op, format, args...)
}

func wrap(sentinel error, op, format string, args ...interface{}) error {
	return errors.Wrapf(sentinel, op+": "+format, args...)
}

// IsConfig returns whether err is a configuration error
func IsConfig(err error) bool {
	return errors.Is(err, ErrConfig)
}

// IsIndex returns whether err reports an out of range action index
func IsIndex(err error) bool {
	return errors.Is(err, ErrIndex)
}

// IsShape returns whether err reports an incompatible state
func IsShape(err error) bool {
	return errors.Is(err, ErrShape)
}

// IsComputation returns whether err reports an unrecoverable numerical
// failure
func IsComputation(err error) bool {
	return errors.Is(err, ErrComputation)
}
