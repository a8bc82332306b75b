// Package vtime provides a virtual clock and a single threaded scheduler that executes actions in
// (due time, registration order) order. Nothing in this package reads the wall clock.
package vtime

import (
	"math"
)

// Time is a point on the virtual timeline. It carries no wall-clock meaning; only ordering and
// equality matter.
type Time int64

const (
	// MaxTime is the furthest representable virtual time.
	MaxTime Time = math.MaxInt64
)
