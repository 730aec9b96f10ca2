// SPDX-License-Identifier: MIT

package prune

import (
	"fmt"
	"math"
)

// DefaultName is the name given to the factor space unless WithName is used.
const DefaultName = "pruned"

// Option configures FromInitial. An invalid Option is recorded and surfaced as
// ErrOptionViolation when FromInitial runs.
type Option func(*Options)

// Options holds the pruning parameters.
type Options struct {
	// Epsilon is the magnitude a summed matrix element must exceed to count as a
	// transition (and, in Prune, as a leak). Zero means "any non-zero value".
	Epsilon float64

	// MaxStates, if > 0, bounds the number of retained states.
	MaxStates int

	// Name labels the factor space.
	Name string

	err error
}

// DefaultOptions returns exact reachability (Epsilon 0), no state limit and DefaultName.
func DefaultOptions() Options {
	return Options{
		Epsilon:   0,
		MaxStates: 0,
		Name:      DefaultName,
	}
}

// WithEpsilon sets the reachability tolerance.
//
//	eps >= 0 and finite: accepted
//	otherwise:           ErrOptionViolation
func WithEpsilon(eps float64) Option {
	return func(o *Options) {
		if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
			o.err = fmt.Errorf("%w: epsilon must be finite and >= 0 (%v)", ErrOptionViolation, eps)
			return
		}
		o.Epsilon = eps
	}
}

// WithMaxStates bounds the closure.
//
//	n > 0:  at most n states
//	n == 0: explicit no limit
//	n < 0:  ErrOptionViolation
func WithMaxStates(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxStates cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxStates = n
	}
}

// WithName names the factor space. Empty names are ignored.
func WithName(name string) Option {
	return func(o *Options) {
		if name != "" {
			o.Name = name
		}
	}
}
