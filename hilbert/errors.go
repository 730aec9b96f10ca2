// SPDX-License-Identifier: MIT
// Package hilbert: sentinel error set.
// Every message is prefixed with "hilbert: ..." and callers match with errors.Is.
// Call sites wrap with hilbertErrorf to attach the operation tag.

package hilbert

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension is returned when a space is created with a non-positive level count.
	ErrInvalidDimension = errors.New("hilbert: dimension must be > 0")

	// ErrLevelOutOfRange indicates a level (or flat basis index) outside its valid range.
	ErrLevelOutOfRange = errors.New("hilbert: level out of range")

	// ErrSpaceMismatch indicates an operator or ket refers to spaces the product does not hold,
	// or that two kets/products that must agree do not.
	ErrSpaceMismatch = errors.New("hilbert: space mismatch")

	// ErrDuplicateSpace indicates the same space appears twice in one product or term.
	ErrDuplicateSpace = errors.New("hilbert: duplicate space")

	// ErrNilSpace indicates a nil *Space was passed where a space is required.
	ErrNilSpace = errors.New("hilbert: nil space")

	// ErrDimensionOverflow indicates a product whose total dimension does not fit in an int.
	ErrDimensionOverflow = errors.New("hilbert: product dimension overflows int")

	// ErrNotHermitian indicates an operator differs from its adjoint by more than eps.
	ErrNotHermitian = errors.New("hilbert: operator is not Hermitian within eps")

	// ErrEmptyState indicates a ket without any non-zero amplitude.
	ErrEmptyState = errors.New("hilbert: state has no non-zero amplitude")

	// ErrNaNInf indicates a NaN or infinite amplitude or tolerance.
	ErrNaNInf = errors.New("hilbert: NaN or Inf encountered")

	// ErrNoConvergence indicates the eigen solver failed to factorize.
	ErrNoConvergence = errors.New("hilbert: eigen decomposition failed")
)

// panicLevelOutOfRange is raised by builders that take compile-time level constants.
const panicLevelOutOfRange = "hilbert: level out of range for space"

// hilbertErrorf wraps err with an operation tag, preserving the sentinel for errors.Is.
func hilbertErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
