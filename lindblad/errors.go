// SPDX-License-Identifier: MIT

package lindblad

import (
	"errors"
	"fmt"
)

var (
	// ErrDimensionMismatch indicates matrices of incompatible shapes.
	ErrDimensionMismatch = errors.New("lindblad: dimension mismatch")

	// ErrNegativeRate indicates a negative or non-finite jump rate.
	ErrNegativeRate = errors.New("lindblad: rate must be finite and >= 0")

	// ErrInvalidHbar indicates a non-positive or non-finite ħ.
	ErrInvalidHbar = errors.New("lindblad: hbar must be finite and > 0")

	// ErrInvalidStep indicates a non-positive step or a negative span.
	ErrInvalidStep = errors.New("lindblad: invalid span or step")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("lindblad: invalid option supplied")

	// ErrUnknownMethod indicates an unsupported integration scheme name.
	ErrUnknownMethod = errors.New("lindblad: unknown integration method")
)

func lindbladErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
