// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNonHermitianHamiltonian indicates an assembled Hamiltonian that differs from
	// its adjoint, usually a coupling added without its conjugate.
	ErrNonHermitianHamiltonian = errors.New("model: Hamiltonian is not Hermitian")

	// ErrNegativeRate indicates a negative, NaN or infinite decay rate.
	ErrNegativeRate = errors.New("model: decay rate must be finite and >= 0")

	// ErrInvalidHbar indicates a non-positive or non-finite ħ.
	ErrInvalidHbar = errors.New("model: hbar must be finite and > 0")

	// ErrNilProduct indicates Build was called without a product.
	ErrNilProduct = errors.New("model: nil product")

	// ErrTooLarge indicates a dense export beyond MaxDenseDim.
	ErrTooLarge = errors.New("model: dimension too large for dense export")
)

func modelErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
