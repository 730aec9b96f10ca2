// SPDX-License-Identifier: MIT

// Package subsystem builds the elementary degrees of freedom of the models:
// ladder-shaped subsystems (cavities, bands, orbits), the 4-level atom and the
// atom/transport/anode bundle.
//
// Every subsystem owns its hilbert.Space values and exposes read-only operators
// on them. Operators are built once at construction and never mutated.
//
// Ladder
//
//	up        = Σ_{i<n-1} √(i+1) |i+1⟩⟨i|
//	down      = up†
//	potential = scale · Σ i |i⟩⟨i|
//
// A Ladder carries a Kind tag: KindEnergy for bosonic cavities (scale is the level
// spacing) and KindPotential for bands and orbits (scale is the potential step).
// The operators are identical for both kinds.
//
// Atom
//
// Four levels with explicit potentials. Transition returns the raw, non-Hermitian
// coupling to three cavities and a band; callers add its adjoint when assembling a
// Hamiltonian. The 1↔2 transition leaves the band untouched.
//
// Errors
//
//   - ErrInvalidDimension if a ladder is created with n <= 0.
//   - ErrInvalidLevel     for levels outside a subsystem's range.
//   - ErrInvalidParameter for NaN or infinite energies and potentials.
package subsystem
