// SPDX-License-Identifier: MIT

// Package model assembles composite open quantum systems from subsystems and
// prunes them to the subspace reachable from an initial state.
//
// A Builder collects diagonal potentials, couplings (each added together with its
// adjoint) and decay channels in declaration order, then Build validates the
// result against a hilbert.Product: every operator must act inside the product,
// every rate must be finite and non-negative, and the Hamiltonian must be
// Hermitian within the builder's epsilon.
//
// Two concrete models are provided:
//
//   - Chemical: two atoms sharing one transport band, three cavities.
//   - Optical:  two atom/transport/anode bundles, each pruned on its own before
//     composition, three cavities plus one anode cavity.
//
// PruneModel restricts any Model to the states reachable under its Hamiltonian
// and decay operators. PrunedChemical and PrunedOptical add human-readable labels
// for the retained states; PrunedOptical restores through both nesting levels.
package model
