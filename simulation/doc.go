// SPDX-License-Identifier: MIT

// Package simulation runs a pruned model through the Lindblad integrator and
// turns the recorded populations into a report.
//
// A run samples the diagonal of ρ every Span/Samples time units (plus the start
// and the end), classifies each state's history against Threshold and attaches
// the energy spectrum of the Hamiltonian. RunAll evolves several independent
// models concurrently; the first failure cancels the rest.
package simulation
