// SPDX-License-Identifier: MIT

// Package opticalinterpretation models small open quantum systems (atoms,
// transport bands and cavities) and shrinks them to the states they can
// actually reach before evolving them.
//
// 🚀 What is in the box?
//
//	A pure-Go toolkit that brings together:
//		• Operator algebra: sparse factors and terms over named spaces
//		• Subsystems: cavities, bands, orbits, 4-level atoms, ATA bundles
//		• Models: Hermitian Hamiltonian plus paired decay channels
//		• Pruning: BFS closure over the generators, restore and nesting
//		• Evolution: Lindblad master equation (RK4, Euler) on gonum matrices
//		• Reporting: decode, classify, JSON/MessagePack/CSV, SQLite archive
//
// Under the hood the code is organized in flat subpackages:
//
//	hilbert/     spaces, products, operators, kets, Hermitian checks
//	subsystem/   elementary builders (Ladder, Atom, AtomTransportAnode)
//	model/       Builder, Model, the chemical and optical compositions
//	prune/       reachable-subspace mapping: FromInitial, Prune, Restore
//	lindblad/    master-equation integrator and sample Recorder
//	report/      Decode, Classify, Report encoders
//	simulation/  Run and RunAll: model → evolution → report
//	archive/     report persistence (memory, sqlite)
//	config/      YAML + .env + OPTINT_* configuration
//	logging/     zerolog setup
//	cmd/optint/  command line tool
//
// Quick picture of pruning a two-atom chemical model:
//
//	|3⟩at0 |0⟩at1 |0⟩tp |001⟩ ──H──▶ |2⟩at0 |0⟩at1 |1⟩tp |000⟩ ──H──▶ …
//	        │
//	        └──c23↓──▶ |3⟩at0 |0⟩at1 |0⟩tp |000⟩
//
// Only the states discovered this way become levels of the pruned factor;
// the 864 product states of the chemical model shrink to 14.
//
//	go install github.com/ZhengKeli/OpticalInterpretation/cmd/optint@latest
package opticalinterpretation
