// SPDX-License-Identifier: MIT

// Package prune restricts operators and states to the basis states reachable from
// a set of initial kets.
//
// What
//
//	FromInitial runs a breadth-first closure over basis-product states of a
//	hilbert.Product. A state s reaches s' under a generator G when the summed
//	matrix element ⟨s'|G|s⟩ is non-zero. The retained states, in first-discovered
//	order, become the levels 0..m-1 of a new hilbert.Space (the factor).
//
// Mappings
//
//   - Prune(op):      restricts op to the retained set. Factors on spaces outside
//     the pruned product pass through untouched, so a pruned part can be embedded
//     in a larger model and pruned again.
//   - PruneKet(k):    replaces the original spaces of k's product with the factor.
//   - Restore(k):     the inverse: replaces the factor with the original spaces.
//   - OrgEigenstates: the retained basis states as kets of the original product.
//
// Closure
//
//	The retained set is closed under every generator passed to FromInitial. Any
//	other operator may move amplitude outside it; Prune and CheckClosed detect such
//	a leak and return ErrOperatorLeak instead of silently dropping the amplitude.
//
// Complexity
//
//	FromInitial: O(m · T · F) for m retained states, T generator terms, F factors.
//	Prune:       O(m · T · F) plus O(m) map memory.
//
// Errors
//
//   - ErrEmptyReachableSet        no initial ket has a non-zero amplitude.
//   - ErrUnreachableStateAccessed a ket or index refers to a state that was not retained.
//   - ErrOperatorLeak             an operator maps a retained state outside the set.
//   - ErrStateLimit               the closure exceeded WithMaxStates.
//   - ErrOptionViolation          an invalid Option was supplied.
package prune
