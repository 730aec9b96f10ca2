// SPDX-License-Identifier: MIT

package prune

import (
	"errors"
	"fmt"
)

// Sentinel errors for pruning.
var (
	// ErrEmptyReachableSet is returned when the initial kets have no non-zero amplitude.
	ErrEmptyReachableSet = errors.New("prune: initial states span no basis state")

	// ErrUnreachableStateAccessed is returned when a ket or index refers to a basis
	// state outside the retained set.
	ErrUnreachableStateAccessed = errors.New("prune: basis state not in pruned space")

	// ErrOperatorLeak is returned when an operator maps a retained state outside the
	// retained set, i.e. it was not among the generators of the space.
	ErrOperatorLeak = errors.New("prune: operator leaks amplitude outside pruned space")

	// ErrStateLimit is returned when the closure grows beyond the configured bound.
	ErrStateLimit = errors.New("prune: reachable set exceeds state limit")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("prune: invalid option supplied")
)

func pruneErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
