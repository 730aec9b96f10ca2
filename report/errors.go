// SPDX-License-Identifier: MIT

package report

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyTrajectory indicates a probability history with no samples.
	ErrEmptyTrajectory = errors.New("report: empty trajectory")

	// ErrEmptyState indicates a ket with no non-zero amplitude.
	ErrEmptyState = errors.New("report: state has no amplitude")

	// ErrShapeMismatch indicates labels, times and probabilities of inconsistent sizes.
	ErrShapeMismatch = errors.New("report: shape mismatch")

	// ErrInvalidThreshold indicates a negative or non-finite threshold.
	ErrInvalidThreshold = errors.New("report: threshold must be finite and >= 0")

	// ErrUnknownFormat indicates an unsupported encoding name.
	ErrUnknownFormat = errors.New("report: unknown format")

	// ErrReadUnsupported indicates a format that can only be written.
	ErrReadUnsupported = errors.New("report: format is write-only")
)

func reportErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
