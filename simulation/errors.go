// SPDX-License-Identifier: MIT

package simulation

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSettings indicates a span, step, sample count or threshold out of range.
	ErrInvalidSettings = errors.New("simulation: invalid settings")

	// ErrNilSubject indicates a job without a model.
	ErrNilSubject = errors.New("simulation: nil subject")
)

func simulationErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
