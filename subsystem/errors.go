// SPDX-License-Identifier: MIT

package subsystem

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidDimension indicates a subsystem constructed with a non-positive level count.
	ErrInvalidDimension = errors.New("subsystem: dimension must be > 0")

	// ErrInvalidLevel indicates a level index outside the subsystem's range.
	ErrInvalidLevel = errors.New("subsystem: level out of range")

	// ErrInvalidParameter indicates a NaN or infinite energy or potential.
	ErrInvalidParameter = errors.New("subsystem: parameter must be finite")
)

func subsystemErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
