// SPDX-License-Identifier: MIT

package archive

import (
	"errors"
	"fmt"
)

var (
	// ErrNotInitialized indicates a store used before Init.
	ErrNotInitialized = errors.New("archive: store is not initialized")

	// ErrUnsupportedBackend indicates an unknown backend name.
	ErrUnsupportedBackend = errors.New("archive: unsupported backend")

	// ErrPathRequired indicates a file-backed store without a path.
	ErrPathRequired = errors.New("archive: path is required")

	// ErrVersionMismatch indicates a payload written by an incompatible codec.
	ErrVersionMismatch = errors.New("archive: record version mismatch")

	// ErrNilReport indicates SaveReport was called with a nil report or empty run id.
	ErrNilReport = errors.New("archive: nil report")
)

func archiveErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}
