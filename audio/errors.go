// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	// ErrTransient marks a recoverable codec failure: the offending packet
	// is lost but the stream can still be read.
	ErrTransient = errors.New("transient decode error")
)

// Transient wraps err so that errors.Is(err, ErrTransient) holds.
func Transient(err error) error {
	if err == nil {
		return nil
	}

	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// IsTransient reports whether err is a recoverable packet error.
func IsTransient(err error) bool {
	return errors.Is(err, ErrTransient)
}
