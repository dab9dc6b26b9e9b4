// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen covers a bad path, an unreadable stream and an unknown
	// container.
	ErrOpen = errors.New("cannot open audio source")

	ErrNoDefaultTrack   = errors.New("container has no default audio track")
	ErrUnsupportedCodec = errors.New("no decoder registered for codec")
)

// DecodeError is a non-recoverable failure while reading packets. It ends
// decoding of the file it names.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
