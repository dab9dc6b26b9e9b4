// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes AIFF through github.com/go-audio/aiff.
//
// Integer PCM at 8, 16, 24 and 32 bits is accepted. AIFF stores samples
// big endian and signed at every depth, unlike WAV's unsigned 8-bit.
//
// go-audio needs an io.ReadSeeker to walk the chunk list; plain readers
// are buffered in memory first.
package aiff
