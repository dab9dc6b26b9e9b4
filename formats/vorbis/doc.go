// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis through github.com/jfreymuth/oggvorbis.
//
// Vorbis decodes to float natively, so samples pass through without
// conversion, interleaved in the stream's own channel order.
package vorbis
