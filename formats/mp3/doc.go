// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III through github.com/hajimehoshi/go-mp3.
//
// The decoder always yields interleaved stereo; mono files come out with
// both channels equal. Samples are scaled from int16 to [-1, 1).
package mp3
