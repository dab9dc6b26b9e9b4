// SPDX-License-Identifier: EPL-2.0

package audio

// Layout selects how multi-channel samples are arranged in a buffer.
type Layout int

const (
	// Interleaved stores frames one after another: L R L R ...
	Interleaved Layout = iota
	// Planar stores each channel contiguously: L L ... R R ...
	Planar
)

func (l Layout) String() string {
	switch l {
	case Interleaved:
		return "interleaved"
	case Planar:
		return "planar"
	default:
		return "unknown"
	}
}

// Deinterleave copies interleaved src into dst in planar order.
// len(dst) must be at least len(src); a trailing partial frame is dropped.
// Returns the number of samples written.
func Deinterleave(dst, src []float32, channels int) int {
	if channels <= 1 {
		return copy(dst, src)
	}

	frames := len(src) / channels
	for c := range channels {
		plane := dst[c*frames : (c+1)*frames]
		for f := range frames {
			plane[f] = src[f*channels+c]
		}
	}

	return frames * channels
}
