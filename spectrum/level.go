// SPDX-License-Identifier: EPL-2.0

package spectrum

import "math"

// FloorDB is the level treated as silence by Level.
const FloorDB = -150

// Level maps a decibel value onto [0, 1] with floor at 0 and 0 dB at 1.
// -Inf and NaN map to 0.
func Level(db, floor float32) float32 {
	if floor >= 0 || math.IsNaN(float64(db)) {
		return 0
	}

	l := (db - floor) / -floor
	switch {
	case l < 0:
		return 0
	case l > 1:
		return 1
	default:
		return l
	}
}

// BinFrequency is the centre frequency in Hz of bin for a window of size
// samples at rate.
func BinFrequency(bin, size, rate int) float64 {
	if size <= 0 {
		return 0
	}

	return float64(bin) * float64(rate) / float64(size)
}

// PeakBin returns the index of the loudest bin, or -1 when every bin is
// -Inf or the frame is empty.
func PeakBin(frame []float32) int {
	best, idx := float32(math.Inf(-1)), -1
	for i, v := range frame {
		if v > best {
			best, idx = v, i
		}
	}

	return idx
}
