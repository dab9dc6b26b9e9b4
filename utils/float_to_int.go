// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

func clampUnit(x float32) float32 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}

	return x
}

// Float32ToInt16 scales a sample in [-1,1] by math.MaxInt16.
// Values outside the range are clamped first.
func Float32ToInt16(x float32) int16 {
	return int16(clampUnit(x) * math.MaxInt16)
}

// Float32ToInt8 scales a sample in [-1,1] by math.MaxInt8.
func Float32ToInt8(x float32) int8 {
	return int8(clampUnit(x) * math.MaxInt8)
}

// Int8ToUint8 shifts a signed 8-bit sample into the unsigned
// offset-binary form 8-bit PCM devices expect (0 maps to 128).
func Int8ToUint8(s int8) uint8 {
	return uint8(int16(s) + 128)
}
