// SPDX-License-Identifier: EPL-2.0

package spectrum

import "math"

const hammingA0 = 0.54

// Window returns the periodic Hamming window of length size:
// w[i] = 0.54 - 0.46*cos(2*pi*i/size). It peaks at exactly 1 on i = size/2
// for even sizes and mirrors around that point.
func Window(size int) []float32 {
	if size <= 0 {
		return nil
	}

	w := make([]float32, size)
	for i := range w {
		w[i] = float32(hammingA0 - (1-hammingA0)*math.Cos(2*math.Pi*float64(i)/float64(size)))
	}

	return w
}
