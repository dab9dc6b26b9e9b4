// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"math"
	"testing"
)

func TestWindow(t *testing.T) {
	t.Parallel()

	for _, size := range []int{1, 2, 7, 64, 1000, 2048} {
		w := Window(size)
		if len(w) != size {
			t.Fatalf("len(Window(%d)) = %d", size, len(w))
		}

		for i := range w {
			j := (size - i) % size
			if math.Abs(float64(w[i]-w[j])) > 1e-6 {
				t.Fatalf("size %d: w[%d] = %v, w[%d] = %v, want equal", size, i, w[i], j, w[j])
			}
			if w[i] > 1+1e-6 || w[i] < 0.08-1e-6 {
				t.Fatalf("size %d: w[%d] = %v out of [0.08, 1]", size, i, w[i])
			}
		}

		if size%2 == 0 {
			if got := w[size/2]; math.Abs(float64(got-1)) > 1e-6 {
				t.Errorf("size %d: centre = %v, want 1", size, got)
			}
		}
	}
}

func TestWindow_Empty(t *testing.T) {
	t.Parallel()

	if w := Window(0); w != nil {
		t.Errorf("Window(0) = %v, want nil", w)
	}
}

func TestWindow_Endpoints(t *testing.T) {
	t.Parallel()

	w := Window(16)
	if math.Abs(float64(w[0])-0.08) > 1e-6 {
		t.Errorf("w[0] = %v, want 0.08", w[0])
	}
}
