// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"slices"
	"testing"
)

func TestDeinterleave(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		src      []float32
		channels int
		want     []float32
	}{
		{
			name:     "mono copy",
			src:      []float32{1, 2, 3},
			channels: 1,
			want:     []float32{1, 2, 3},
		},
		{
			name:     "stereo",
			src:      []float32{1, -1, 2, -2, 3, -3},
			channels: 2,
			want:     []float32{1, 2, 3, -1, -2, -3},
		},
		{
			name:     "partial frame dropped",
			src:      []float32{1, -1, 2},
			channels: 2,
			want:     []float32{1, -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dst := make([]float32, len(tt.src))
			n := Deinterleave(dst, tt.src, tt.channels)
			if got := dst[:n]; !slices.Equal(got, tt.want) {
				t.Errorf("Deinterleave() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLayout_String(t *testing.T) {
	t.Parallel()

	if Interleaved.String() != "interleaved" || Planar.String() != "planar" {
		t.Errorf("Layout.String() = %q/%q", Interleaved, Planar)
	}
}
