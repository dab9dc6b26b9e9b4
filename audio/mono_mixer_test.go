// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"
	"math"
	"testing"

	"github.com/ik5/phonolyze/internal/audiotest"
)

func TestMonoMixer_MonoPassthrough(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewConstantSource(8000, 1, 100, 0.5))
	if mixer.Channels() != 1 {
		t.Errorf("MonoMixer.Channels() = %d, want 1", mixer.Channels())
	}

	buf := make([]float32, 10)
	n, err := mixer.ReadSamples(buf)
	if err != nil {
		t.Fatalf("ReadSamples() error = %v", err)
	}
	for i := range n {
		if buf[i] != 0.5 {
			t.Errorf("buf[%d] = %v, want 0.5", i, buf[i])
		}
	}
}

func TestMonoMixer_Averages(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values []float32
		want   float32
	}{
		{name: "stereo", values: []float32{0.4, 0.6}, want: 0.5},
		{name: "three channels", values: []float32{0.3, 0.6, 0.9}, want: 0.6},
		{name: "opposite phase", values: []float32{1, -1}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mixer := NewMonoMixer(audiotest.NewChannelSource(8000, 50, tt.values...))
			buf := make([]float32, 20)

			n, err := mixer.ReadSamples(buf)
			if err != nil && err != io.EOF {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != 20 {
				t.Fatalf("ReadSamples() n = %d, want 20", n)
			}
			for i := range n {
				if math.Abs(float64(buf[i]-tt.want)) > 1e-6 {
					t.Fatalf("buf[%d] = %v, want %v", i, buf[i], tt.want)
				}
			}
		})
	}
}

func TestMonoMixer_EOF(t *testing.T) {
	t.Parallel()

	mixer := NewMonoMixer(audiotest.NewSilentSource(8000, 2, 5))
	buf := make([]float32, 10)

	n, err := mixer.ReadSamples(buf)
	if n != 5 || err != io.EOF {
		t.Errorf("ReadSamples() = (%d, %v), want (5, EOF)", n, err)
	}
}

func TestMonoMixer_BufSize(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 2, 5).WithBufSize(1024)
	if got := NewMonoMixer(src).BufSize(); got != 512 {
		t.Errorf("BufSize() = %d, want 512", got)
	}
}
