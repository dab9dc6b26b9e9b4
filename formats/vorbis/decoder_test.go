// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/ik5/phonolyze/audio"
)

type fakeOgg struct {
	rate, channels int
	data           []float32
	err            error
}

func (f *fakeOgg) SampleRate() int { return f.rate }
func (f *fakeOgg) Channels() int   { return f.channels }

func (f *fakeOgg) Read(p []float32) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	if len(f.data) == 0 {
		return 0, io.EOF
	}

	n := copy(p, f.data)
	f.data = f.data[n:]

	return n, nil
}

func TestDecoder_InvalidInput(t *testing.T) {
	t.Parallel()

	for _, data := range [][]byte{nil, []byte("OggS but not really")} {
		if _, err := (Decoder{}).Decode(bytes.NewReader(data)); err == nil {
			t.Errorf("Decode(%q) error = nil, want error", data)
		}
	}
}

func TestNewSource_NoChannels(t *testing.T) {
	t.Parallel()

	if _, err := newSource(&fakeOgg{rate: 44100}); !errors.Is(err, ErrNoChannels) {
		t.Errorf("error = %v, want %v", err, ErrNoChannels)
	}
}

func TestSource_ReadSamples(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		channels int
		dstLen   int
		data     []float32
		wantN    int
	}{
		{"mono", 1, 4, []float32{0.1, 0.2, 0.3}, 3},
		{"stereo trims odd dst", 2, 5, []float32{0.1, -0.1, 0.2, -0.2, 0.3, -0.3}, 4},
		{"5.1", 6, 12, make([]float32, 12), 12},
		{"dst smaller than a frame", 2, 1, []float32{1, 1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newSource(&fakeOgg{rate: 48000, channels: tt.channels, data: tt.data})
			if err != nil {
				t.Fatal(err)
			}

			dst := make([]float32, tt.dstLen)
			n, err := src.ReadSamples(dst)
			if err != nil {
				t.Fatalf("ReadSamples() error = %v", err)
			}
			if n != tt.wantN {
				t.Errorf("n = %d, want %d", n, tt.wantN)
			}
			for i := range n {
				if dst[i] != tt.data[i] {
					t.Errorf("dst[%d] = %v, want %v", i, dst[i], tt.data[i])
				}
			}
		})
	}
}

func TestSource_ReadSamples_EOFAndError(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&fakeOgg{rate: 8000, channels: 1})
	if _, err := src.ReadSamples(make([]float32, 2)); !errors.Is(err, io.EOF) {
		t.Errorf("error = %v, want EOF", err)
	}

	broken := errors.New("bad packet")
	src, _ = newSource(&fakeOgg{rate: 8000, channels: 1, err: broken})
	if _, err := src.ReadSamples(make([]float32, 2)); !errors.Is(err, broken) {
		t.Errorf("error = %v, want %v", err, broken)
	}
}

func TestSource_BufSize(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&fakeOgg{rate: 8000, channels: 6})
	if got := src.BufSize(); got%6 != 0 || got == 0 {
		t.Errorf("BufSize() = %d, want a positive multiple of 6", got)
	}
}

// step is one scripted Read result.
type step struct {
	data []float32
	err  error
}

type scriptedOgg struct {
	channels int
	steps    []step
}

func (f *scriptedOgg) SampleRate() int { return 44100 }
func (f *scriptedOgg) Channels() int   { return f.channels }

func (f *scriptedOgg) Read(p []float32) (int, error) {
	if len(f.steps) == 0 {
		return 0, io.EOF
	}

	s := f.steps[0]
	f.steps = f.steps[1:]

	return copy(p, s.data), s.err
}

func TestSource_DamagedPacketIsTransient(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{"bad packet", errors.New("vorbis: decoding error")},
		{"bad page checksum", errors.New("ogg: wrong checksum")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			src, err := newSource(&scriptedOgg{channels: 2, steps: []step{
				{err: tt.err},
				{data: []float32{0.5, -0.5}},
			}})
			if err != nil {
				t.Fatal(err)
			}

			dst := make([]float32, 4)
			if _, err := src.ReadSamples(dst); !audio.IsTransient(err) || !errors.Is(err, tt.err) {
				t.Fatalf("first read error = %v, want transient wrapping %v", err, tt.err)
			}

			n, err := src.ReadSamples(dst)
			if err != nil || n != 2 || dst[0] != 0.5 || dst[1] != -0.5 {
				t.Errorf("read after damage = (%d, %v) %v, want (2, nil) [0.5 -0.5]", n, err, dst[:n])
			}
		})
	}
}

func TestSource_TransientAfterSamples(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&scriptedOgg{channels: 1, steps: []step{
		{data: []float32{0.25}, err: errors.New("vorbis: decoding error")},
		{data: []float32{0.75}},
	}})

	dst := make([]float32, 4)
	if n, err := src.ReadSamples(dst); n != 1 || err != nil || dst[0] != 0.25 {
		t.Fatalf("first read = (%d, %v), want (1, nil) with 0.25", n, err)
	}
	if _, err := src.ReadSamples(dst); !audio.IsTransient(err) {
		t.Fatalf("second read error = %v, want transient", err)
	}
	if n, err := src.ReadSamples(dst); n != 1 || err != nil || dst[0] != 0.75 {
		t.Errorf("third read = (%d, %v) %v, want (1, nil) [0.75]", n, err, dst[:n])
	}
}

func TestSource_StructuralErrorIsFatal(t *testing.T) {
	t.Parallel()

	src, _ := newSource(&scriptedOgg{channels: 1, steps: []step{
		{err: errors.New("ogg: missing capture pattern")},
	}})

	if _, err := src.ReadSamples(make([]float32, 2)); err == nil || audio.IsTransient(err) {
		t.Errorf("error = %v, want a fatal error", err)
	}
}
