// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/ik5/phonolyze/stream"
)

// rampFiller writes 1, 2, 3, ... across calls and records the instants.
type rampFiller[S stream.Sample] struct {
	next  int
	calls []time.Time
}

func (f *rampFiller[S]) Fill(dst []S, at time.Time) bool {
	for i := range dst {
		f.next++
		dst[i] = S(f.next)
	}
	f.calls = append(f.calls, at)
	return false
}

func newReader[S stream.Sample](t *testing.T, fill Filler[S], channels int, delay time.Duration) *Reader[S] {
	t.Helper()

	r, err := NewReader(fill, channels, delay)
	if err != nil {
		t.Fatalf("NewReader() error = %v", err)
	}
	return r
}

func TestNewReader_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fill     Filler[float32]
		channels int
	}{
		{"zero channels", &rampFiller[float32]{}, 0},
		{"negative channels", &rampFiller[float32]{}, -1},
		{"no filler", nil, 2},
	}

	for _, tt := range tests {
		if _, err := NewReader(tt.fill, tt.channels, 0); !errors.Is(err, ErrInvalidChannels) {
			t.Errorf("%s: NewReader() error = %v, want %v", tt.name, err, ErrInvalidChannels)
		}
	}
}

func TestReader_Float32Bytes(t *testing.T) {
	t.Parallel()

	fill := &rampFiller[float32]{}
	r := newReader[float32](t, fill, 2, 0)

	p := make([]byte, 16)
	n, err := r.Read(p)
	if n != 16 || err != nil {
		t.Fatalf("Read() = (%d, %v), want (16, nil)", n, err)
	}

	for i := range 4 {
		got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:]))
		if got != float32(i+1) {
			t.Errorf("sample %d = %v, want %v", i, got, i+1)
		}
	}
}

func TestReader_Int8AsUnsigned(t *testing.T) {
	t.Parallel()

	r := newReader[int8](t, &rampFiller[int8]{}, 1, 0)

	p := make([]byte, 3)
	if _, err := r.Read(p); err != nil {
		t.Fatal(err)
	}
	if p[0] != 129 || p[1] != 130 || p[2] != 131 {
		t.Errorf("Read() = %v, want [129 130 131]", p)
	}
}

func TestReader_PartialFrames(t *testing.T) {
	t.Parallel()

	fill := &rampFiller[float32]{}
	r := newReader[float32](t, fill, 2, 0)

	// 3 reads of 5 bytes cut through the 8-byte frames; the byte stream
	// must still decode as 1, 2, 3, 4 in order.
	var got []byte
	for range 4 {
		p := make([]byte, 5)
		n, err := r.Read(p)
		if err != nil {
			t.Fatal(err)
		}
		got = append(got, p[:n]...)
	}

	if len(got) != 20 {
		t.Fatalf("read %d bytes, want 20", len(got))
	}
	for i := range 4 {
		v := math.Float32frombits(binary.LittleEndian.Uint32(got[4*i:]))
		if v != float32(i+1) {
			t.Errorf("sample %d = %v, want %v", i, v, i+1)
		}
	}
}

func TestReader_PlaybackInstant(t *testing.T) {
	t.Parallel()

	fill := &rampFiller[float32]{}
	r := newReader[float32](t, fill, 1, 80*time.Millisecond)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	r.now = func() time.Time { return base }

	r.Read(make([]byte, 64))

	if len(fill.calls) != 1 || !fill.calls[0].Equal(base.Add(80*time.Millisecond)) {
		t.Errorf("Fill instants = %v, want [%v]", fill.calls, base.Add(80*time.Millisecond))
	}
}

func TestReader_GrowsScratch(t *testing.T) {
	t.Parallel()

	r := newReader[float32](t, &rampFiller[float32]{}, 2, 0)
	p := make([]byte, 4*2*10000)
	if n, _ := r.Read(p); n != len(p) {
		t.Errorf("Read() = %d, want %d", n, len(p))
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    string
		wantErr error
	}{
		{"", FormatF32, nil},
		{"auto", FormatF32, nil},
		{"F32", FormatF32, nil},
		{"s8", FormatS8, nil},
		{"s16", "", ErrUnsupportedFormat},
		{"u8", "", ErrUnsupportedFormat},
	}

	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		if got != tt.want || !errors.Is(err, tt.wantErr) {
			t.Errorf("ParseFormat(%q) = (%q, %v), want (%q, %v)", tt.in, got, err, tt.want, tt.wantErr)
		}
	}
}

func TestOpen_RejectsFormatBeforeTouchingDevice(t *testing.T) {
	t.Parallel()

	s, err := Open(Config{SampleRate: 44100, Channels: 2, Format: "s24"}, stream.Options{})
	if !errors.Is(err, ErrUnsupportedFormat) || s != nil {
		t.Errorf("Open() = (%v, %v), want (nil, %v)", s, err, ErrUnsupportedFormat)
	}
}

func TestReader_WithConsumer(t *testing.T) {
	t.Parallel()

	q := stream.NewQueue[float32](8)
	q.Push(stream.ChannelCountItem[float32](1))
	q.Push(stream.SignalItem[float32](0.5))

	c, err := stream.NewConsumer(q, 2, 48000, nil)
	if err != nil {
		t.Fatal(err)
	}
	r := newReader[float32](t, c, 2, 0)
	p := make([]byte, 16)
	r.Read(p)

	want := []float32{0.5, 0.5, 0, 0}
	for i, w := range want {
		if got := math.Float32frombits(binary.LittleEndian.Uint32(p[4*i:])); got != w {
			t.Errorf("sample %d = %v, want %v", i, got, w)
		}
	}
}
