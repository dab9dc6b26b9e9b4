// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/phonolyze/audio"
)

// go-mp3 always emits interleaved stereo 16-bit little endian.
const (
	outputChannels = 2
	bytesPerSample = 2
	defaultBufSize = 4608 // two MPEG-1 Layer III frames of stereo samples
)

// mp3Reader is the part of gomp3.Decoder the source uses.
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec        mp3Reader
	sampleRate int
	buf        []byte

	// go-mp3 may split a sample across reads; the odd byte waits here.
	carry    byte
	hasCarry bool
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return outputChannels }
func (s *source) BufSize() int    { return defaultBufSize }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * bytesPerSample
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	off := 0
	if s.hasCarry {
		s.buf[0] = s.carry
		off, s.hasCarry = 1, false
	}

	n, err := s.dec.Read(s.buf[off:])
	n += off

	if n%bytesPerSample == 1 {
		n--
		s.carry, s.hasCarry = s.buf[n], true
	}

	samples := n / bytesPerSample
	for i := range samples {
		v := int16(binary.LittleEndian.Uint16(s.buf[i*bytesPerSample:]))
		dst[i] = float32(v) / 32768
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF):
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("mp3 decode: %w", err)
	}
}

type Decoder struct{}

// Decode parses the first MPEG frame header. Mono streams are upmixed to
// stereo by go-mp3 itself, so Channels is always 2.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec), nil
}

func newSource(dec mp3Reader) *source {
	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		buf:        make([]byte, defaultBufSize*bytesPerSample),
	}
}
