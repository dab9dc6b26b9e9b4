// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/phonolyze/audio"
)

// oggReader is the part of oggvorbis.Reader the source uses.
type oggReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

type source struct {
	dec        oggReader
	sampleRate int
	channels   int
	pending    error // packet failure held back behind samples already read
}

// Per-packet failures oggvorbis reports once the headers are parsed. The
// reader has moved past the damaged packet or page by then.
var packetErrors = []string{
	"vorbis: decoding error",
	"ogg: wrong checksum",
}

func classify(err error) error {
	wrapped := fmt.Errorf("vorbis decode: %w", err)
	for _, msg := range packetErrors {
		if strings.Contains(err.Error(), msg) {
			return audio.Transient(wrapped)
		}
	}

	return wrapped
}

func (s *source) SampleRate() int { return s.sampleRate }
func (s *source) Channels() int   { return s.channels }
func (s *source) BufSize() int    { return 4096 / s.channels * s.channels }
func (s *source) Close() error    { return nil }

// ReadSamples decodes straight into dst. oggvorbis returns a count of
// values that is always a whole number of frames. A damaged packet is
// reported as audio.ErrTransient; samples decoded before it come first.
func (s *source) ReadSamples(dst []float32) (int, error) {
	if err := s.pending; err != nil {
		s.pending = nil
		return 0, err
	}

	whole := len(dst) / s.channels * s.channels
	if whole == 0 {
		return 0, nil
	}

	n, err := s.dec.Read(dst[:whole])
	switch {
	case err == nil:
		return n, nil
	case errors.Is(err, io.EOF):
		return n, io.EOF
	}

	err = classify(err)
	if n > 0 && audio.IsTransient(err) {
		s.pending = err
		return n, nil
	}

	return n, err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return newSource(dec)
}

func newSource(dec oggReader) (*source, error) {
	if dec.Channels() < 1 {
		return nil, ErrNoChannels
	}

	return &source{
		dec:        dec,
		sampleRate: dec.SampleRate(),
		channels:   dec.Channels(),
	}, nil
}
