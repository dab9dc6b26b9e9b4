// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/phonolyze/audio"
)

const wavFormatPCM = 1

// pcmReader is the part of the go-audio decoder the source needs,
// split out so tests can feed synthetic PCM.
type pcmReader interface {
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

type wavSource struct {
	dec        pcmReader
	sampleRate int
	channels   int
	scale      float32 // 1 / full-scale integer value
	offset     int     // subtracted before scaling (8-bit WAV is unsigned)
	intBuf     *goaudio.IntBuffer
	bufSize    int
	eof        bool
}

func (s *wavSource) SampleRate() int { return s.sampleRate }
func (s *wavSource) Channels() int   { return s.channels }
func (s *wavSource) BufSize() int    { return s.bufSize }
func (s *wavSource) Close() error    { return nil }

func (s *wavSource) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}
	if s.eof {
		return 0, io.EOF
	}

	if cap(s.intBuf.Data) < len(dst) {
		s.intBuf.Data = make([]int, len(dst))
	}
	s.intBuf.Data = s.intBuf.Data[:len(dst)]

	n, err := s.dec.PCMBuffer(s.intBuf)
	switch {
	case errors.Is(err, io.EOF):
		s.eof = true
	case err != nil:
		return 0, fmt.Errorf("wav pcm: %w", err)
	case n == 0:
		s.eof = true
	}

	n = min(n, len(dst))
	for i, v := range s.intBuf.Data[:n] {
		dst[i] = float32(v-s.offset) * s.scale
	}

	if s.eof {
		return n, io.EOF
	}

	return n, nil
}

type Decoder struct{}

// Decode reads the RIFF header with go-audio/wav and returns a source
// positioned at the first PCM sample. Non-seekable readers are buffered
// in memory first.
func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	rs, ok := r.(io.ReadSeeker)
	if !ok {
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("reading wav data: %w", err)
		}
		rs = bytes.NewReader(data)
	}

	dec := gowav.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotWavFile
	}
	if dec.WavAudioFormat == wavFormatExtensible {
		code, err := extensibleSubFormat(rs)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
		}
		if code != wavFormatPCM {
			return nil, fmt.Errorf("%w: extensible sub-format %#x", ErrOnlyPCMSupported, code)
		}

		// The first decoder already consumed the headers.
		dec = gowav.NewDecoder(rs)
		if !dec.IsValidFile() {
			return nil, ErrNotWavFile
		}
	} else if dec.WavAudioFormat != wavFormatPCM {
		return nil, ErrOnlyPCMSupported
	}
	if err := dec.FwdToPCM(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnsupportedWavLayout, err)
	}

	format := dec.Format()
	if format == nil {
		return nil, ErrUnsupportedWavLayout
	}

	return newSource(dec, format, int(dec.SampleBitDepth()))
}

func newSource(dec pcmReader, format *goaudio.Format, bitDepth int) (*wavSource, error) {
	src := &wavSource{
		dec:        dec,
		sampleRate: format.SampleRate,
		channels:   format.NumChannels,
		intBuf:     &goaudio.IntBuffer{Format: format, SourceBitDepth: bitDepth},
	}

	switch bitDepth {
	case 8:
		src.scale, src.offset = 1.0/128, 128
	case 16:
		src.scale = 1.0 / 32768
	case 24:
		src.scale = 1.0 / 8388608
	case 32:
		src.scale = 1.0 / 2147483648
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}

	if src.channels > 0 {
		src.bufSize = 4096 / src.channels * src.channels
	}

	return src, nil
}
