// SPDX-License-Identifier: EPL-2.0

package output

import (
	"time"

	"github.com/ik5/phonolyze/stream"
)

// Filler produces interleaved samples for a buffer that will be heard at
// playbackAt. *stream.Consumer implements it.
type Filler[S stream.Sample] interface {
	Fill(dst []S, playbackAt time.Time) bool
}

// Reader turns a Filler into the io.Reader an oto player pulls from. Its
// Read runs on the device's real-time goroutine: it never blocks and
// only allocates when the device asks for a larger buffer than before.
type Reader[S stream.Sample] struct {
	fill       Filler[S]
	encode     encoder[S]
	sampleSize int
	frameSize  int
	delay      time.Duration
	now        func() time.Time

	samples []S
	frame   []byte // one rendered frame for reads shorter than a frame
	pending []byte // unread tail of frame
}

// NewReader renders channels-wide frames from fill. delay is the device
// buffer length, the time between a Read and the first sample playing.
func NewReader[S stream.Sample](fill Filler[S], channels int, delay time.Duration) (*Reader[S], error) {
	if fill == nil || channels <= 0 {
		return nil, ErrInvalidChannels
	}

	enc, size := encoderFor[S]()

	return &Reader[S]{
		fill:       fill,
		encode:     enc,
		sampleSize: size,
		frameSize:  size * channels,
		delay:      delay,
		now:        time.Now,
		samples:    make([]S, 0, 4096),
		frame:      make([]byte, size*channels),
	}, nil
}

func (r *Reader[S]) Read(p []byte) (int, error) {
	written := copy(p, r.pending)
	r.pending = r.pending[written:]
	if len(r.pending) > 0 {
		return written, nil
	}

	rest := p[written:]
	if whole := len(rest) / r.frameSize * r.frameSize; whole > 0 {
		r.render(rest[:whole])
		written += whole
		rest = rest[whole:]
	}

	if len(rest) > 0 {
		r.render(r.frame)
		c := copy(rest, r.frame)
		r.pending = r.frame[c:]
		written += c
	}

	return written, nil
}

func (r *Reader[S]) render(dst []byte) {
	n := len(dst) / r.sampleSize
	if cap(r.samples) < n {
		r.samples = make([]S, n)
	}
	samples := r.samples[:n]

	r.fill.Fill(samples, r.now().Add(r.delay))
	r.encode(dst, samples)
}
