// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/phonolyze/utils"
)

// Resampler streams from src to a target sample rate using cubic
// interpolation. Works on interleaved samples and preserves the channel
// count. A one-pole low-pass smooths the input when downsampling.
//
// Transient source errors are skipped. Other errors are reported after
// the samples produced before them, so a caller never loses output that
// was already interpolated.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// hist[1] is the frame at the integer part of the read position,
	// hist[2] the one after it; hist[0] and hist[3] are the outer
	// Catmull-Rom support points. real marks frames that came from src
	// rather than edge duplication.
	hist    [4][]float32
	real    [4]bool
	frac    float64
	started bool
	done    bool

	block    []float32 // buffered source samples
	blockPos int
	blockLen int
	srcEOF   bool
	pending  error

	smooth  bool
	seeded  bool
	alpha   float32
	lowpass []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	channels := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     step,
		channels: channels,
		block:    make([]float32, max(src.BufSize(), channels)/channels*channels),
		smooth:   step > 1.0,
		alpha:    0.5,
		lowpass:  make([]float32, channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}

// pull copies the next source frame into dst. It reports false once the
// source is drained or failed; the failure is kept in r.pending.
func (r *Resampler) pull(dst []float32) bool {
	for r.blockPos+r.channels > r.blockLen {
		if r.srcEOF || r.pending != nil {
			return false
		}

		n, err := r.src.ReadSamples(r.block)
		r.blockPos, r.blockLen = 0, n-n%r.channels
		switch {
		case err == io.EOF:
			r.srcEOF = true
		case IsTransient(err):
			// The lost packet is skipped; interpolation bridges the gap.
		case err != nil:
			r.pending = err
		}
	}

	copy(dst, r.block[r.blockPos:r.blockPos+r.channels])
	r.blockPos += r.channels

	if r.smooth && !r.seeded {
		// The first frame passes unchanged and seeds the filter.
		copy(r.lowpass, dst)
		r.seeded = true
	} else if r.smooth {
		for c := range dst {
			dst[c] = r.alpha*dst[c] + (1-r.alpha)*r.lowpass[c]
			r.lowpass[c] = dst[c]
		}
	}

	return true
}

// prime loads the first frames: hist = [f0, f0, f1, f2].
func (r *Resampler) prime() bool {
	if !r.pull(r.hist[1]) {
		return false
	}
	copy(r.hist[0], r.hist[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		r.real[i] = r.pull(r.hist[i])
		if !r.real[i] {
			copy(r.hist[i], r.hist[i-1])
		}
	}
	r.started = true

	return true
}

// shift advances the window by one source frame.
func (r *Resampler) shift() bool {
	if !r.real[2] {
		return false
	}

	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	r.real[3] = r.pull(r.hist[3])
	if !r.real[3] {
		copy(r.hist[3], r.hist[2])
	}

	return true
}

// ReadSamples produces samples at the target rate.
// dst length should be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}

	if !r.started && !r.done && !r.prime() {
		r.done = true
	}

	want := len(dst) / r.channels
	written := 0

	for !r.done && written < want {
		// A fractional position needs the frame after hist[1].
		if r.frac > 0 && !r.real[2] {
			r.done = true
			break
		}

		t := float32(r.frac)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], t)
		}
		written++

		r.frac += r.step
		for r.frac >= 1.0 {
			r.frac -= 1.0
			if !r.shift() {
				r.done = true
				break
			}
		}
	}

	n := written * r.channels
	switch {
	case !r.done:
		return n, nil
	case r.pending == nil:
		return n, io.EOF
	case written > 0:
		// Hand out what was produced; the failure follows on the next call.
		return n, nil
	default:
		return 0, fmt.Errorf("%w", r.pending)
	}
}
