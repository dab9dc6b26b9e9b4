// SPDX-License-Identifier: EPL-2.0

package spectrum

import (
	"errors"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/floats"
)

var (
	ErrInvalidWindow = errors.New("window size must be positive")
	ErrInvalidHop    = errors.New("hop size must be positive")
)

// Matrix holds one row of decibel magnitudes per analysis frame.
type Matrix [][]float32

// Bins is the number of non-redundant bins for a real frame of size n.
func Bins(n int) int { return n/2 + 1 }

// FrameCount is floor((signalLen-windowSize)/hopSize)+1, or zero when the
// signal is shorter than one window.
func FrameCount(signalLen, windowSize, hopSize int) int {
	if windowSize <= 0 || hopSize <= 0 || signalLen < windowSize {
		return 0
	}

	return (signalLen-windowSize)/hopSize + 1
}

// Analyzer holds an FFT plan and scratch buffers for one window size.
// It is not safe for concurrent use.
type Analyzer struct {
	size   int
	window []float64
	fft    *fourier.FFT

	frame   []float64
	rotated []float64
	coeffs  []complex128

	// Progress, when set, is called after every STFT frame.
	Progress func(done, total int)
}

// NewAnalyzer builds an analyzer with the Hamming window of size.
func NewAnalyzer(size int) (*Analyzer, error) {
	if size <= 0 {
		return nil, ErrInvalidWindow
	}

	return newAnalyzer(Window(size)), nil
}

func newAnalyzer(window []float32) *Analyzer {
	size := len(window)
	a := &Analyzer{
		size:    size,
		window:  make([]float64, size),
		fft:     fourier.NewFFT(size),
		frame:   make([]float64, size),
		rotated: make([]float64, size),
		coeffs:  make([]complex128, Bins(size)),
	}
	for i, v := range window {
		a.window[i] = float64(v)
	}

	return a
}

func (a *Analyzer) Size() int { return a.size }

// Frame analyzes one frame into dst, which is grown to Bins(size) when too
// short. frame samples past the window size are ignored; missing ones
// count as zero.
//
// The windowed frame is rotated so its centre lands on index 0 before the
// transform: the first ceil(n/2) slots take the frame's second half. Each
// bin becomes 20*log10(|X|*2/n); empty bins are -Inf.
func (a *Analyzer) Frame(frame []float32, dst []float32) []float32 {
	n := a.size

	for i := range a.frame {
		if i < len(frame) {
			a.frame[i] = float64(frame[i])
		} else {
			a.frame[i] = 0
		}
	}
	floats.Mul(a.frame, a.window)

	half := n / 2
	copy(a.rotated, a.frame[half:])
	copy(a.rotated[n-half:], a.frame[:half])

	a.coeffs = a.fft.Coefficients(a.coeffs, a.rotated)

	bins := Bins(n)
	if cap(dst) < bins {
		dst = make([]float32, bins)
	}
	dst = dst[:bins]

	scale := 2 / float64(n)
	for k, c := range a.coeffs[:bins] {
		dst[k] = float32(20 * math.Log10(cmplx.Abs(c)*scale))
	}

	return dst
}

// STFT slides the window over signal in steps of hop.
func (a *Analyzer) STFT(signal []float32, hop int) (Matrix, error) {
	if hop <= 0 {
		return nil, ErrInvalidHop
	}

	total := FrameCount(len(signal), a.size, hop)
	out := make(Matrix, total)

	for i := range out {
		start := i * hop
		out[i] = a.Frame(signal[start:start+a.size], nil)

		if a.Progress != nil {
			a.Progress(i+1, total)
		}
	}

	return out, nil
}

// STFT runs a one-off analysis with the Hamming window.
func STFT(signal []float32, windowSize, hopSize int) (Matrix, error) {
	a, err := NewAnalyzer(windowSize)
	if err != nil {
		return nil, err
	}

	return a.STFT(signal, hopSize)
}

// AnalyzeFrame windows, centres and transforms a single frame. The frame
// size is len(window).
func AnalyzeFrame(frame, window []float32) []float32 {
	if len(window) == 0 {
		return nil
	}

	return newAnalyzer(window).Frame(frame, nil)
}
