// SPDX-License-Identifier: EPL-2.0

package phonolyze

import (
	"context"
	"errors"
	"fmt"

	"github.com/ik5/phonolyze/decoder"
	"github.com/ik5/phonolyze/spectrum"
)

// Defaults used when Options leaves a size at zero.
const (
	DefaultWindowSize = 2048
	DefaultHopSize    = 2048
)

// Options tune Analyze.
type Options struct {
	Decoder decoder.Options

	WindowSize int
	HopSize    int

	// MaxSeconds cuts the analysed signal; nil analyses everything.
	MaxSeconds *float32

	// Mix averages all channels instead of analysing the first one.
	Mix bool

	// Progress is called after each STFT frame.
	Progress func(done, total int)
}

// Analysis is a decoded mono signal and its spectrum.
type Analysis struct {
	Path       string
	Format     string
	SampleRate int
	Channels   int // of the file, before folding to mono

	Signal     []float32
	Matrix     spectrum.Matrix
	WindowSize int
	HopSize    int
}

// Duration of Signal in seconds.
func (a *Analysis) Duration() float64 {
	if a.SampleRate <= 0 {
		return 0
	}

	return float64(len(a.Signal)) / float64(a.SampleRate)
}

// Analyze opens path, folds it to mono and computes its STFT.
func Analyze(ctx context.Context, path string, opts Options) (_ *Analysis, err error) {
	if opts.WindowSize == 0 {
		opts.WindowSize = DefaultWindowSize
	}
	if opts.HopSize == 0 {
		opts.HopSize = DefaultHopSize
	}

	an, err := spectrum.NewAnalyzer(opts.WindowSize)
	if err != nil {
		return nil, err
	}
	an.Progress = opts.Progress

	src, err := decoder.Open(ctx, path, opts.Decoder)
	if err != nil {
		return nil, err
	}
	defer func() {
		err = errors.Join(err, src.Close())
	}()

	a := &Analysis{
		Path:       path,
		Format:     src.Format(),
		SampleRate: src.SampleRate(),
		Channels:   src.Channels(),
		WindowSize: opts.WindowSize,
		HopSize:    opts.HopSize,
	}

	if opts.Mix {
		a.Signal, err = src.DumpMonoMix(opts.MaxSeconds)
	} else {
		a.Signal, err = src.DumpMono(opts.MaxSeconds)
	}
	if err != nil {
		return nil, err
	}

	if a.Matrix, err = an.STFT(a.Signal, opts.HopSize); err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}

	return a, nil
}
