// SPDX-License-Identifier: EPL-2.0

// Package audiotest holds deterministic sample sources for tests.
//
// The sources satisfy audio.Source structurally; the package does not
// import audio so that audio's own tests can use it.
package audiotest

import (
	"io"
	"math"
)

// MockSource generates totalFrames frames of a waveform, bufSize samples
// per preferred read.
type MockSource struct {
	sampleRate  int
	channels    int
	totalFrames int
	generated   int
	bufSize     int
	reads       int
	closed      bool
	waveform    func(frame int, channel int) float32

	// Errors maps a ReadSamples call index (0-based) to an error returned
	// instead of data for that call. The call still counts.
	Errors map[int]error
}

// NewMockSource creates a source producing waveform(frame, channel).
func NewMockSource(sampleRate, channels, totalFrames int, waveform func(frame int, channel int) float32) *MockSource {
	return &MockSource{
		sampleRate:  sampleRate,
		channels:    channels,
		totalFrames: totalFrames,
		bufSize:     4096,
		waveform:    waveform,
	}
}

// NewSilentSource creates a source of zeros.
func NewSilentSource(sampleRate, channels, totalFrames int) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return 0
	})
}

// NewSineSource creates a full-scale sine at frequency Hz on every channel.
func NewSineSource(sampleRate, channels, totalFrames int, frequency float64) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(frame int, _ int) float32 {
		t := float64(frame) / float64(sampleRate)
		return float32(math.Sin(2 * math.Pi * frequency * t))
	})
}

// NewConstantSource creates a source holding value on every channel.
func NewConstantSource(sampleRate, channels, totalFrames int, value float32) *MockSource {
	return NewMockSource(sampleRate, channels, totalFrames, func(int, int) float32 {
		return value
	})
}

// NewChannelSource writes values[c] on channel c, which makes
// interleaving and channel selection easy to assert.
func NewChannelSource(sampleRate, totalFrames int, values ...float32) *MockSource {
	return NewMockSource(sampleRate, len(values), totalFrames, func(_ int, channel int) float32 {
		return values[channel]
	})
}

// WithBufSize sets the preferred read size in samples.
func (m *MockSource) WithBufSize(n int) *MockSource {
	m.bufSize = n
	return m
}

func (m *MockSource) SampleRate() int { return m.sampleRate }
func (m *MockSource) Channels() int   { return m.channels }
func (m *MockSource) BufSize() int    { return m.bufSize }

// Close marks the source closed; Closed reports it.
func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockSource) Closed() bool { return m.closed }

// Reset rewinds the generator.
func (m *MockSource) Reset() {
	m.generated = 0
	m.reads = 0
}

func (m *MockSource) ReadSamples(dst []float32) (int, error) {
	call := m.reads
	m.reads++
	if err, ok := m.Errors[call]; ok {
		return 0, err
	}

	if m.generated >= m.totalFrames {
		return 0, io.EOF
	}

	frames := min(len(dst)/m.channels, m.totalFrames-m.generated)
	for f := range frames {
		for ch := range m.channels {
			dst[f*m.channels+ch] = m.waveform(m.generated+f, ch)
		}
	}

	m.generated += frames
	n := frames * m.channels

	if m.generated >= m.totalFrames {
		return n, io.EOF
	}

	return n, nil
}
