// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/ik5/phonolyze/audio"
	"github.com/ik5/phonolyze/internal/logging"
	"github.com/ik5/phonolyze/metrics"
)

// The built-in containers carry a single audio track.
const defaultTrack = 0

// Options tune Open. The zero value decodes local files with the built-in
// formats at their native rate.
type Options struct {
	Registry *audio.Registry // nil selects DefaultRegistry
	BaseURL  string          // relative paths are fetched from here when set
	Client   *http.Client    // nil selects http.DefaultClient

	// TargetRate resamples the track when it differs from the native
	// rate. Zero keeps the native rate.
	TargetRate int

	Logger *zap.Logger
}

// Frame is one decoded packet. Samples hold Frames()*Channels values in
// the requested layout.
type Frame struct {
	Samples    []float32
	Channels   int
	SampleRate int
	Layout     audio.Layout
}

func (f *Frame) Frames() int { return len(f.Samples) / f.Channels }

// Plane returns channel c of a planar frame, nil for interleaved frames.
func (f *Frame) Plane(c int) []float32 {
	if f.Layout != audio.Planar || c < 0 || c >= f.Channels {
		return nil
	}
	n := f.Frames()

	return f.Samples[c*n : (c+1)*n]
}

type packetReader interface {
	ReadPacket(dst []float32) (track, n int, err error)
}

type singleTrack struct {
	src audio.Source
}

func (s singleTrack) ReadPacket(dst []float32) (int, int, error) {
	n, err := s.src.ReadSamples(dst)
	return defaultTrack, n, err
}

// Source is an open decode session bound to the default track.
//
// Source also satisfies audio.Source, so it can feed a MonoMixer or a
// Resampler. ReadSamples and NextFrame share the packet stream and should
// not be mixed on one Source.
type Source struct {
	path     string
	format   string
	track    int
	rate     int
	channels int

	packets packetReader
	codec   io.Closer
	stream  io.Closer
	log     *zap.Logger

	buf     []float32
	planar  []float32
	frame   Frame
	pending []float32
	done    bool
}

// Open opens path, probes the container and binds a decoder for its
// default track. http(s) paths, and relative paths when opts.BaseURL is
// set, are fetched over HTTP; anything else is a local file with ~
// expanded.
func Open(ctx context.Context, path string, opts Options) (*Source, error) {
	log := logging.OrNop(opts.Logger)
	reg := opts.Registry
	if reg == nil {
		reg = DefaultRegistry()
	}
	client := opts.Client
	if client == nil {
		client = http.DefaultClient
	}

	remote, err := resolve(path, opts.BaseURL)
	if err != nil {
		return nil, err
	}

	var stream io.ReadSeekCloser
	if remote != "" {
		stream, err = fetch(ctx, client, remote)
	} else {
		stream, err = openLocal(path)
	}
	if err != nil {
		return nil, err
	}

	codec, format, err := bind(reg, stream, path)
	if err != nil {
		stream.Close()
		return nil, err
	}

	var src audio.Source = codec
	if opts.TargetRate > 0 && opts.TargetRate != codec.SampleRate() {
		src = audio.NewResampler(codec, opts.TargetRate)
	}

	s := newSource(path, format, singleTrack{src}, src, stream, log)

	log.Info("audio source opened",
		zap.String("path", path),
		zap.String("format", format),
		zap.Int("sample_rate", s.rate),
		zap.Int("native_rate", codec.SampleRate()),
		zap.Int("channels", s.channels),
	)

	return s, nil
}

func bind(reg *audio.Registry, stream io.ReadSeeker, path string) (audio.Source, string, error) {
	head := make([]byte, probeHeadLen)
	n, err := io.ReadFull(stream, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, "", fmt.Errorf("%w: %w", ErrOpen, err)
	}
	if _, err := stream.Seek(0, io.SeekStart); err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrOpen, err)
	}

	format, ok := probe(head[:n], path)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s: unrecognised container", ErrOpen, path)
	}

	dec, ok := reg.Get(format)
	if !ok {
		return nil, format, fmt.Errorf("%w: %s (have %s)", ErrUnsupportedCodec, format, strings.Join(reg.Formats(), ", "))
	}

	codec, err := dec.Decode(stream)
	if err != nil {
		return nil, format, fmt.Errorf("%w: %s: %w", ErrOpen, format, err)
	}

	if codec.Channels() < 1 || codec.SampleRate() < 1 {
		codec.Close()
		return nil, format, fmt.Errorf("%w: %s", ErrNoDefaultTrack, path)
	}

	return codec, format, nil
}

func newSource(path, format string, packets packetReader, codec audio.Source, stream io.Closer, log *zap.Logger) *Source {
	channels := codec.Channels()
	size := max(codec.BufSize(), channels) / channels * channels

	return &Source{
		path:     path,
		format:   format,
		track:    defaultTrack,
		rate:     codec.SampleRate(),
		channels: channels,
		packets:  packets,
		codec:    codec,
		stream:   stream,
		log:      log,
		buf:      make([]float32, size),
		planar:   make([]float32, size),
	}
}

func (s *Source) SampleRate() int { return s.rate }
func (s *Source) Channels() int   { return s.channels }
func (s *Source) BufSize() int    { return len(s.buf) }
func (s *Source) Format() string  { return s.format }

// NextFrame decodes the next packet. It returns nil, nil for packets that
// belong to another track and for packets skipped after a transient codec
// error; the caller keeps pulling. End of stream is nil, io.EOF. Any
// other failure is a *DecodeError.
//
// The returned Frame is reused by the next call.
func (s *Source) NextFrame(layout audio.Layout) (*Frame, error) {
	if s.done {
		return nil, io.EOF
	}

	track, n, err := s.packets.ReadPacket(s.buf)
	n -= n % s.channels

	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		s.done = true
		if n == 0 {
			return nil, io.EOF
		}
	case audio.IsTransient(err):
		metrics.TransientDecodeErrors.Inc()
		s.log.Debug("skipping damaged packet", zap.String("path", s.path), zap.Error(err))
		return nil, nil
	default:
		s.done = true
		return nil, &DecodeError{Path: s.path, Err: err}
	}

	if track != s.track || n == 0 {
		return nil, nil
	}

	samples := s.buf[:n]
	if layout == audio.Planar && s.channels > 1 {
		audio.Deinterleave(s.planar[:n], samples, s.channels)
		samples = s.planar[:n]
	}

	s.frame = Frame{
		Samples:    samples,
		Channels:   s.channels,
		SampleRate: s.rate,
		Layout:     layout,
	}

	return &s.frame, nil
}

// ReadSamples fills dst with interleaved samples, pulling packets as
// needed.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	written := 0
	for written < len(dst) {
		if len(s.pending) == 0 {
			f, err := s.NextFrame(audio.Interleaved)
			if err != nil {
				return written, err
			}
			if f == nil {
				continue
			}
			s.pending = f.Samples
		}

		c := copy(dst[written:], s.pending)
		s.pending = s.pending[c:]
		written += c
	}

	return written, nil
}

// sampleLimit is the mono sample count for maxSeconds, or -1 when there
// is no limit.
func (s *Source) sampleLimit(maxSeconds *float32) int {
	if maxSeconds == nil {
		return -1
	}

	return max(0, int(math.Round(float64(*maxSeconds)*float64(s.rate))))
}

// DumpMono decodes the rest of the stream and returns its first channel.
// With maxSeconds set, the result is cut to round(maxSeconds*rate)
// samples. Samples decoded before a fatal error are returned with it.
func (s *Source) DumpMono(maxSeconds *float32) ([]float32, error) {
	limit := s.sampleLimit(maxSeconds)

	var out []float32
	for limit < 0 || len(out) < limit {
		f, err := s.NextFrame(audio.Planar)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
		if f == nil {
			continue
		}

		out = append(out, f.Plane(0)...)
	}

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// DumpMonoMix is DumpMono with every channel averaged in instead of
// keeping the left one.
func (s *Source) DumpMonoMix(maxSeconds *float32) ([]float32, error) {
	limit := s.sampleLimit(maxSeconds)
	mix := audio.NewMonoMixer(s)
	buf := make([]float32, mix.BufSize())

	var out []float32
	for limit < 0 || len(out) < limit {
		n, err := mix.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return out, err
		}
	}

	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}

// Info describes the session for logs and the UI.
func (s *Source) Info() map[string]string {
	return map[string]string{
		"path":        s.path,
		"format":      s.format,
		"sample_rate": strconv.Itoa(s.rate),
		"channels":    strconv.Itoa(s.channels),
		"track":       strconv.Itoa(s.track),
	}
}

// Close releases the codec and the byte stream.
func (s *Source) Close() error {
	var errs []error
	if s.codec != nil {
		errs = append(errs, s.codec.Close())
	}
	if s.stream != nil {
		errs = append(errs, s.stream.Close())
	}

	return errors.Join(errs...)
}
