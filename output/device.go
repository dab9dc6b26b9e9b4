// SPDX-License-Identifier: EPL-2.0

package output

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hajimehoshi/oto/v2"
	"go.uber.org/zap"

	"github.com/ik5/phonolyze/internal/logging"
	"github.com/ik5/phonolyze/position"
	"github.com/ik5/phonolyze/stream"
)

var (
	ErrNoDevice          = errors.New("no audio output device")
	ErrUnsupportedFormat = errors.New("unsupported output sample format")
	ErrInvalidChannels   = errors.New("output needs a filler and at least one channel")
)

// Sample formats accepted by Open.
const (
	FormatAuto = "auto"
	FormatF32  = "f32"
	FormatS8   = "s8"
)

const (
	defaultBuffer = 50 * time.Millisecond
	readyTimeout  = 5 * time.Second
)

// Config describes the output stream.
type Config struct {
	SampleRate int
	Channels   int
	Format     string // FormatAuto, FormatF32 or FormatS8
	LatencyMS  int    // queue priming, see stream.New

	// Buffer is the device-side buffer. Zero means 50ms.
	Buffer time.Duration
}

// Session is a player wired to the default output device.
type Session interface {
	Play(ctx context.Context, path string) error
	State() stream.State
	Tracker() *position.Tracker
	Format() string
	Close() error
}

// ParseFormat normalises a format name. FormatAuto resolves to float,
// which every oto backend takes natively.
func ParseFormat(name string) (string, error) {
	switch strings.ToLower(name) {
	case "", FormatAuto, FormatF32:
		return FormatF32, nil
	case FormatS8:
		return FormatS8, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Open negotiates the sample format once and builds a player of the
// matching sample type behind it.
func Open(cfg Config, opts stream.Options) (Session, error) {
	format, err := ParseFormat(cfg.Format)
	if err != nil {
		return nil, err
	}
	if cfg.Buffer <= 0 {
		cfg.Buffer = defaultBuffer
	}

	var sess Session
	switch format {
	case FormatS8:
		sess, err = asSession(open[int8](cfg, format, oto.FormatUnsignedInt8, opts))
	default:
		sess, err = asSession(open[float32](cfg, format, oto.FormatFloat32LE, opts))
	}

	return sess, err
}

// asSession keeps a failed open from becoming a non-nil interface.
func asSession[S stream.Sample](s *session[S], err error) (Session, error) {
	if err != nil {
		return nil, err
	}

	return s, nil
}

type bufferSizer interface {
	SetBufferSize(bytes int)
}

type session[S stream.Sample] struct {
	*stream.Player[S]
	ctx    *oto.Context
	out    oto.Player
	format string
	log    *zap.Logger
}

func open[S stream.Sample](cfg Config, format string, otoFormat int, opts stream.Options) (*session[S], error) {
	log := logging.OrNop(opts.Logger)

	ctx, ready, err := oto.NewContext(cfg.SampleRate, cfg.Channels, otoFormat)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}

	select {
	case <-ready:
	case <-time.After(readyTimeout):
		return nil, fmt.Errorf("%w: device not ready after %v", ErrNoDevice, readyTimeout)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}

	player, err := stream.New[S](cfg.SampleRate, cfg.Channels, cfg.LatencyMS, opts)
	if err != nil {
		return nil, err
	}

	reader, err := NewReader[S](player.Consumer(), cfg.Channels, cfg.Buffer)
	if err != nil {
		player.Close()
		return nil, err
	}
	out := ctx.NewPlayer(reader)
	if bs, ok := out.(bufferSizer); ok {
		_, size := encoderFor[S]()
		frames := int(cfg.Buffer.Seconds() * float64(cfg.SampleRate))
		bs.SetBufferSize(frames * cfg.Channels * size)
	}
	out.Play()

	log.Info("output open",
		zap.String("format", format),
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("channels", cfg.Channels),
		zap.Duration("buffer", cfg.Buffer),
	)

	return &session[S]{Player: player, ctx: ctx, out: out, format: format, log: log}, nil
}

func (s *session[S]) Format() string { return s.format }

// Close stops the device first so the callback stops reading, then the
// loader.
func (s *session[S]) Close() error {
	err := s.out.Close()
	if serr := s.ctx.Suspend(); serr != nil {
		s.log.Debug("suspend output", zap.Error(serr))
	}

	return errors.Join(err, s.Player.Close())
}
