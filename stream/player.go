// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/phonolyze/decoder"
	"github.com/ik5/phonolyze/internal/logging"
	"github.com/ik5/phonolyze/position"
)

var (
	ErrInvalidConfig = errors.New("invalid player configuration")
	ErrClosed        = errors.New("player closed")
)

const commandBacklog = 16

// Options are the optional parts of a Player.
type Options struct {
	// Open defaults to DecoderOpener(Decoder, sampleRate).
	Open    Opener
	Decoder decoder.Options

	Tracker *position.Tracker // defaults to a fresh tracker
	Logger  *zap.Logger

	// OnError receives load failures from the loader goroutine.
	OnError func(path string, err error)
}

// Player streams files to an output through a primed SPSC queue. The
// output device calls Consumer().Fill; everything else may be called from
// any goroutine.
type Player[S Sample] struct {
	queue    *Queue[S]
	consumer *Consumer[S]
	tracker  *position.Tracker
	state    *stateCell

	latencyFrames int
	cmds          chan string
	cancel        context.CancelFunc
	done          chan struct{}
	closeOnce     sync.Once
}

// New builds a player for an output of channels at sampleRate. The queue
// holds 2*latencyFrames*channels items and starts with latencyFrames
// frames of silence, where latencyFrames = round(latencyMS*sampleRate/1000).
func New[S Sample](sampleRate, channels, latencyMS int, opts Options) (*Player[S], error) {
	if sampleRate <= 0 || channels <= 0 || latencyMS < 0 {
		return nil, ErrInvalidConfig
	}

	log := logging.OrNop(opts.Logger)
	tracker := opts.Tracker
	if tracker == nil {
		tracker = position.NewTracker()
	}
	open := opts.Open
	if open == nil {
		opts.Decoder.Logger = log
		open = DecoderOpener(opts.Decoder, sampleRate)
	}

	latencyFrames := int(math.Round(float64(latencyMS) * float64(sampleRate) / 1000))
	queue := NewQueue[S](2 * latencyFrames * channels)
	// A Silence item mutes a whole output frame, so latencyFrames items
	// prime exactly latencyMS of audio.
	for range latencyFrames {
		if err := queue.Push(SilenceItem[S]()); err != nil {
			return nil, fmt.Errorf("priming queue: %w", err)
		}
	}

	state := &stateCell{}
	state.set(Idle)

	consumer, err := NewConsumer(queue, channels, sampleRate, tracker)
	if err != nil {
		return nil, err
	}
	consumer.state = state

	ctx, cancel := context.WithCancel(context.Background())
	p := &Player[S]{
		queue:         queue,
		consumer:      consumer,
		tracker:       tracker,
		state:         state,
		latencyFrames: latencyFrames,
		cmds:          make(chan string, commandBacklog),
		cancel:        cancel,
		done:          make(chan struct{}),
	}

	loader := &Loader[S]{
		queue:   queue,
		open:    open,
		convert: Converter[S](),
		retry:   max(time.Millisecond, time.Duration(latencyMS)*time.Millisecond/2),
		state:   state,
		log:     log.Named("loader"),
		onError: opts.OnError,
	}

	go func() {
		defer close(p.done)
		loader.Run(ctx, p.cmds)
	}()

	log.Debug("player ready",
		zap.Int("sample_rate", sampleRate),
		zap.Int("channels", channels),
		zap.Int("latency_frames", latencyFrames),
		zap.Int("queue_capacity", queue.Cap()),
	)

	return p, nil
}

// Play queues path behind any file already playing. It only blocks when
// the command backlog is full.
func (p *Player[S]) Play(ctx context.Context, path string) error {
	select {
	case <-p.done:
		return ErrClosed
	default:
	}

	select {
	case p.cmds <- path:
		return nil
	case <-p.done:
		return ErrClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loader and waits for it. Items already queued stay
// playable.
func (p *Player[S]) Close() error {
	p.closeOnce.Do(func() {
		p.cancel()
		<-p.done
	})

	return nil
}

func (p *Player[S]) State() State               { return p.state.load() }
func (p *Player[S]) Tracker() *position.Tracker { return p.tracker }
func (p *Player[S]) Consumer() *Consumer[S]     { return p.consumer }
func (p *Player[S]) LatencyFrames() int         { return p.latencyFrames }
func (p *Player[S]) Capacity() int              { return p.queue.Cap() }
func (p *Player[S]) Buffered() int              { return p.queue.Len() }
