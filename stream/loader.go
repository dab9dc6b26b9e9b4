// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/ik5/phonolyze/audio"
	"github.com/ik5/phonolyze/decoder"
	"github.com/ik5/phonolyze/metrics"
)

// FrameSource is what the loader pulls from. *decoder.Source implements
// it.
type FrameSource interface {
	NextFrame(layout audio.Layout) (*decoder.Frame, error)
	Channels() int
	Close() error
}

// Opener opens path for decoding at the output rate.
type Opener func(ctx context.Context, path string) (FrameSource, error)

// DecoderOpener opens through decoder.Open, resampling to rate.
func DecoderOpener(opts decoder.Options, rate int) Opener {
	opts.TargetRate = rate

	return func(ctx context.Context, path string) (FrameSource, error) {
		src, err := decoder.Open(ctx, path, opts)
		if err != nil {
			return nil, err
		}

		return src, nil
	}
}

// Loader is the producer side: it decodes one file at a time into the
// queue and sleeps while the queue is full.
type Loader[S Sample] struct {
	queue   *Queue[S]
	open    Opener
	convert func(float32) S
	retry   time.Duration
	state   *stateCell
	log     *zap.Logger
	onError func(path string, err error)

	timer *time.Timer
}

// Run serves play requests from cmds in order until ctx is done or cmds
// is closed.
func (l *Loader[S]) Run(ctx context.Context, cmds <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case path, ok := <-cmds:
			if !ok {
				return
			}
			if err := l.load(ctx, path); err != nil && !errors.Is(err, context.Canceled) && l.onError != nil {
				l.onError(path, err)
			}
		}
	}
}

func (l *Loader[S]) load(ctx context.Context, path string) error {
	l.state.set(Loading)
	defer l.state.set(Draining)

	log := l.log.With(zap.String("path", path))

	src, err := l.open(ctx, path)
	if err != nil {
		metrics.DecodeErrors.WithLabelValues(metrics.StageOpen).Inc()
		log.Error("open failed", zap.Error(err))
		return err
	}
	defer src.Close()

	if err := l.push(ctx, ChannelCountItem[S](src.Channels())); err != nil {
		return err
	}

	var pushed int
	for {
		f, err := src.NextFrame(audio.Interleaved)
		if errors.Is(err, io.EOF) {
			metrics.FilesLoaded.Inc()
			log.Info("file queued", zap.Int("samples", pushed))
			return nil
		}
		if err != nil {
			metrics.DecodeErrors.WithLabelValues(metrics.StageDecode).Inc()
			log.Error("decode aborted", zap.Int("samples", pushed), zap.Error(err))
			return err
		}
		if f == nil {
			continue
		}

		for _, v := range f.Samples {
			if err := l.push(ctx, SignalItem(l.convert(v))); err != nil {
				return err
			}
		}
		pushed += len(f.Samples)
	}
}

// push retries a full queue every retry interval until ctx ends.
func (l *Loader[S]) push(ctx context.Context, it Item[S]) error {
	for {
		err := l.queue.Push(it)
		if err == nil {
			return nil
		}
		metrics.QueueFullRetries.Inc()

		if l.timer == nil {
			l.timer = time.NewTimer(l.retry)
		} else {
			l.timer.Reset(l.retry)
		}

		select {
		case <-ctx.Done():
			l.timer.Stop()
			return ctx.Err()
		case <-l.timer.C:
		}
	}
}
