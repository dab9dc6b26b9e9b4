// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"time"

	"github.com/ik5/phonolyze/metrics"
	"github.com/ik5/phonolyze/position"
)

// Consumer drains the queue into output buffers. It belongs to the
// device's real-time callback and is not safe for concurrent use; Fill
// never blocks and never allocates.
type Consumer[S Sample] struct {
	queue    *Queue[S]
	tracker  *position.Tracker
	state    *stateCell
	channels int // output channels
	rate     float64

	cached     int    // channel count of the Signal run being read
	consumed   uint64 // source frames played since creation
	fellBehind bool
}

// NewConsumer reads q for an output of channels at rate. tracker may be
// nil.
func NewConsumer[S Sample](q *Queue[S], channels, rate int, tracker *position.Tracker) (*Consumer[S], error) {
	if q == nil || channels <= 0 || rate <= 0 {
		return nil, ErrInvalidConfig
	}

	return &Consumer[S]{
		queue:    q,
		tracker:  tracker,
		channels: channels,
		rate:     float64(rate),
		cached:   channels,
	}, nil
}

// FellBehind reports whether the last Fill ran out of queued items.
func (c *Consumer[S]) FellBehind() bool { return c.fellBehind }

// Consumed is the number of source frames played so far.
func (c *Consumer[S]) Consumed() uint64 { return c.consumed }

// Fill writes whole interleaved output frames into dst; a trailing partial
// frame is zeroed. playbackAt is when the device will play dst[0]. The
// tracker gets the music span the buffer carries; silence and underrun
// frames add nothing to it. It reports whether the queue ran dry.
func (c *Consumer[S]) Fill(dst []S, playbackAt time.Time) bool {
	start := c.consumed
	fell := false

	frames := len(dst) / c.channels
	for f := range frames {
		if !c.frame(dst[f*c.channels : (f+1)*c.channels]) {
			fell = true
		}
	}
	clear(dst[frames*c.channels:])

	if c.tracker != nil {
		c.tracker.Publish(playbackAt, float64(start)/c.rate, float64(c.consumed)/c.rate)
	}

	if fell {
		metrics.Underruns.Inc()
		if c.state != nil {
			c.state.drained()
		}
	}
	c.fellBehind = fell

	return fell
}

// frame fills one output frame and reports false on underrun.
func (c *Consumer[S]) frame(out []S) bool {
	var it Item[S]
	for {
		var err error
		if it, err = c.queue.Pop(); err != nil {
			clear(out)
			return false
		}
		if it.Kind != SetChannelCount {
			break
		}
		c.setChannels(it.Channels)
	}

	if it.Kind == Silence {
		clear(out)
		return true
	}

	c.consumed++
	out[0] = it.Value

	// Channel counts met inside the frame apply from the next frame on.
	next := 0
	for i := 1; i < len(out); i++ {
		switch {
		case i == 1 && c.cached == 1:
			out[1] = it.Value
		case i < c.cached:
			v, ok := c.member(&next)
			if !ok {
				clear(out[i:])
				return false
			}
			out[i] = v
		default:
			out[i] = 0
		}
	}

	// Source channels the output has no room for.
	for i := len(out); i < c.cached; i++ {
		if _, ok := c.member(&next); !ok {
			return false
		}
	}

	if next > 0 {
		c.setChannels(next)
	}

	return true
}

// member pops the next sample of the current frame, stepping over control
// items. A channel count seen on the way is stored in next.
func (c *Consumer[S]) member(next *int) (S, bool) {
	for {
		it, err := c.queue.Pop()
		if err != nil {
			return 0, false
		}

		switch it.Kind {
		case SetChannelCount:
			*next = it.Channels
		case Silence:
			return 0, true
		default:
			return it.Value, true
		}
	}
}

func (c *Consumer[S]) setChannels(n int) {
	if n > 0 {
		c.cached = n
	}
}
