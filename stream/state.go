// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"sync/atomic"

	"github.com/ik5/phonolyze/metrics"
)

// State is the player lifecycle: Idle, then Loading while the loader
// feeds a file, then Draining until the queue runs dry.
type State int32

const (
	Idle State = iota
	Loading
	Draining
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Draining:
		return "draining"
	default:
		return "unknown"
	}
}

type stateCell struct {
	v atomic.Int32
}

func (c *stateCell) load() State { return State(c.v.Load()) }

func (c *stateCell) set(s State) {
	c.v.Store(int32(s))
	metrics.PlayerState.Set(float64(s))
}

// drained is called by the consumer on underrun. Only a finished file
// returns the player to Idle; a loader that is merely slow stays Loading.
func (c *stateCell) drained() {
	if c.v.CompareAndSwap(int32(Draining), int32(Idle)) {
		metrics.PlayerState.Set(float64(Idle))
	}
}
