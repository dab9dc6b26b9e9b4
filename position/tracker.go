// SPDX-License-Identifier: EPL-2.0

// Package position shares the playhead between the output callback and
// readers such as the UI.
//
// The callback publishes where the first sample of each buffer sits in
// the music and when the device will play it. Readers extrapolate from
// that pair with the wall clock, so they never wait on the audio thread.
package position

import (
	"math"
	"runtime"
	"sync/atomic"
	"time"
)

// Position is a copy of the tracker state. MusicPosition is only
// meaningful relative to Instant.
type Position struct {
	Instant       time.Time
	MusicPosition float64 // seconds
	BufferEnd     float64 // seconds; the published buffer holds music up to here
	MusicLength   float64 // seconds, zero until known
}

// Extrapolate returns MusicPosition plus the wall time elapsed since
// Instant, never past BufferEnd. Instants in the future count as no time
// elapsed. A buffer of silence has BufferEnd == MusicPosition and holds
// the position still, so the next publish always starts at or after any
// value returned here.
func (p Position) Extrapolate(now time.Time) float64 {
	elapsed := now.Sub(p.Instant)
	if elapsed < 0 {
		elapsed = 0
	}

	return min(p.MusicPosition+elapsed.Seconds(), max(p.BufferEnd, p.MusicPosition))
}

// Clamped is Extrapolate limited to [0, MusicLength]. An unknown length
// only clamps the lower bound.
func (p Position) Clamped(now time.Time) float64 {
	pos := max(0, p.Extrapolate(now))
	if p.MusicLength > 0 {
		pos = min(pos, p.MusicLength)
	}

	return pos
}

// Tracker is a single-writer sequence lock. Publish must only be called
// from one goroutine at a time; Snapshot and SetLength are safe from any.
type Tracker struct {
	epoch time.Time

	seq     atomic.Uint64 // odd while a publish is in flight
	instant atomic.Int64  // nanoseconds since epoch
	pos     atomic.Uint64 // float64 bits
	end     atomic.Uint64 // float64 bits

	length atomic.Uint64 // float64 bits, outside the sequence
}

// NewTracker starts at position zero, instant now.
func NewTracker() *Tracker {
	return &Tracker{epoch: time.Now()}
}

// Publish records that the buffer starting at musicPosition will be heard
// at instant and runs up to bufferEnd. It never blocks and does not
// allocate.
func (t *Tracker) Publish(instant time.Time, musicPosition, bufferEnd float64) {
	t.seq.Add(1)
	t.instant.Store(int64(instant.Sub(t.epoch)))
	t.pos.Store(math.Float64bits(musicPosition))
	t.end.Store(math.Float64bits(bufferEnd))
	t.seq.Add(1)
}

// SetLength records the total music length in seconds.
func (t *Tracker) SetLength(seconds float64) {
	t.length.Store(math.Float64bits(seconds))
}

// Snapshot returns a consistent copy of the last publish.
func (t *Tracker) Snapshot() Position {
	for {
		before := t.seq.Load()
		if before&1 == 1 {
			runtime.Gosched()
			continue
		}

		ns := t.instant.Load()
		pos := t.pos.Load()
		end := t.end.Load()

		if t.seq.Load() == before {
			return Position{
				Instant:       t.epoch.Add(time.Duration(ns)),
				MusicPosition: math.Float64frombits(pos),
				BufferEnd:     math.Float64frombits(end),
				MusicLength:   math.Float64frombits(t.length.Load()),
			}
		}
	}
}
