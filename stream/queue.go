// SPDX-License-Identifier: EPL-2.0

package stream

import (
	"errors"
	"sync/atomic"

	"golang.org/x/sys/cpu"
)

var (
	ErrQueueFull  = errors.New("sample queue full")
	ErrQueueEmpty = errors.New("sample queue empty")
)

// Queue is a bounded lock-free FIFO for exactly one producer goroutine
// and one consumer goroutine.
//
// head and tail count pops and pushes since creation; they only grow, so
// tail-head is the fill level without a wrap flag.
type Queue[S Sample] struct {
	buf []Item[S]

	_    cpu.CacheLinePad
	head atomic.Uint64 // written by the consumer
	_    cpu.CacheLinePad
	tail atomic.Uint64 // written by the producer
	_    cpu.CacheLinePad
}

// NewQueue allocates a queue holding capacity items (at least one).
func NewQueue[S Sample](capacity int) *Queue[S] {
	return &Queue[S]{buf: make([]Item[S], max(1, capacity))}
}

func (q *Queue[S]) Cap() int { return len(q.buf) }

// Len is a snapshot; it can be stale by the time it returns.
func (q *Queue[S]) Len() int {
	return int(q.tail.Load() - q.head.Load())
}

// Push appends it, or returns ErrQueueFull. Producer side only.
func (q *Queue[S]) Push(it Item[S]) error {
	tail := q.tail.Load()
	if tail-q.head.Load() == uint64(len(q.buf)) {
		return ErrQueueFull
	}

	q.buf[tail%uint64(len(q.buf))] = it
	q.tail.Store(tail + 1)

	return nil
}

// Pop removes the oldest item, or returns ErrQueueEmpty. Consumer side
// only; never blocks.
func (q *Queue[S]) Pop() (Item[S], error) {
	head := q.head.Load()
	if head == q.tail.Load() {
		return Item[S]{}, ErrQueueEmpty
	}

	it := q.buf[head%uint64(len(q.buf))]
	q.head.Store(head + 1)

	return it, nil
}
