// SPDX-License-Identifier: EPL-2.0

// Package stream moves decoded audio to a real-time output without locks.
//
// A Loader goroutine decodes files and pushes Items into a
// single-producer single-consumer Queue; the output callback drains it
// through a Consumer. The queue starts primed with latency worth of
// Silence so the first buffers have something to play while the loader
// warms up.
//
// Consumer rules, per output frame:
//
//   - empty queue: the frame is zero and the buffer counts as fell behind
//   - SetChannelCount: updates the source channel count, takes no slot
//   - Silence: the whole frame is zero
//   - Signal: channel 0 gets it; a mono source is copied to channel 1;
//     further channels pop further Signals up to the source count and are
//     zero beyond it; source channels the output lacks are dropped
//
// After each buffer the position tracker learns which source frame the
// buffer started at and when the device will play it.
package stream
