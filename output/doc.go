// SPDX-License-Identifier: EPL-2.0

// Package output drives the default audio device through oto.
//
// oto pulls bytes from an io.Reader on its own goroutine; Reader is that
// reader, rendering each request through a stream.Consumer. The sample
// type is fixed when Open negotiates the format, so nothing on the
// real-time path switches on it.
//
// oto allows one context per process, so a process opens at most one
// Session.
package output
