// SPDX-License-Identifier: EPL-2.0

// Package phonolyze decodes audio files, computes their short-time
// spectrum and streams them to the sound card with a shared playhead.
//
// # Analysis
//
// Analyze is the one-call path from a file or URL to a decibel matrix:
//
//	a, err := phonolyze.Analyze(ctx, "song.mp3", phonolyze.Options{})
//	if err != nil {
//	    return err
//	}
//	// a.Matrix[frame][bin], a.SampleRate, a.Signal
//
// The pieces are usable on their own:
//
//	src, _ := decoder.Open(ctx, "song.ogg", decoder.Options{})
//	mono, _ := src.DumpMono(nil)
//	m, _ := spectrum.STFT(mono, 2048, 2048)
//
// # Supported Formats
//
//   - WAV (PCM 8, 16, 24 and 32-bit) via formats/wav
//   - MP3 via formats/mp3
//   - Ogg Vorbis via formats/vorbis
//   - AIFF via formats/aiff
//
// Paths may be local (with ~ expansion), absolute http(s) URLs, or
// relative to decoder.Options.BaseURL.
//
// # Playback
//
// The stream package holds the lock-free player: a loader goroutine
// decodes into a single-producer single-consumer queue that the device
// callback drains. output binds it to the default device, and position
// publishes where in the music the speaker currently is.
//
//	sess, _ := output.Open(output.Config{SampleRate: 44100, Channels: 2}, stream.Options{})
//	defer sess.Close()
//	sess.Play(ctx, "song.wav")
//	pos := sess.Tracker().Snapshot().Clamped(time.Now())
package phonolyze
