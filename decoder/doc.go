// SPDX-License-Identifier: EPL-2.0

// Package decoder opens audio files and streams them as float frames.
//
// Open resolves a path to bytes (a local file or an HTTP download),
// probes the container by its magic bytes and binds one of the format
// decoders through an audio.Registry. The resulting Source yields frames
// in interleaved or planar layout, or dumps the whole stream to a mono
// buffer for analysis.
//
//	src, err := decoder.Open(ctx, "~/music/a.wav", decoder.Options{})
//	if err != nil {
//	    return err
//	}
//	defer src.Close()
//
//	signal, err := src.DumpMono(nil)
//
// Recoverable codec errors (wrapping audio.ErrTransient) skip one packet.
// Everything else ends the session with a *DecodeError.
package decoder
