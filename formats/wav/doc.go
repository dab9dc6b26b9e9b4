// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files.
//
// Decoding goes through github.com/go-audio/wav and accepts integer PCM at
// 8, 16, 24 or 32 bits, any channel count and any sample rate. Samples
// come out interleaved and scaled to [-1, 1).
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
//
// # Writing
//
// WritePCM16 emits a canonical 44-byte header followed by 16-bit data and
// needs only an io.Writer. WriteDecimated keeps every n-th sample of a
// float signal and encodes it through the go-audio encoder; it is used to
// dump the analysed signal for listening checks.
//
// 8-bit WAV is unsigned offset binary; the decoder re-centres it on zero.
package wav
