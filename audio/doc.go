// SPDX-License-Identifier: EPL-2.0

// Package audio provides the sample-stream primitives the decoder and the
// streaming player are built on.
//
//   - Source: a pull-based stream of interleaved float32 samples
//   - Registry: codec decoders keyed by format name
//   - Resampler: cubic sample rate conversion
//   - MonoMixer: channel averaging
//   - Layout and Deinterleave: interleaved versus planar buffers
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Samples are float32 in [-1.0, 1.0]. BufSize is the natural packet size
// of the codec; the decoder package reads one packet per frame.
//
// # Errors
//
// ReadSamples returns io.EOF at the end of the stream, possibly together
// with the last samples. An error for which IsTransient reports true means
// one packet was lost and reading may continue:
//
//	for {
//	    n, err := src.ReadSamples(buf)
//	    use(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if audio.IsTransient(err) {
//	        continue
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
//
// # Resampling
//
//	res := audio.NewResampler(src, 48000)
//
// The streaming player uses this to bring a file to the output device rate.
package audio
