// SPDX-License-Identifier: EPL-2.0

package audio_test

import (
	"fmt"
	"io"

	"github.com/ik5/phonolyze/audio"
	"github.com/ik5/phonolyze/internal/audiotest"
)

// Example_resampler demonstrates bringing a source to a device rate.
func Example_resampler() {
	source := audiotest.NewSineSource(44100, 1, 44100, 440.0)
	resampler := audio.NewResampler(source, 16000)

	buf := make([]float32, 4096)
	total := 0
	for {
		n, err := resampler.ReadSamples(buf)
		total += n
		if err == io.EOF {
			break
		}
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			return
		}
	}

	fmt.Printf("%d Hz, %d samples\n", resampler.SampleRate(), total)
	// Output: 16000 Hz, 16000 samples
}

// Example_deinterleave shows the planar layout used for channel selection.
func Example_deinterleave() {
	stereo := []float32{1, -1, 2, -2}
	planar := make([]float32, len(stereo))
	audio.Deinterleave(planar, stereo, 2)

	fmt.Println(planar)
	// Output: [1 2 -1 -2]
}
