// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/phonolyze/utils"
)

// WriteDecimated encodes every step-th sample of a mono float signal as
// 16-bit PCM through the go-audio encoder, scaling by math.MaxInt16.
// The encoder patches the RIFF sizes on Close, hence io.WriteSeeker.
func WriteDecimated(w io.WriteSeeker, signal []float32, sampleRate, step int) error {
	if w == nil {
		return ErrNeedsSeeker
	}
	if step < 1 {
		step = 1
	}

	data := make([]int, 0, (len(signal)+step-1)/step)
	for i := 0; i < len(signal); i += step {
		data = append(data, int(utils.Float32ToInt16(signal[i])))
	}

	enc := gowav.NewEncoder(w, sampleRate, 16, 1, wavFormatPCM)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: 1, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: 16,
	}

	if err := enc.Write(buf); err != nil {
		enc.Close()
		return fmt.Errorf("encode debug wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finalize debug wav: %w", err)
	}

	return nil
}
