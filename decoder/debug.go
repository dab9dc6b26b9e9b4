// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"errors"
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"

	"github.com/ik5/phonolyze/formats/wav"
)

// DebugDecimation is the fixed sample step of WriteDebugWAV.
const DebugDecimation = 16

// WriteDebugWAV writes every 16th sample of a mono signal to path as
// 16-bit PCM, for listening to what the analyzer saw.
func WriteDebugWAV(path string, signal []float32, sampleRate int) (err error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("debug wav path: %w", err)
	}

	f, err := os.Create(expanded)
	if err != nil {
		return fmt.Errorf("debug wav: %w", err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	return wav.WriteDecimated(f, signal, sampleRate, DebugDecimation)
}
