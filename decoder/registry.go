// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"sync"

	"github.com/ik5/phonolyze/audio"
	"github.com/ik5/phonolyze/formats/aiff"
	"github.com/ik5/phonolyze/formats/mp3"
	"github.com/ik5/phonolyze/formats/vorbis"
	"github.com/ik5/phonolyze/formats/wav"
)

var (
	defaultOnce     sync.Once
	defaultRegistry *audio.Registry
)

// DefaultRegistry returns the shared registry holding every built-in
// format. FLAC is recognised by the prober but has no decoder.
func DefaultRegistry() *audio.Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})

	return defaultRegistry
}

// NewRegistry returns a fresh registry with the built-in formats.
func NewRegistry() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(FormatWAV, wav.Decoder{})
	r.Register(FormatAIFF, aiff.Decoder{})
	r.Register(FormatOgg, vorbis.Decoder{})
	r.Register(FormatMP3, mp3.Decoder{})

	return r
}
