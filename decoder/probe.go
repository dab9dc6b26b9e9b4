// SPDX-License-Identifier: EPL-2.0

package decoder

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Container names used as registry keys.
const (
	FormatWAV    = "wav"
	FormatAIFF   = "aiff"
	FormatOgg    = "ogg"
	FormatMP3    = "mp3"
	FormatFLAC   = "flac"
	probeHeadLen = 12
)

// probe identifies the container from its first bytes. The extension is
// only consulted for MP3 streams without an ID3 tag, where a frame-sync
// check alone would accept too much.
func probe(head []byte, path string) (string, bool) {
	switch {
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("RIFF")) && bytes.Equal(head[8:12], []byte("WAVE")):
		return FormatWAV, true
	case len(head) >= 12 && bytes.Equal(head[0:4], []byte("FORM")) &&
		(bytes.Equal(head[8:12], []byte("AIFF")) || bytes.Equal(head[8:12], []byte("AIFC"))):
		return FormatAIFF, true
	case bytes.HasPrefix(head, []byte("OggS")):
		return FormatOgg, true
	case bytes.HasPrefix(head, []byte("fLaC")):
		return FormatFLAC, true
	case bytes.HasPrefix(head, []byte("ID3")):
		return FormatMP3, true
	case len(head) >= 2 && head[0] == 0xFF && head[1]&0xE0 == 0xE0:
		if ext := extension(path); ext == "" || ext == FormatMP3 {
			return FormatMP3, true
		}
	}

	return "", false
}

func extension(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 && strings.Contains(path, "://") {
		path = path[:i]
	}

	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}
