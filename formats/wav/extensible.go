// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// WAVE_FORMAT_EXTENSIBLE keeps the real format code in the first two bytes
// of the SubFormat GUID at offset 24 of the fmt chunk.
const (
	wavFormatExtensible = 0xFFFE
	subFormatOffset     = 24
)

// extensibleSubFormat reads the SubFormat code of an extensible fmt chunk
// and leaves rs rewound to the start.
func extensibleSubFormat(rs io.ReadSeeker) (code uint16, err error) {
	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return 0, err
	}
	defer func() {
		if _, serr := rs.Seek(0, io.SeekStart); err == nil {
			err = serr
		}
	}()

	p := riff.New(rs)
	if err := p.ParseHeaders(); err != nil {
		return 0, err
	}

	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, err
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		if ch.Size < subFormatOffset+2 {
			return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrUnsupportedWavLayout, ch.Size)
		}

		fmtChunk := make([]byte, ch.Size)
		if _, err := io.ReadFull(ch, fmtChunk); err != nil {
			return 0, err
		}

		return binary.LittleEndian.Uint16(fmtChunk[subFormatOffset:]), nil
	}
}
