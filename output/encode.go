// SPDX-License-Identifier: EPL-2.0

package output

import (
	"encoding/binary"
	"math"

	"github.com/ik5/phonolyze/stream"
	"github.com/ik5/phonolyze/utils"
)

// encoder writes samples as device bytes; dst holds exactly
// len(src)*bytesPerSample bytes.
type encoder[S stream.Sample] func(dst []byte, src []S)

// encoderFor picks the byte layout for S: float32 little endian, or
// unsigned 8-bit for int8.
func encoderFor[S stream.Sample]() (encoder[S], int) {
	var zero S
	switch any(zero).(type) {
	case int8:
		return func(dst []byte, src []S) {
			for i, v := range src {
				dst[i] = utils.Int8ToUint8(int8(v))
			}
		}, 1
	default:
		return func(dst []byte, src []S) {
			for i, v := range src {
				binary.LittleEndian.PutUint32(dst[4*i:], math.Float32bits(float32(v)))
			}
		}, 4
	}
}
