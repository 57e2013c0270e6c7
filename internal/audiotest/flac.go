// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
)

// FLACParams describes the STREAMINFO block of a FLAC stream.
type FLACParams struct {
	SampleRate   uint32
	Channels     int
	BitDepth     int
	TotalSamples uint64 // 0 means unknown
	// Padding appends a PADDING metadata block after STREAMINFO.
	Padding int
}

// FLAC returns the "fLaC" signature followed by a STREAMINFO block (and an
// optional PADDING block). No audio frames follow.
func FLAC(params FLACParams) []byte {
	buf := []byte("fLaC")

	header := byte(0x00) // STREAMINFO
	if params.Padding == 0 {
		header |= 0x80
	}
	buf = append(buf, header, 0, 0, 34)

	buf = binary.BigEndian.AppendUint16(buf, 4096) // min block size
	buf = binary.BigEndian.AppendUint16(buf, 4096) // max block size
	buf = append(buf, 0, 0, 0)                     // min frame size (unknown)
	buf = append(buf, 0, 0, 0)                     // max frame size (unknown)

	packed := uint64(params.SampleRate&0xFFFFF)<<44 |
		uint64(params.Channels-1)&0x7<<41 |
		uint64(params.BitDepth-1)&0x1F<<36 |
		params.TotalSamples&0xFFFFFFFFF
	buf = binary.BigEndian.AppendUint64(buf, packed)

	buf = append(buf, make([]byte, 16)...) // MD5

	if params.Padding > 0 {
		n := params.Padding
		buf = append(buf, 0x80|0x01, byte(n>>16), byte(n>>8), byte(n))
		buf = append(buf, make([]byte, n)...)
	}

	return buf
}
