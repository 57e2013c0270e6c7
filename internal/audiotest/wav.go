// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
)

// WAVParams describes a canonical PCM WAV file.
type WAVParams struct {
	SampleRate int
	Channels   int
	BitDepth   int
	Frames     int
}

// WAV returns a 44-byte-header PCM WAV file holding params.Frames silent frames.
func WAV(params WAVParams) []byte {
	bytesPerSample := (params.BitDepth + 7) / 8
	blockAlign := params.Channels * bytesPerSample
	dataSize := params.Frames * blockAlign

	buf := make([]byte, 44+dataSize)

	copy(buf[0:4], "RIFF")
	binary.LittleEndian.PutUint32(buf[4:8], uint32(36+dataSize))
	copy(buf[8:12], "WAVE")

	copy(buf[12:16], "fmt ")
	binary.LittleEndian.PutUint32(buf[16:20], 16)
	binary.LittleEndian.PutUint16(buf[20:22], 1) // PCM
	binary.LittleEndian.PutUint16(buf[22:24], uint16(params.Channels))
	binary.LittleEndian.PutUint32(buf[24:28], uint32(params.SampleRate))
	binary.LittleEndian.PutUint32(buf[28:32], uint32(params.SampleRate*blockAlign))
	binary.LittleEndian.PutUint16(buf[32:34], uint16(blockAlign))
	binary.LittleEndian.PutUint16(buf[34:36], uint16(params.BitDepth))

	copy(buf[36:40], "data")
	binary.LittleEndian.PutUint32(buf[40:44], uint32(dataSize))

	return buf
}
