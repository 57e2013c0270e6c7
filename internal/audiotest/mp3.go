// SPDX-License-Identifier: EPL-2.0

package audiotest

import "bytes"

// mp3Header is an MPEG-1 layer III frame header: no CRC, 128 kbit/s,
// 44100 Hz, no padding, stereo.
var mp3Header = []byte{0xFF, 0xFB, 0x90, 0x00}

const (
	// MP3FrameSize is the size of a 128 kbit/s frame at 44100 Hz without
	// padding: 144 * 128000 / 44100.
	MP3FrameSize = 417
	// MP3SamplesPerFrame is the frame count of one MPEG-1 layer III frame.
	MP3SamplesPerFrame = 1152
)

// MP3Params describes a stream of silent MPEG-1 layer III frames at 44100 Hz.
type MP3Params struct {
	Frames int
	// Lead is written before the first frame, after the ID3 tag if any.
	Lead []byte
	// ID3 prepends an empty ID3v2.3 tag with this many bytes of padding.
	ID3 int
}

// MP3 returns the frames described by params. An all-zero side info and
// main data decode to silence.
func MP3(params MP3Params) []byte {
	var out []byte

	if params.ID3 > 0 {
		out = append(out, id3Tag(params.ID3)...)
	}

	out = append(out, params.Lead...)

	frame := append(bytes.Clone(mp3Header), make([]byte, MP3FrameSize-len(mp3Header))...)
	for range params.Frames {
		out = append(out, frame...)
	}

	return out
}

// id3Tag returns an ID3v2.3 header followed by size bytes of padding. The
// size is stored as a syncsafe integer.
func id3Tag(size int) []byte {
	tag := []byte{'I', 'D', '3', 3, 0, 0,
		byte(size>>21) & 0x7F, byte(size>>14) & 0x7F, byte(size>>7) & 0x7F, byte(size) & 0x7F}
	return append(tag, make([]byte, size)...)
}
