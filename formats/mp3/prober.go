// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/utils"
)

// go-mp3 always decodes to 16-bit stereo.
const bytesPerFrame = 4

// syncSearchLimit bounds how far into the buffer a frame header is looked
// for when there is no ID3v2 tag.
const syncSearchLimit = 4096

var id3Magic = []byte("ID3")

// mp3Stream is the part of gomp3.Decoder used by the prober.
type mp3Stream interface {
	SampleRate() int
	Length() int64
}

func newGoMP3Stream(r io.Reader) (mp3Stream, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// Prober extracts metadata from MPEG audio layer III buffers with
// github.com/hajimehoshi/go-mp3.
//
// The sample rate is that of the first frame. go-mp3 walks every frame
// header to size the stream; the resulting duration is converted back to
// frames with utils.FramesFromSeconds.
type Prober struct {
	newStream func(io.Reader) (mp3Stream, error)
}

func (Prober) Format() audio.Format { return audio.MP3 }

func (p Prober) Probe(buf []byte) (audio.Metadata, error) {
	if !looksLikeMP3(buf) {
		return audio.Metadata{}, ErrNotMP3File
	}

	newStream := p.newStream
	if newStream == nil {
		newStream = newGoMP3Stream
	}

	dec, err := newStream(bytes.NewReader(buf))
	if err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	rate := dec.SampleRate()
	if rate <= 0 {
		return audio.Metadata{}, fmt.Errorf("%w: sample rate %d", ErrNotMP3File, rate)
	}

	length := dec.Length()
	if length < bytesPerFrame {
		return audio.Metadata{}, ErrNoFrames
	}

	sampleRate := uint32(rate)
	seconds := float64(length/bytesPerFrame) / float64(sampleRate)

	return audio.Metadata{
		SampleRate:   sampleRate,
		SampleLength: utils.FramesFromSeconds(seconds, sampleRate),
	}, nil
}

// looksLikeMP3 accepts an ID3v2 tag at the start of buf, or a layer III
// frame header within its first syncSearchLimit bytes.
func looksLikeMP3(buf []byte) bool {
	if bytes.HasPrefix(buf, id3Magic) {
		return true
	}

	end := min(len(buf), syncSearchLimit) - 3
	for i := range end {
		if isFrameHeader(buf[i : i+4]) {
			return true
		}
	}

	return false
}

// isFrameHeader reports whether h holds an MPEG layer III frame header whose
// indexes are all outside their reserved values.
func isFrameHeader(h []byte) bool {
	return h[0] == 0xFF && h[1]&0xE0 == 0xE0 &&
		h[1]&0x18 != 0x08 &&
		h[1]&0x06 == 0x02 &&
		h[2]&0xF0 != 0xF0 &&
		h[2]&0x0C != 0x0C
}
