// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"time"
)

// Metadata is the decode-free summary of an audio buffer.
type Metadata struct {
	// SampleRate in whole Hz.
	SampleRate uint32
	// SampleLength is the total number of sample frames (samples per channel).
	SampleLength uint32
}

// Duration is SampleLength expressed as time at SampleRate. It is zero when
// the sample rate is unknown.
func (m Metadata) Duration() time.Duration {
	if m.SampleRate == 0 {
		return 0
	}

	return time.Duration(uint64(m.SampleLength) * uint64(time.Second) / uint64(m.SampleRate))
}

func (m Metadata) String() string {
	return fmt.Sprintf("%d Hz, %d frames", m.SampleRate, m.SampleLength)
}

// Format identifies the container a Prober recognizes.
type Format int

const (
	Unknown Format = iota
	WAV
	Vorbis
	FLAC
	MP4
	AIFF
	MP3
)

func (f Format) String() string {
	switch f {
	case WAV:
		return "wav"
	case Vorbis:
		return "ogg vorbis"
	case FLAC:
		return "flac"
	case MP4:
		return "mp4"
	case AIFF:
		return "aiff"
	case MP3:
		return "mp3"
	default:
		return "unknown"
	}
}

// Prober tries to recognize one container format in a complete in-memory
// buffer and extract its Metadata.
//
// Probe must not modify buf. A nil error means success. An error wrapping
// ErrAbort stops the surrounding dispatch; any other error lets the next
// prober run.
type Prober interface {
	Format() Format
	Probe(buf []byte) (Metadata, error)
}
