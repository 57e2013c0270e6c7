// SPDX-License-Identifier: EPL-2.0

package audmeta

import (
	"sync"

	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/formats/aiff"
	"github.com/ik5/audmeta/formats/flac"
	"github.com/ik5/audmeta/formats/mp3"
	"github.com/ik5/audmeta/formats/mp4"
	"github.com/ik5/audmeta/formats/vorbis"
	"github.com/ik5/audmeta/formats/wav"
)

var defaultRegistry = sync.OnceValue(func() *audio.Registry {
	return NewRegistry()
})

// NewRegistry returns a registry holding every supported prober in priority
// order: WAV, Ogg/Vorbis, FLAC, MP4, AIFF, MP3.
func NewRegistry(opts ...Option) *audio.Registry {
	c := newConfig(opts)

	reg := audio.NewRegistry()
	if c.log != nil {
		reg.SetLogger(c.log)
	}

	reg.Register(wav.Prober{})
	reg.Register(vorbis.Prober{Strategy: c.oggStrategy})
	reg.Register(flac.Prober{})
	reg.Register(mp4.Prober{FallThrough: c.mp4FallThrough})
	reg.Register(aiff.Prober{})
	reg.Register(mp3.Prober{})

	return reg
}

// ReadMetadata reports the sample rate and frame count of the audio file held
// in buf. The boolean is false when no prober recognized the buffer.
//
// buf must hold the whole file; it is never modified.
func ReadMetadata(buf []byte) (audio.Metadata, bool) {
	_, meta, err := defaultRegistry().Probe(buf)
	if err != nil {
		return audio.Metadata{}, false
	}

	return meta, true
}

// Detect is ReadMetadata with options that also reports which format matched.
// On failure the error is audio.ErrUnrecognized, or the error of the prober
// that ended the dispatch (it wraps audio.ErrAbort).
func Detect(buf []byte, opts ...Option) (audio.Format, audio.Metadata, error) {
	if len(opts) == 0 {
		return defaultRegistry().Probe(buf)
	}

	return NewRegistry(opts...).Probe(buf)
}
