// SPDX-License-Identifier: EPL-2.0

package mp4

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/utils"
)

var ftypMagic = []byte("ftyp")

// Prober extracts metadata from MP4/M4A buffers.
//
// The sample rate is that of the first sound track and the duration that of
// the movie header (falling back to the sound track's media header). The
// frame count is derived as round(duration * sample rate), so it is an
// approximation.
//
// When a movie box is present but either value is missing, the failure is
// dispatcher-fatal: the returned error wraps audio.ErrAbort as well as
// ErrIncomplete. Setting FallThrough makes it an ordinary probe failure.
type Prober struct {
	FallThrough bool
}

func (Prober) Format() audio.Format { return audio.MP4 }

func (p Prober) Probe(buf []byte) (audio.Metadata, error) {
	if len(buf) < 8 || !bytes.Equal(buf[4:8], ftypMagic) {
		return audio.Metadata{}, ErrNotMP4File
	}

	r := bytes.NewReader(buf)

	moov, err := findMovie(r)
	if moov == nil {
		if err != nil {
			return audio.Metadata{}, fmt.Errorf("%w: %w: %w", ErrNoMovie, ErrMalformed, err)
		}
		return audio.Metadata{}, ErrNoMovie
	}

	rate, duration := readMovie(r, moov)
	if rate == 0 || duration == nil {
		return audio.Metadata{}, p.incomplete(rate, duration)
	}

	return audio.Metadata{
		SampleRate:   rate,
		SampleLength: utils.FramesFromSeconds(duration.seconds(), rate),
	}, nil
}

func (p Prober) incomplete(rate uint32, duration *timeHeader) error {
	err := fmt.Errorf("%w (sample rate %d, duration known %t)", ErrIncomplete, rate, duration != nil)
	if p.FallThrough {
		return err
	}
	return errors.Join(err, audio.ErrAbort)
}
