// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"fmt"

	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/utils"
	"github.com/mewkiz/flac"
)

var flacMagic = []byte("fLaC")

// Prober reads the STREAMINFO block of a FLAC buffer. Other metadata blocks
// (tags, pictures, seek tables) are skipped without being parsed.
type Prober struct{}

func (Prober) Format() audio.Format { return audio.FLAC }

func (Prober) Probe(buf []byte) (audio.Metadata, error) {
	if !bytes.HasPrefix(buf, flacMagic) {
		return audio.Metadata{}, ErrNotFlacFile
	}

	// flac.New stops after the metadata blocks; no frame is decoded.
	stream, err := flac.New(bytes.NewReader(buf))
	if err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}
	defer stream.Close()

	// NSamples is 0 when the encoder did not know the length.
	return audio.Metadata{
		SampleRate:   stream.Info.SampleRate,
		SampleLength: utils.ClampUint32(stream.Info.NSamples),
	}, nil
}
