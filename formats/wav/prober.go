// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"bytes"
	"fmt"

	"github.com/go-audio/wav"
	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/utils"
)

var (
	riffMagic = []byte("RIFF")
	waveMagic = []byte("WAVE")
)

// Prober reads the fmt and data chunk headers of a RIFF/WAVE buffer.
// Both values are exact: the frame count is the data chunk size divided by
// the block alignment derived from the fmt chunk.
type Prober struct{}

func (Prober) Format() audio.Format { return audio.WAV }

func (Prober) Probe(buf []byte) (audio.Metadata, error) {
	// go-audio/wav accepts any RIFF form type, so WAVE is checked here.
	if len(buf) < 12 || !bytes.Equal(buf[0:4], riffMagic) || !bytes.Equal(buf[8:12], waveMagic) {
		return audio.Metadata{}, ErrNotWavFile
	}

	dec := wav.NewDecoder(bytes.NewReader(buf))

	dec.ReadInfo()
	if err := dec.Err(); err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}

	blockAlign := int(dec.NumChans) * ((int(dec.BitDepth) + 7) / 8)
	if blockAlign == 0 {
		return audio.Metadata{}, fmt.Errorf("%w: missing fmt chunk", ErrNotWavFile)
	}

	if err := dec.FwdToPCM(); err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNoPCMData, err)
	}

	if dec.PCMChunk == nil {
		return audio.Metadata{}, ErrNoPCMData
	}

	return audio.Metadata{
		SampleRate:   dec.SampleRate,
		SampleLength: utils.ClampUint32(uint64(dec.PCMSize) / uint64(blockAlign)),
	}, nil
}
