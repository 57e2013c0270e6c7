// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/utils"
)

// Prober extracts metadata from AIFF and AIFF-C buffers. It is the only probe
// that reports an exact frame count straight from the container header.
type Prober struct{}

func (Prober) Format() audio.Format { return audio.AIFF }

func (Prober) Probe(buf []byte) (audio.Metadata, error) {
	c, err := ParseCommon(buf)
	if err != nil {
		return audio.Metadata{}, err
	}

	return audio.Metadata{
		SampleRate:   utils.SaturateUint32(c.Rate()),
		SampleLength: c.NumFrames,
	}, nil
}
