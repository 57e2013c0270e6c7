// SPDX-License-Identifier: EPL-2.0

package mp4

import (
	"encoding/binary"
	"math"

	gomp4 "github.com/abema/go-mp4"
	"github.com/ik5/audmeta/utils"
	aac "github.com/llehouerou/go-aac"
)

// objectTypeMPEG4Audio is the esds objectTypeIndication of MPEG-4 audio,
// the only one whose decoder specific info is an AudioSpecificConfig.
const objectTypeMPEG4Audio = 0x40

// MPEG-4 systems descriptor tags found in esds.
const (
	tagDecoderConfig   = 0x04
	tagDecoderSpecific = 0x05
)

// sampleRate returns the entry's sample rate in whole Hz, preferring the
// AudioSpecificConfig of its esds over the header fields.
func sampleRate(entry *gomp4.AudioSampleEntry, esds *gomp4.Esds) uint32 {
	if asc, ok := audioSpecificConfig(esds); ok {
		if r, ok := ascSampleRate(asc); ok {
			return r
		}
	}

	return utils.SaturateUint32(entryRate(entry))
}

// entryRate reads the 16.16 fixed-point rate, or the float64 rate of a
// QuickTime version 2 sound description.
func entryRate(entry *gomp4.AudioSampleEntry) float64 {
	// sizeOfStructOnly precedes audioSampleRate.
	if entry.EntryVersion == 2 && len(entry.QuickTimeData) >= 12 {
		return math.Float64frombits(binary.BigEndian.Uint64(entry.QuickTimeData[4:12]))
	}

	return float64(entry.SampleRate) / 65536
}

// audioSpecificConfig returns the decoder specific info of an esds whose
// decoder config announces MPEG-4 audio.
func audioSpecificConfig(esds *gomp4.Esds) ([]byte, bool) {
	if esds == nil {
		return nil, false
	}

	mpeg4Audio := false
	for _, d := range esds.Descriptors {
		switch d.Tag {
		case tagDecoderConfig:
			mpeg4Audio = d.DecoderConfigDescriptor != nil &&
				d.DecoderConfigDescriptor.ObjectTypeIndication == objectTypeMPEG4Audio
		case tagDecoderSpecific:
			if mpeg4Audio && len(d.Data) > 0 {
				return d.Data, true
			}
		}
	}

	return nil, false
}

func ascSampleRate(asc []byte) (uint32, bool) {
	dec := aac.NewDecoder()
	defer dec.Close()

	rate, _, err := dec.SimpleInit2(asc)
	if err != nil || rate == 0 {
		return 0, false
	}

	return rate, true
}
