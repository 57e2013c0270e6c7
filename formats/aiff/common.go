// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"

	"github.com/ik5/audmeta/utils"
)

var (
	aiffMagic   = []byte("AIFF")
	aifcMagic   = []byte("AIFC")
	commonMagic = []byte("COMM")
)

// commonSize is the tag plus the fixed COMM fields up to the sample rate.
const commonSize = 4 + 4 + 2 + 4 + 2 + 10

// CommonChunk is the fixed part of an AIFF/AIFF-C COMM chunk.
type CommonChunk struct {
	Size        int32
	NumChannels int16
	NumFrames   uint32
	SampleSize  int16
	// SampleRate is the raw 80-bit extended precision value.
	SampleRate [10]byte
}

// Rate decodes the extended precision sample rate.
func (c CommonChunk) Rate() float64 {
	return utils.ExtendedToFloat64(c.SampleRate)
}

// ParseCommon locates the COMM chunk in buf and decodes its fixed fields.
//
// The buffer is scanned for the first "AIFF" or "AIFC" form type anywhere in
// it, then forward from there for the "COMM" tag. Neither has to sit at a
// particular offset or alignment.
func ParseCommon(buf []byte) (CommonChunk, error) {
	form := firstIndex(buf, aiffMagic, aifcMagic)
	if form < 0 {
		return CommonChunk{}, ErrChunkNotFound
	}

	comm := bytes.Index(buf[form:], commonMagic)
	if comm < 0 {
		return CommonChunk{}, ErrChunkNotFound
	}

	d := buf[form+comm:]
	if len(d) < commonSize {
		return CommonChunk{}, ErrTruncatedCommon
	}

	c := CommonChunk{
		Size:        int32(binary.BigEndian.Uint32(d[4:8])),
		NumChannels: int16(binary.BigEndian.Uint16(d[8:10])),
		NumFrames:   binary.BigEndian.Uint32(d[10:14]),
		SampleSize:  int16(binary.BigEndian.Uint16(d[14:16])),
	}
	copy(c.SampleRate[:], d[16:26])

	return c, nil
}

// firstIndex returns the lowest offset at which any of seps occurs, or -1.
func firstIndex(buf []byte, seps ...[]byte) int {
	first := -1
	for _, sep := range seps {
		i := bytes.Index(buf, sep)
		if i >= 0 && (first < 0 || i < first) {
			first = i
		}
	}
	return first
}
