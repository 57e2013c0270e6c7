// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"bytes"
	"encoding/binary"

	"github.com/ik5/audmeta/utils"
)

// AIFFParams describes an AIFF or AIFF-C file.
type AIFFParams struct {
	SampleRate float64
	Channels   int
	BitDepth   int
	Frames     uint32
	// Compressed writes an AIFC form with an FVER chunk and a "NONE"
	// compression type.
	Compressed bool
	// OmitSound leaves out the SSND chunk so large frame counts stay cheap.
	OmitSound bool
}

// AIFF returns a FORM/AIFF (or FORM/AIFC) file with a COMM chunk and silent
// sound data.
func AIFF(params AIFFParams) []byte {
	var body bytes.Buffer

	if params.Compressed {
		body.WriteString("AIFC")
		body.Write(Chunk("FVER", be32(0xA2805140)))
	} else {
		body.WriteString("AIFF")
	}

	body.Write(Chunk("COMM", CommonChunk(params)))

	if !params.OmitSound {
		frameSize := params.Channels * ((params.BitDepth + 7) / 8)
		ssnd := make([]byte, 8+int(params.Frames)*frameSize)
		body.Write(Chunk("SSND", ssnd))
	}

	return Chunk("FORM", body.Bytes())
}

// CommonChunk returns the body of a COMM chunk (without tag and size).
func CommonChunk(params AIFFParams) []byte {
	var comm bytes.Buffer

	binary.Write(&comm, binary.BigEndian, int16(params.Channels))
	binary.Write(&comm, binary.BigEndian, params.Frames)
	binary.Write(&comm, binary.BigEndian, int16(params.BitDepth))

	rate := utils.Float64ToExtended(params.SampleRate)
	comm.Write(rate[:])

	if params.Compressed {
		comm.WriteString("NONE")
		name := "not compressed"
		comm.WriteByte(byte(len(name)))
		comm.WriteString(name)
		if (len(name)+1)%2 != 0 {
			comm.WriteByte(0)
		}
	}

	return comm.Bytes()
}

// Chunk frames body as an IFF chunk: 4-byte id, big-endian size, body and a
// pad byte when the size is odd.
func Chunk(id string, body []byte) []byte {
	out := make([]byte, 0, 8+len(body)+1)
	out = append(out, id...)
	out = binary.BigEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, body...)
	if len(body)%2 != 0 {
		out = append(out, 0)
	}
	return out
}
