// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
)

// Ogg page header flags.
const (
	OggContinued = 0x01
	OggBOS       = 0x02
	OggEOS       = 0x04
)

// OggPageParams describes one Ogg page. Packets are laced whole; when
// OpenTail is true the last packet is left unterminated so it continues on
// the next page.
type OggPageParams struct {
	HeaderType byte
	Granule    int64
	Serial     uint32
	Sequence   uint32
	Packets    [][]byte
	OpenTail   bool
}

// OggPage encodes params as an Ogg page with a valid CRC.
func OggPage(params OggPageParams) []byte {
	var lacing, body []byte

	for i, p := range params.Packets {
		n := len(p)
		for n >= 255 {
			lacing = append(lacing, 255)
			n -= 255
		}

		if !(params.OpenTail && i == len(params.Packets)-1) {
			lacing = append(lacing, byte(n))
		} else if n > 0 {
			panic("audiotest: open tail packet length must be a multiple of 255")
		}

		body = append(body, p...)
	}

	return OggRawPage(params.HeaderType, params.Granule, params.Serial, params.Sequence, lacing, body)
}

// OggRawPage encodes a page from an explicit lacing table.
func OggRawPage(headerType byte, granule int64, serial, sequence uint32, lacing, body []byte) []byte {
	page := make([]byte, 27, 27+len(lacing)+len(body))

	copy(page[0:4], "OggS")
	page[4] = 0
	page[5] = headerType
	binary.LittleEndian.PutUint64(page[6:14], uint64(granule))
	binary.LittleEndian.PutUint32(page[14:18], serial)
	binary.LittleEndian.PutUint32(page[18:22], sequence)
	page[26] = byte(len(lacing))

	page = append(page, lacing...)
	page = append(page, body...)

	binary.LittleEndian.PutUint32(page[22:26], oggCRC(page))

	return page
}

var oggCRCTable = func() [256]uint32 {
	var t [256]uint32
	for i := range t {
		r := uint32(i) << 24
		for range 8 {
			if r&0x80000000 != 0 {
				r = r<<1 ^ 0x04C11DB7
			} else {
				r <<= 1
			}
		}
		t[i] = r
	}
	return t
}()

func oggCRC(page []byte) uint32 {
	var crc uint32
	for _, b := range page {
		crc = crc<<8 ^ oggCRCTable[byte(crc>>24)^b]
	}
	return crc
}

// VorbisParams describes a synthetic Ogg/Vorbis stream. The headers are
// structurally valid for metadata parsing but the setup header carries no
// codebooks, so real decoders reject it.
type VorbisParams struct {
	SampleRate uint32
	Channels   int
	// BlockSizes are the short and long block exponents (e.g. 8 and 11).
	BlockSizes [2]uint8
	// ModeFlags holds the blockflag of each mode in the setup header.
	ModeFlags []bool
	// Packets lists the mode number of each audio packet.
	Packets []int
	// FinalGranule is stamped on the last page.
	FinalGranule int64
	Serial       uint32
}

// OggVorbis returns a stream with the three Vorbis headers followed by one
// page per audio packet. The comment header spans two pages.
func OggVorbis(params VorbisParams) []byte {
	ident := VorbisIdentHeader(params.SampleRate, params.Channels, params.BlockSizes)
	comment := VorbisCommentHeader(300)
	setup := VorbisSetupHeader(params.ModeFlags)

	var out []byte
	seq := uint32(0)

	out = append(out, OggPage(OggPageParams{
		HeaderType: OggBOS, Granule: 0, Serial: params.Serial, Sequence: seq,
		Packets: [][]byte{ident},
	})...)
	seq++

	// Split the comment header after its first 255 bytes.
	out = append(out, OggPage(OggPageParams{
		Granule: -1, Serial: params.Serial, Sequence: seq,
		Packets: [][]byte{comment[:255]}, OpenTail: true,
	})...)
	seq++

	out = append(out, OggPage(OggPageParams{
		HeaderType: OggContinued, Granule: 0, Serial: params.Serial, Sequence: seq,
		Packets: [][]byte{comment[255:], setup},
	})...)
	seq++

	for i, mode := range params.Packets {
		// Bit 0 clear marks an audio packet, the mode number follows.
		packet := []byte{byte(mode << 1), 0xA5, 0x5A, 0x00}

		headerType := byte(0)
		granule := int64(-1)
		if i == len(params.Packets)-1 {
			headerType = OggEOS
			granule = params.FinalGranule
		}

		out = append(out, OggPage(OggPageParams{
			HeaderType: headerType, Granule: granule, Serial: params.Serial, Sequence: seq,
			Packets: [][]byte{packet},
		})...)
		seq++
	}

	return out
}

// VorbisIdentHeader builds the identification header packet.
func VorbisIdentHeader(sampleRate uint32, channels int, blockSizes [2]uint8) []byte {
	p := []byte("\x01vorbis")
	p = binary.LittleEndian.AppendUint32(p, 0) // version
	p = append(p, byte(channels))
	p = binary.LittleEndian.AppendUint32(p, sampleRate)
	p = binary.LittleEndian.AppendUint32(p, 0)      // bitrate maximum
	p = binary.LittleEndian.AppendUint32(p, 128000) // bitrate nominal
	p = binary.LittleEndian.AppendUint32(p, 0)      // bitrate minimum
	p = append(p, blockSizes[1]<<4|blockSizes[0]&0x0F)
	p = append(p, 0x01) // framing

	return p
}

// VorbisCommentHeader builds a comment header whose vendor string pads the
// packet to at least size bytes.
func VorbisCommentHeader(size int) []byte {
	vendorLen := max(size-7-4-4-1, 0)

	p := []byte("\x03vorbis")
	p = binary.LittleEndian.AppendUint32(p, uint32(vendorLen))
	for i := range vendorLen {
		p = append(p, 'a'+byte(i%26))
	}
	p = binary.LittleEndian.AppendUint32(p, 0) // user comment count
	p = append(p, 0x01)

	return p
}

// VorbisSetupHeader builds a setup header whose only meaningful section is
// the trailing mode table. The preceding codebook area is filled with 0xFF.
func VorbisSetupHeader(modeFlags []bool) []byte {
	w := &bitWriter{buf: []byte("\x05vorbis")}
	w.buf = append(w.buf, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF)
	w.n = uint(len(w.buf)) * 8

	w.write(uint64(len(modeFlags)-1), 6)
	for _, long := range modeFlags {
		flag := uint64(0)
		if long {
			flag = 1
		}
		w.write(flag, 1)
		w.write(0, 16) // window type
		w.write(0, 16) // transform type
		w.write(0, 8)  // mapping
	}
	w.write(1, 1) // framing

	return w.buf
}

// bitWriter packs values LSB first, the Vorbis bit order.
type bitWriter struct {
	buf []byte
	n   uint
}

func (w *bitWriter) write(v uint64, bits int) {
	for i := range bits {
		if w.n%8 == 0 {
			w.buf = append(w.buf, 0)
		}
		if v>>uint(i)&1 == 1 {
			w.buf[len(w.buf)-1] |= 1 << (w.n % 8)
		}
		w.n++
	}
}
