// SPDX-License-Identifier: EPL-2.0

package audiotest

import (
	"encoding/binary"
)

// MP4Params describes a minimal single-track audio MP4.
type MP4Params struct {
	// Movie header; a zero Timescale omits mvhd.
	Timescale uint32
	Duration  uint64
	Version1  bool

	// Media header of the sound track; a zero MediaTimescale omits mdhd.
	MediaTimescale uint32
	MediaDuration  uint64

	// SampleRate is written to the 16.16 field of the sample entry.
	SampleRate uint32
	// ASC is the AudioSpecificConfig carried in esds; nil omits esds.
	ASC []byte
	// LongDescriptorLengths encodes descriptor sizes in the 4-byte form.
	LongDescriptorLengths bool

	// Handler of the track, "soun" when empty.
	Handler string
	// OmitMoov writes only ftyp and mdat.
	OmitMoov bool
}

// MP4 returns ftyp, moov and a small mdat.
func MP4(params MP4Params) []byte {
	ftyp := Atom("ftyp", []byte("M4A "), be32(0x200), []byte("M4A isomiso2"))
	mdat := Atom("mdat", make([]byte, 16))

	if params.OmitMoov {
		return concat(ftyp, mdat)
	}

	var moovChildren [][]byte
	if params.Timescale != 0 {
		moovChildren = append(moovChildren, mvhd(params))
	}
	moovChildren = append(moovChildren, trak(params))

	return concat(ftyp, Atom("moov", moovChildren...), mdat)
}

// Atom frames the concatenated payloads as an MP4 box.
func Atom(typ string, payloads ...[]byte) []byte {
	body := concat(payloads...)
	out := binary.BigEndian.AppendUint32(nil, uint32(8+len(body)))
	out = append(out, typ...)
	return append(out, body...)
}

func mvhd(params MP4Params) []byte {
	var p []byte
	if params.Version1 {
		p = append(p, 1, 0, 0, 0)
		p = binary.BigEndian.AppendUint64(p, 0) // creation
		p = binary.BigEndian.AppendUint64(p, 0) // modification
		p = binary.BigEndian.AppendUint32(p, params.Timescale)
		p = binary.BigEndian.AppendUint64(p, params.Duration)
	} else {
		p = append(p, 0, 0, 0, 0)
		p = binary.BigEndian.AppendUint32(p, 0)
		p = binary.BigEndian.AppendUint32(p, 0)
		p = binary.BigEndian.AppendUint32(p, params.Timescale)
		p = binary.BigEndian.AppendUint32(p, uint32(params.Duration))
	}
	p = binary.BigEndian.AppendUint32(p, 0x00010000) // rate
	p = binary.BigEndian.AppendUint16(p, 0x0100)     // volume
	p = append(p, make([]byte, 10)...)               // reserved
	p = append(p, make([]byte, 36)...)               // matrix
	p = append(p, make([]byte, 24)...)               // pre_defined
	p = binary.BigEndian.AppendUint32(p, 2)          // next track id

	return Atom("mvhd", p)
}

func trak(params MP4Params) []byte {
	handler := params.Handler
	if handler == "" {
		handler = "soun"
	}

	hdlr := Atom("hdlr", be32(0), be32(0), []byte(handler), make([]byte, 12), []byte("SoundHandler\x00"))

	var mdiaChildren [][]byte
	if params.MediaTimescale != 0 {
		p := []byte{0, 0, 0, 0}
		p = binary.BigEndian.AppendUint32(p, 0)
		p = binary.BigEndian.AppendUint32(p, 0)
		p = binary.BigEndian.AppendUint32(p, params.MediaTimescale)
		p = binary.BigEndian.AppendUint32(p, uint32(params.MediaDuration))
		p = append(p, 0x55, 0xC4, 0, 0) // language "und", pre_defined
		mdiaChildren = append(mdiaChildren, Atom("mdhd", p))
	}
	mdiaChildren = append(mdiaChildren, hdlr)

	entry := []byte{0, 0, 0, 0, 0, 0, 0, 1}   // reserved, data reference index
	entry = append(entry, make([]byte, 8)...) // version, revision, vendor
	entry = binary.BigEndian.AppendUint16(entry, 2)
	entry = binary.BigEndian.AppendUint16(entry, 16)
	entry = append(entry, 0, 0, 0, 0) // compression id, packet size
	entry = binary.BigEndian.AppendUint32(entry, params.SampleRate<<16)
	if params.ASC != nil {
		entry = append(entry, esds(params.ASC, params.LongDescriptorLengths)...)
	}

	stsd := Atom("stsd", be32(0), be32(1), Atom("mp4a", entry))
	stbl := Atom("stbl", stsd)
	minf := Atom("minf", stbl)
	mdiaChildren = append(mdiaChildren, minf)

	tkhd := Atom("tkhd", make([]byte, 84))

	return Atom("trak", tkhd, Atom("mdia", mdiaChildren...))
}

func esds(asc []byte, long bool) []byte {
	dsi := descriptor(0x05, asc, long)

	dcd := []byte{0x40, 0x15, 0, 0, 0}
	dcd = binary.BigEndian.AppendUint32(dcd, 128000)
	dcd = binary.BigEndian.AppendUint32(dcd, 128000)
	dcd = append(dcd, dsi...)

	es := []byte{0, 1, 0} // ES_ID, flags
	es = append(es, descriptor(0x04, dcd, long)...)
	es = append(es, descriptor(0x06, []byte{0x02}, long)...)

	return Atom("esds", be32(0), descriptor(0x03, es, long))
}

func descriptor(tag byte, body []byte, long bool) []byte {
	out := []byte{tag}
	n := len(body)
	if long {
		out = append(out, 0x80|byte(n>>21)&0x7F, 0x80|byte(n>>14)&0x7F, 0x80|byte(n>>7)&0x7F, byte(n)&0x7F)
	} else {
		out = append(out, byte(n))
	}
	return append(out, body...)
}

func be32(v uint32) []byte {
	return binary.BigEndian.AppendUint32(nil, v)
}

func concat(parts ...[]byte) []byte {
	var out []byte
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
