// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

var (
	identMagic   = []byte("\x01vorbis")
	commentMagic = []byte("\x03vorbis")
	setupMagic   = []byte("\x05vorbis")
)

const identSize = 30

type identHeader struct {
	channels   uint8
	sampleRate uint32
	// blockSizes holds the short and long block sizes in samples.
	blockSizes [2]int
}

func parseIdent(p []byte) (identHeader, error) {
	if len(p) < identSize || !bytes.HasPrefix(p, identMagic) {
		return identHeader{}, ErrNotVorbis
	}

	if v := binary.LittleEndian.Uint32(p[7:11]); v != 0 {
		return identHeader{}, fmt.Errorf("%w: version %d", ErrNotVorbis, v)
	}

	h := identHeader{
		channels:   p[11],
		sampleRate: binary.LittleEndian.Uint32(p[12:16]),
	}

	bs0, bs1 := p[28]&0x0F, p[28]>>4
	if bs0 < 6 || bs1 > 13 || bs0 > bs1 {
		return identHeader{}, fmt.Errorf("%w: block sizes 2^%d/2^%d", ErrNotVorbis, bs0, bs1)
	}
	h.blockSizes = [2]int{1 << bs0, 1 << bs1}

	if h.channels == 0 || h.sampleRate == 0 || p[29]&1 == 0 {
		return identHeader{}, ErrNotVorbis
	}

	return h, nil
}

// parseModes returns the blockflag of every mode in a setup header.
//
// Codebooks, floors and residues are variable length and would need a
// full parse to skip. The mode table however sits at the very end of the
// packet, just before the framing bit, and every entry has the fixed shape
// blockflag(1) windowtype(16) transformtype(16) mapping(8) with both types
// zero. The packet is therefore read backwards until an entry no longer
// fits that shape, and the mode count is the last one for which the 6 bit
// count field in front of the table agrees.
func parseModes(p []byte) ([]bool, error) {
	if !bytes.HasPrefix(p, setupMagic) {
		return nil, ErrBadSetupHeader
	}

	r := revBitReader{buf: p}

	framing := -1
	for r.left() > 97 {
		if r.bit() == 1 {
			framing = r.pos
			break
		}
	}

	if framing < 0 {
		return nil, fmt.Errorf("%w: no framing bit", ErrBadSetupHeader)
	}

	count, last := 0, 0
	for r.left() >= 97 {
		if r.bits(8) > 63 || r.bits(16) != 0 || r.bits(16) != 0 {
			break
		}

		r.skip(1)
		count++
		if count > 64 {
			break
		}

		peek := r
		if int(peek.bits(6))+1 == count {
			last = count
		}
	}

	if last == 0 {
		return nil, fmt.Errorf("%w: mode table not found", ErrBadSetupHeader)
	}

	r = revBitReader{buf: p, pos: framing}
	flags := make([]bool, last)
	for i := last - 1; i >= 0; i-- {
		r.skip(40)
		flags[i] = r.bit() == 1
	}

	return flags, nil
}

// revBitReader reads a Vorbis (LSB first) bitstream from its end towards
// its start. Values come out with their most significant bit first.
type revBitReader struct {
	buf []byte
	pos int
}

func (r *revBitReader) left() int { return len(r.buf)*8 - r.pos }

func (r *revBitReader) bit() uint32 {
	b := r.buf[len(r.buf)-1-r.pos/8]
	v := b >> (7 - uint(r.pos%8)) & 1
	r.pos++
	return uint32(v)
}

func (r *revBitReader) bits(n int) uint32 {
	var v uint32
	for range n {
		v = v<<1 | r.bit()
	}
	return v
}

func (r *revBitReader) skip(n int) { r.pos += n }
