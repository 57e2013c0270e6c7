// SPDX-License-Identifier: EPL-2.0

package ogg

import (
	"bytes"
	"encoding/binary"
	"io"
)

var captureMagic = []byte("OggS")

// Page header type flags.
const (
	FlagContinued = 0x01
	FlagBOS       = 0x02
	FlagEOS       = 0x04
)

const headerSize = 27

// Page is one parsed Ogg page. Lacing and Body alias the source buffer.
type Page struct {
	HeaderType byte
	// Granule is the absolute granule position; -1 means no packet ends on
	// this page.
	Granule  int64
	Serial   uint32
	Sequence uint32
	Lacing   []byte
	Body     []byte
	// Offset of the page in the source buffer and its total size.
	Offset int
	Size   int
}

func (p Page) Continued() bool { return p.HeaderType&FlagContinued != 0 }
func (p Page) BOS() bool       { return p.HeaderType&FlagBOS != 0 }
func (p Page) EOS() bool       { return p.HeaderType&FlagEOS != 0 }

// ParsePage decodes the page starting at buf[0] and verifies its checksum.
func ParsePage(buf []byte) (Page, error) {
	if len(buf) < 4 || !bytes.Equal(buf[:4], captureMagic) {
		return Page{}, ErrCapture
	}

	if len(buf) < headerSize {
		return Page{}, ErrTruncated
	}

	if buf[4] != 0 {
		return Page{}, ErrVersion
	}

	nseg := int(buf[26])
	if len(buf) < headerSize+nseg {
		return Page{}, ErrTruncated
	}

	lacing := buf[headerSize : headerSize+nseg : headerSize+nseg]

	bodyLen := 0
	for _, l := range lacing {
		bodyLen += int(l)
	}

	size := headerSize + nseg + bodyLen
	if len(buf) < size {
		return Page{}, ErrTruncated
	}

	if binary.LittleEndian.Uint32(buf[22:26]) != pageChecksum(buf[:size]) {
		return Page{}, ErrBadChecksum
	}

	return Page{
		HeaderType: buf[5],
		Granule:    int64(binary.LittleEndian.Uint64(buf[6:14])),
		Serial:     binary.LittleEndian.Uint32(buf[14:18]),
		Sequence:   binary.LittleEndian.Uint32(buf[18:22]),
		Lacing:     lacing,
		Body:       buf[headerSize+nseg : size : size],
		Size:       size,
	}, nil
}

// Reader iterates over consecutive pages of a buffer.
type Reader struct {
	buf []byte
	off int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Next returns the page at the current position. It returns io.EOF once the
// whole buffer has been consumed.
func (r *Reader) Next() (Page, error) {
	if r.off >= len(r.buf) {
		return Page{}, io.EOF
	}

	p, err := ParsePage(r.buf[r.off:])
	if err != nil {
		return Page{}, err
	}

	p.Offset = r.off
	r.off += p.Size

	return p, nil
}
