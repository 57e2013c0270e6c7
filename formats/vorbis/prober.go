// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math/bits"

	"github.com/ik5/audmeta/audio"
	"github.com/ik5/audmeta/internal/ogg"
	"github.com/ik5/audmeta/utils"
	"github.com/jfreymuth/oggvorbis"
)

var oggMagic = []byte("OggS")

// vorbisReader is the part of oggvorbis.Reader used by the Decode strategy.
type vorbisReader interface {
	SampleRate() int
	Channels() int
	Read([]float32) (int, error)
}

// oggLastGranule reports the granule position of the last page, as stamped by
// the encoder.
func oggLastGranule(r io.ReadSeeker) (int64, error) {
	length, _, err := oggvorbis.GetLength(r)
	return length, err
}

func newOggVorbisReader(r io.Reader) (vorbisReader, error) {
	dec, err := oggvorbis.NewReader(r)
	if err != nil {
		return nil, err
	}
	return dec, nil
}

// Prober extracts metadata from the first Vorbis logical stream of an Ogg
// buffer. The sample rate comes from the identification header; the frame
// count is obtained according to Strategy.
type Prober struct {
	Strategy Strategy

	newReader   func(io.Reader) (vorbisReader, error)
	lastGranule func(io.ReadSeeker) (int64, error)
}

func (Prober) Format() audio.Format { return audio.Vorbis }

func (p Prober) Probe(buf []byte) (audio.Metadata, error) {
	if !bytes.HasPrefix(buf, oggMagic) {
		return audio.Metadata{}, ErrNotOgg
	}

	packets := ogg.NewPacketReader(buf)

	ident, serial, err := findIdent(packets)
	if err != nil {
		return audio.Metadata{}, err
	}

	switch p.Strategy {
	case Granule:
		return p.granuleLength(buf, ident)
	case Summation:
		return summedLength(packets, ident, serial)
	case Decode:
		return p.decodedLength(buf)
	default:
		return audio.Metadata{}, fmt.Errorf("%w: %s", ErrUnknownStrategy, p.Strategy)
	}
}

// findIdent looks for a Vorbis identification header among the first
// packets of the streams starting at the head of the buffer.
func findIdent(packets *ogg.PacketReader) (identHeader, uint32, error) {
	for {
		pkt, err := packets.Next()
		if errors.Is(err, io.EOF) {
			return identHeader{}, 0, ErrNotVorbis
		}
		if err != nil {
			return identHeader{}, 0, fmt.Errorf("%w: %w", ErrNotOgg, err)
		}

		if !pkt.First {
			// All beginning-of-stream pages precede any data page.
			return identHeader{}, 0, ErrNotVorbis
		}

		if !bytes.HasPrefix(pkt.Data, identMagic) {
			continue
		}

		ident, err := parseIdent(pkt.Data)
		if err != nil {
			return identHeader{}, 0, err
		}

		return ident, pkt.Serial, nil
	}
}

func (p Prober) granuleLength(buf []byte, ident identHeader) (audio.Metadata, error) {
	lastGranule := p.lastGranule
	if lastGranule == nil {
		lastGranule = oggLastGranule
	}

	g, err := lastGranule(bytes.NewReader(buf))
	if err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNoGranule, err)
	}

	meta := audio.Metadata{SampleRate: ident.sampleRate}

	// -1 marks a page on which no packet ends.
	if g > 0 {
		meta.SampleLength = utils.ClampUint32(uint64(g))
	}

	return meta, nil
}

func summedLength(packets *ogg.PacketReader, ident identHeader, serial uint32) (audio.Metadata, error) {
	next := func() (ogg.Packet, error) {
		for {
			pkt, err := packets.Next()
			if err != nil || pkt.Serial == serial {
				return pkt, err
			}
		}
	}

	comment, err := next()
	if err != nil || !bytes.HasPrefix(comment.Data, commentMagic) {
		return audio.Metadata{}, fmt.Errorf("%w: missing comment header", ErrNotVorbis)
	}

	setup, err := next()
	if err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrBadSetupHeader, err)
	}

	modes, err := parseModes(setup.Data)
	if err != nil {
		return audio.Metadata{}, err
	}

	modeBits := bits.Len(uint(len(modes) - 1))
	modeMask := 1<<modeBits - 1

	var total uint64
	prev := 0

	for {
		// A cut or damaged tail ends the walk; what was counted so far stands.
		pkt, err := next()
		if err != nil {
			break
		}

		if len(pkt.Data) > 0 && pkt.Data[0]&1 == 0 {
			mode := int(pkt.Data[0]>>1) & modeMask
			if mode < len(modes) {
				cur := ident.blockSizes[0]
				if modes[mode] {
					cur = ident.blockSizes[1]
				}

				// The first audio packet only primes the overlap.
				if prev != 0 {
					total += uint64(prev/4 + cur/4)
				}
				prev = cur
			}
		}

		if pkt.Last {
			break
		}
	}

	return audio.Metadata{
		SampleRate:   ident.sampleRate,
		SampleLength: utils.ClampUint32(total),
	}, nil
}

func (p Prober) decodedLength(buf []byte) (audio.Metadata, error) {
	newReader := p.newReader
	if newReader == nil {
		newReader = newOggVorbisReader
	}

	dec, err := newReader(bytes.NewReader(buf))
	if err != nil {
		return audio.Metadata{}, fmt.Errorf("%w: %w", ErrNotVorbis, err)
	}

	channels := dec.Channels()
	if channels <= 0 {
		return audio.Metadata{}, fmt.Errorf("%w: %d channels", ErrNotVorbis, channels)
	}

	pcm := make([]float32, 4096*channels)

	var values uint64
	for {
		n, err := dec.Read(pcm)
		values += uint64(n)

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return audio.Metadata{}, fmt.Errorf("decoding vorbis: %w", err)
		}
		if n == 0 {
			break
		}
	}

	return audio.Metadata{
		SampleRate:   utils.SaturateUint32(float64(dec.SampleRate())),
		SampleLength: utils.ClampUint32(values / uint64(channels)),
	}, nil
}
