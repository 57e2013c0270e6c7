// SPDX-License-Identifier: EPL-2.0

package mp4

import (
	"errors"
	"io"

	gomp4 "github.com/abema/go-mp4"
)

var soundHandler = [4]byte{'s', 'o', 'u', 'n'}

// errMovieFound stops the top-level walk once moov has been seen, so
// whatever follows it (usually mdat, possibly cut short) is never read.
var errMovieFound = errors.New("movie found")

// findMovie returns the first top-level moov box. The error of the walk is
// only meaningful when no moov was found.
func findMovie(r io.ReadSeeker) (*gomp4.BoxInfo, error) {
	var moov *gomp4.BoxInfo

	_, err := gomp4.ReadBoxStructure(r, func(h *gomp4.ReadHandle) (any, error) {
		if h.BoxInfo.Type != gomp4.BoxTypeMoov() {
			return nil, nil
		}

		info := h.BoxInfo
		moov = &info

		return nil, errMovieFound
	})

	if moov != nil {
		return moov, nil
	}

	return nil, err
}

// timeHeader holds the timescale and duration of an mvhd or mdhd box.
type timeHeader struct {
	timescale uint32
	duration  uint64
}

func (h timeHeader) seconds() float64 {
	return float64(h.duration) / float64(h.timescale)
}

func movieTime(mvhd *gomp4.Mvhd) (timeHeader, bool) {
	h := timeHeader{timescale: mvhd.Timescale, duration: uint64(mvhd.DurationV0)}
	if mvhd.GetVersion() == 1 {
		h.duration = mvhd.DurationV1
	}
	return h, h.timescale != 0
}

func mediaTime(mdhd *gomp4.Mdhd) (timeHeader, bool) {
	h := timeHeader{timescale: mdhd.Timescale, duration: uint64(mdhd.DurationV0)}
	if mdhd.GetVersion() == 1 {
		h.duration = mdhd.DurationV1
	}
	return h, h.timescale != 0
}

// readMovie returns the sound track's sample rate (0 when unknown) and the
// movie duration (nil when unknown).
func readMovie(r io.ReadSeeker, moov *gomp4.BoxInfo) (uint32, *timeHeader) {
	var duration *timeHeader

	mvhds, err := gomp4.ExtractBoxWithPayload(r, moov, gomp4.BoxPath{gomp4.BoxTypeMvhd()})
	if err == nil && len(mvhds) > 0 {
		if mvhd, ok := mvhds[0].Payload.(*gomp4.Mvhd); ok {
			if h, ok := movieTime(mvhd); ok {
				duration = &h
			}
		}
	}

	traks, err := gomp4.ExtractBox(r, moov, gomp4.BoxPath{gomp4.BoxTypeTrak()})
	if err != nil {
		return 0, duration
	}

	for _, trak := range traks {
		track, ok := readSoundTrack(r, trak)
		if !ok {
			continue
		}

		if duration == nil {
			duration = track.duration
		}

		return track.rate(), duration
	}

	return 0, duration
}

var soundTrackPaths = []gomp4.BoxPath{
	{gomp4.BoxTypeMdia(), gomp4.BoxTypeHdlr()},
	{gomp4.BoxTypeMdia(), gomp4.BoxTypeMdhd()},
	{gomp4.BoxTypeMdia(), gomp4.BoxTypeMinf(), gomp4.BoxTypeStbl(), gomp4.BoxTypeStsd(), gomp4.BoxTypeMp4a()},
	{gomp4.BoxTypeMdia(), gomp4.BoxTypeMinf(), gomp4.BoxTypeStbl(), gomp4.BoxTypeStsd(), gomp4.BoxTypeMp4a(), gomp4.BoxTypeEsds()},
}

// soundTrack is what a trak with a sound handler contributes.
type soundTrack struct {
	duration *timeHeader
	entry    *gomp4.AudioSampleEntry
	esds     *gomp4.Esds
}

func (t soundTrack) rate() uint32 {
	if t.entry == nil {
		return 0
	}
	return sampleRate(t.entry, t.esds)
}

func readSoundTrack(r io.ReadSeeker, trak *gomp4.BoxInfo) (soundTrack, bool) {
	boxes, err := gomp4.ExtractBoxesWithPayload(r, trak, soundTrackPaths)
	if err != nil {
		return soundTrack{}, false
	}

	var (
		track soundTrack
		sound bool
	)

	for _, b := range boxes {
		switch box := b.Payload.(type) {
		case *gomp4.Hdlr:
			sound = box.HandlerType == soundHandler
		case *gomp4.Mdhd:
			if h, ok := mediaTime(box); ok && track.duration == nil {
				track.duration = &h
			}
		case *gomp4.AudioSampleEntry:
			if track.entry == nil {
				track.entry = box
			}
		case *gomp4.Esds:
			if track.esds == nil {
				track.esds = box
			}
		}
	}

	return track, sound
}
