// SPDX-License-Identifier: EPL-2.0

// Package mp4 extracts sample rate and an approximate frame count from
// MP4/M4A buffers.
//
// A buffer is recognized as MP4 when its first box is "ftyp". The box tree
// is walked with github.com/abema/go-mp4 up to the first moov box, which is
// then read:
//
//   - sample rate: from the first track whose handler is "soun". The
//     AudioSpecificConfig inside the mp4a sample entry's esds box is decoded
//     with github.com/llehouerou/go-aac; when it is absent or not decodable
//     the rate of the sample entry itself is used (16.16 fixed point, or the
//     float64 rate of a QuickTime version 2 sound description).
//   - duration: mvhd timescale and duration, or the sound track's mdhd when
//     the movie header is missing.
//
// SampleLength is round(duration in seconds * sample rate); MP4 does not
// expose an exact frame count in its headers.
//
// Boxes after moov are never read, so a cut or damaged mdat does not matter.
//
// # Incomplete Movies
//
// A buffer with a moov box but no usable sample rate or duration is
// reported with ErrIncomplete joined with audio.ErrAbort, which stops the
// whole format detection. Prober.FallThrough turns this into an ordinary
// failure so later formats are still tried:
//
//	strict := mp4.Prober{}
//	lenient := mp4.Prober{FallThrough: true}
//
// A missing moov box (ErrNoMovie, wrapping ErrMalformed when the box tree
// could not be walked) and a non-MP4 buffer (ErrNotMP4File) are always
// ordinary failures.
package mp4
