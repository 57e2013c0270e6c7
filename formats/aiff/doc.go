// SPDX-License-Identifier: EPL-2.0

// Package aiff extracts sample rate and frame count from AIFF and AIFF-C
// (Audio Interchange File Format) buffers.
//
// Unlike the other format packages this one does its own byte-level parsing:
// only the COMM (common) chunk is read, no sound data is touched.
//
// # Locating the Common Chunk
//
// ParseCommon scans the whole buffer, not just its start:
//
//  1. find the first "AIFF" or "AIFC" form type, whichever occurs first
//  2. from there, find the first "COMM" tag
//  3. decode the fixed big-endian fields that follow it
//
// The COMM layout read is:
//
//	"COMM"            4 bytes
//	ckSize            int32
//	numChannels       int16
//	numSampleFrames   uint32
//	sampleSize        int16
//	sampleRate        80-bit IEEE 754 extended precision
//
// AIFF-C appends a compression type and name; those are not needed and
// are ignored.
//
// # Sample Rate
//
// AIFF stores the sample rate as an 80-bit extended float. It is decoded
// with utils.ExtendedToFloat64 and truncated to whole Hz. NaN and negative
// rates become 0, rates above 2^32-1 saturate.
//
// # Probing
//
//	meta, err := aiff.Prober{}.Probe(buf)
//	if err != nil {
//	    // not AIFF, try something else
//	}
//	fmt.Println(meta.SampleRate, meta.SampleLength)
//
// SampleLength is numSampleFrames as declared by the file, unmodified.
//
// # Error Handling
//
//   - ErrChunkNotFound: no form type, or no COMM chunk after it
//   - ErrTruncatedCommon: COMM found but the buffer ends before its sample rate
//
// Both are ordinary probe failures; the dispatcher moves on to the next format.
//
// # File Extensions
//
// AIFF files typically use:
//   - .aif or .aiff for standard AIFF
//   - .aifc for AIFF-C
package aiff
