// SPDX-License-Identifier: EPL-2.0

// Package flac extracts sample rate and frame count from FLAC buffers using
// the STREAMINFO block, read with github.com/mewkiz/flac.
//
// Only STREAMINFO is parsed; Vorbis comments, pictures and seek tables are
// skipped, and no audio frame is decoded.
//
// STREAMINFO's total sample count is optional in the format. When it is 0
// (unknown) the probe still succeeds and reports a SampleLength of 0.
// Counts above 2^32-1 saturate.
//
// ErrNotFlacFile is returned when the buffer lacks the "fLaC" signature or
// its STREAMINFO block cannot be read.
package flac
