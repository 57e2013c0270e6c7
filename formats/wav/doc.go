// SPDX-License-Identifier: EPL-2.0

// Package wav extracts sample rate and frame count from RIFF/WAVE buffers.
//
// Header parsing is delegated to github.com/go-audio/wav. No sample data
// is decoded; the decoder is only advanced to the start of the data chunk.
//
// # Probing
//
//	meta, err := wav.Prober{}.Probe(buf)
//	if err != nil {
//	    // not a WAV file
//	}
//
// Both values are exact:
//   - SampleRate comes straight from the fmt chunk
//   - SampleLength is the data chunk size divided by the block alignment
//     (channels * bytes per sample)
//
// Chunks before fmt or between fmt and data (JUNK, LIST, fact, ...) are
// skipped. Any PCM bit depth and channel count is accepted.
//
// # Error Handling
//
//   - ErrNotWavFile: no RIFF/WAVE signature, or the fmt chunk is missing or unreadable
//   - ErrNoPCMData: the fmt chunk was read but no data chunk follows
//
// Example:
//
//	_, err := wav.Prober{}.Probe(buf)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    fmt.Println("Not a WAV file")
//	}
//
// # File Format
//
// WAV files consist of:
//   - RIFF header (12 bytes): "RIFF", size, "WAVE"
//   - fmt chunk: audio format, channels, sample rate, block alignment, bit depth
//   - data chunk: the samples
package wav
