// SPDX-License-Identifier: EPL-2.0

// Package audmeta reads the sample rate and length of an audio file without
// decoding its audio.
//
// The whole file is handed over as a byte slice. Each supported container is
// probed in a fixed order and the first one that recognizes the buffer wins.
//
// # Supported Formats
//
// Probes run in this order:
//   - WAV via formats/wav
//   - Ogg Vorbis via formats/vorbis
//   - FLAC via formats/flac
//   - MP4/M4A via formats/mp4
//   - AIFF and AIFF-C via formats/aiff
//   - MP3 via formats/mp3
//
// # Quick Start
//
//	buf, _ := os.ReadFile("audio.flac")
//	meta, ok := audmeta.ReadMetadata(buf)
//	if !ok {
//	    // not a supported audio file
//	}
//
//	fmt.Println(meta.SampleRate, meta.SampleLength, meta.Duration())
//
// SampleRate is in Hz and SampleLength is a count of sample frames (samples
// per channel), so a one second stereo file at 44.1kHz has a SampleLength of
// 44100.
//
// # Detecting The Format
//
// Detect also reports the matched format and accepts options:
//
//	format, meta, err := audmeta.Detect(buf,
//	    audmeta.WithOggStrategy(vorbis.Summation),
//	    audmeta.WithMP4FallThrough(),
//	)
//	if errors.Is(err, audio.ErrUnrecognized) {
//	    // no prober matched
//	}
//
// # Accuracy
//
// WAV, FLAC and AIFF report exact frame counts from their headers. Ogg Vorbis
// is exact with the default granule strategy on well-formed streams. MP4 and
// MP3 only expose a duration, which is converted back to frames by rounding
// duration * sample rate.
//
// # MP4 Files Without Duration
//
// An MP4 file whose movie box lacks a duration or sample rate stops the
// dispatch: no later prober runs and the result is absent. Use
// WithMP4FallThrough to let AIFF and MP3 be tried instead.
//
// # Custom Registries
//
// NewRegistry returns the default prober list as an audio.Registry, so
// callers can replace or add probers:
//
//	reg := audmeta.NewRegistry()
//	reg.Register(myProber{})
//	format, meta, err := reg.Probe(buf)
//
// # Thread Safety
//
// ReadMetadata, Detect and a Registry may be used from multiple goroutines.
package audmeta
