// SPDX-License-Identifier: EPL-2.0

// Package audio provides the core types shared by every format probe.
//
// This package contains:
//   - Metadata, the sample rate and frame count extracted from a buffer
//   - Format, the container identifiers
//   - Prober, the capability each format package implements
//   - Registry, the ordered prober list that dispatches a buffer
//
// # Probers
//
// A Prober looks at a complete in-memory file and either recognizes its
// container or fails:
//
//	type Prober interface {
//	    Format() Format
//	    Probe(buf []byte) (Metadata, error)
//	}
//
// Probers never modify the buffer and keep no state between calls.
//
// # Dispatch
//
// The Registry tries probers in registration order and stops at the first
// success:
//
//	registry := audio.NewRegistry()
//	registry.Register(wav.Prober{})
//	registry.Register(mp3.Prober{})
//	format, meta, err := registry.Probe(buf)
//
// A failing prober normally lets the next one run. A prober may instead fail
// with an error wrapping ErrAbort, which ends the dispatch at once. When every
// prober fails, Probe returns ErrUnrecognized.
//
// Panics raised by a prober (usually from a third-party decoder fed hostile
// input) are recovered and reported as ErrProberPanic, and dispatch continues.
//
// # Logging
//
// Probe attempts are traced through github.com/pion/logging under the scope
// "audmeta/audio". The default level is Error, so nothing is printed unless
// enabled, e.g. with PION_LOG_DEBUG=audmeta/audio.
package audio
