// SPDX-License-Identifier: EPL-2.0

// Package vorbis extracts sample rate and frame count from Ogg/Vorbis
// buffers.
//
// The buffer must start with an Ogg page. The first logical stream whose
// first packet is a Vorbis identification header is used; other streams
// multiplexed alongside it are ignored. The sample rate always comes from
// that identification header.
//
// # Length Strategies
//
// The frame count can be obtained three ways, chosen with Prober.Strategy:
//
//   - Granule (default): the absolute granule position of the last page,
//     read with oggvorbis.GetLength from github.com/jfreymuth/oggvorbis. The
//     buffer is searched backwards from its end, so the cost is independent
//     of the stream length. It relies on the encoder having stamped the
//     final page correctly, and reports the trimmed length when the encoder
//     used end trimming. When no final page can be read the probe fails with
//     ErrNoGranule.
//
//   - Summation: every audio packet is visited and the samples it yields are
//     added up. A packet's block size follows from its mode number, the
//     setup header's mode table and the two block sizes of the
//     identification header. Each packet after the first yields
//     previous/4 + current/4 samples. Cost is linear in the number of
//     packets. A cut or damaged tail stops the walk without failing.
//
//   - Decode: the stream is fully decoded with github.com/jfreymuth/oggvorbis
//     and the produced frames are counted. This is the slowest and serves as
//     a reference.
//
// Granule and Summation agree on well-formed streams without end trimming;
// they can disagree on damaged ones.
//
// # Usage
//
//	p := vorbis.Prober{Strategy: vorbis.Summation}
//	meta, err := p.Probe(buf)
//	if err != nil {
//	    // not Ogg/Vorbis
//	}
//
// # Error Handling
//
//   - ErrNotOgg: the buffer does not start with a readable Ogg page
//   - ErrNotVorbis: no Vorbis stream, or an invalid identification header
//   - ErrBadSetupHeader: the mode table could not be located (Summation only)
//   - ErrUnknownStrategy: Prober.Strategy is not one of the defined values
package vorbis
