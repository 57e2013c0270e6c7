// SPDX-License-Identifier: EPL-2.0

// Package mp3 extracts sample rate and frame count from MPEG audio layer III
// buffers using github.com/hajimehoshi/go-mp3.
//
// The buffer must start with an ID3v2 tag or carry a layer III frame header
// within its first 4096 bytes; anything else is rejected with ErrNotMP3File
// before go-mp3 sees it. go-mp3 itself skips whatever precedes the first
// frame.
//
// The sample rate is the one declared by the first audio frame. The frame
// count is derived from the stream duration go-mp3 computes while walking the
// frame headers, rounded with utils.FramesFromSeconds, so it can differ from
// the exact number of decoded samples by encoder padding.
//
// A stream whose headers parse but which carries no audio frame returns
// ErrNoFrames. Both errors let a registry fall through to the next prober.
package mp3
