// SPDX-License-Identifier: EPL-2.0

package mp4

import "errors"

var (
	ErrNotMP4File = errors.New("not an MP4 file")
	ErrNoMovie    = errors.New("MP4 movie box not found")
	ErrMalformed  = errors.New("malformed MP4 box structure")
	// ErrIncomplete reports a movie without a sample rate or duration. Unless
	// the Prober falls through, it is returned joined with audio.ErrAbort.
	ErrIncomplete = errors.New("MP4 movie lacks sample rate or duration")
)
