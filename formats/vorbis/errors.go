// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	ErrNotOgg          = errors.New("not an Ogg stream")
	ErrNotVorbis       = errors.New("no Vorbis stream found")
	ErrBadSetupHeader  = errors.New("malformed Vorbis setup header")
	ErrUnknownStrategy = errors.New("unknown length strategy")
	ErrNoGranule       = errors.New("Ogg Vorbis last granule position not readable")
)
