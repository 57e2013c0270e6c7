// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"strings"
)

// Strategy selects how the total frame count of a stream is obtained.
type Strategy int

const (
	// Granule reads the granule position of the stream's last page.
	// Its cost does not grow with the stream length.
	Granule Strategy = iota
	// Summation walks every audio packet and adds up the samples each one
	// yields, computed from the block sizes and the setup header's modes.
	Summation
	// Decode fully decodes the stream with jfreymuth/oggvorbis and counts
	// the frames produced.
	Decode
)

func (s Strategy) String() string {
	switch s {
	case Granule:
		return "granule"
	case Summation:
		return "summation"
	case Decode:
		return "decode"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// ParseStrategy returns the Strategy named by s, ignoring case.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(s) {
	case "granule":
		return Granule, nil
	case "summation":
		return Summation, nil
	case "decode":
		return Decode, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
	}
}
