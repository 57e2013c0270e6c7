// SPDX-License-Identifier: EPL-2.0

package utils

import "math"

// SaturateUint32 converts f to uint32 the way a saturating cast does:
// NaN and negative values become 0, values above math.MaxUint32 clamp to it,
// everything else is truncated toward zero.
func SaturateUint32(f float64) uint32 {
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= math.MaxUint32:
		return math.MaxUint32
	}

	return uint32(f)
}

// ClampUint32 narrows a frame count that may not fit in 32 bits.
func ClampUint32(n uint64) uint32 {
	if n > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(n)
}

// FramesFromSeconds approximates a frame count from a duration and a sample
// rate: round(seconds * sampleRate).
//
// Used by containers that only expose a duration, so the result can be off by
// a frame or so from the true length.
func FramesFromSeconds(seconds float64, sampleRate uint32) uint32 {
	return SaturateUint32(math.Round(seconds * float64(sampleRate)))
}
