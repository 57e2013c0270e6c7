// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"
	"math"
)

const (
	extendedBias    = 16383
	extendedMaxExp  = 0x7FFF
	mantissaBits    = 63
	extendedSignBit = 0x80
)

// ExtendedToFloat64 converts a big-endian IEEE 754 80-bit extended precision
// value (1 sign bit, 15-bit biased exponent, 64-bit mantissa with an explicit
// integer bit) into a float64.
//
// Precision beyond 53 mantissa bits is rounded away. Values outside the
// float64 range become ±Inf or ±0.
func ExtendedToFloat64(b [10]byte) float64 {
	negative := b[0]&extendedSignBit != 0
	exponent := int(binary.BigEndian.Uint16(b[0:2]) & extendedMaxExp)
	mantissa := binary.BigEndian.Uint64(b[2:10])

	var v float64
	switch {
	case exponent == 0 && mantissa == 0:
		v = 0
	case exponent == extendedMaxExp:
		// The integer bit is ignored for infinities and NaNs.
		if mantissa<<1 != 0 {
			return math.NaN()
		}
		v = math.Inf(1)
	case exponent == 0:
		// Denormal: the exponent is interpreted as 1.
		v = math.Ldexp(float64(mantissa), 1-extendedBias-mantissaBits)
	default:
		v = math.Ldexp(float64(mantissa), exponent-extendedBias-mantissaBits)
	}

	if negative {
		return math.Copysign(v, -1)
	}
	return v
}

// Float64ToExtended is the inverse of ExtendedToFloat64. Every float64 is
// exactly representable in the extended format.
func Float64ToExtended(f float64) [10]byte {
	var b [10]byte

	var sign uint16
	if math.Signbit(f) {
		sign = 0x8000
		f = -f
	}

	switch {
	case math.IsNaN(f):
		binary.BigEndian.PutUint16(b[0:2], extendedMaxExp)
		binary.BigEndian.PutUint64(b[2:10], 0xC000000000000000)
		return b
	case math.IsInf(f, 0):
		binary.BigEndian.PutUint16(b[0:2], sign|extendedMaxExp)
		binary.BigEndian.PutUint64(b[2:10], 0x8000000000000000)
		return b
	case f == 0:
		binary.BigEndian.PutUint16(b[0:2], sign)
		return b
	}

	// f = frac * 2^exp, frac in [0.5, 1)
	frac, exp := math.Frexp(f)
	mantissa := uint64(math.Ldexp(frac, 64))

	binary.BigEndian.PutUint16(b[0:2], sign|uint16(exp-1+extendedBias))
	binary.BigEndian.PutUint64(b[2:10], mantissa)

	return b
}
