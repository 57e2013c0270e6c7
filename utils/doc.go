// SPDX-License-Identifier: EPL-2.0

// Package utils holds the small numeric helpers shared by the format probes:
// the 80-bit extended precision decoder used for AIFF sample rates, and the
// conversion of a duration into an approximate frame count.
package utils
