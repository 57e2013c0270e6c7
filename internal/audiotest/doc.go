// SPDX-License-Identifier: EPL-2.0

// Package audiotest builds small synthetic audio files in memory for tests.
//
// The builders write well-formed container headers with silent or filler
// payloads, which is all the decode-free probes look at.
package audiotest
