// SPDX-License-Identifier: EPL-2.0

package aiff

import "errors"

var (
	// ErrChunkNotFound indicates no AIFF/AIFC form type or no COMM chunk after it
	ErrChunkNotFound = errors.New("AIFF common chunk not found")

	// ErrTruncatedCommon indicates the buffer ends inside the COMM chunk's fixed fields
	ErrTruncatedCommon = errors.New("AIFF common chunk truncated")
)
