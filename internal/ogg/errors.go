// SPDX-License-Identifier: EPL-2.0

package ogg

import "errors"

var (
	ErrCapture     = errors.New("ogg: capture pattern not found")
	ErrVersion     = errors.New("ogg: unsupported stream structure version")
	ErrTruncated   = errors.New("ogg: page truncated")
	ErrBadChecksum = errors.New("ogg: page checksum mismatch")
)
