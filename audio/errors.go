// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrUnrecognized is returned when no registered prober recognized the buffer.
	ErrUnrecognized = errors.New("unrecognized audio format")

	// ErrAbort marks a probe failure that ends dispatch without trying the
	// remaining probers.
	ErrAbort = errors.New("probe aborted dispatch")

	// ErrProberPanic wraps a panic recovered from a prober.
	ErrProberPanic = errors.New("prober panicked")
)
