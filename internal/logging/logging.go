// SPDX-License-Identifier: EPL-2.0

package logging

import (
	"github.com/pion/logging"
)

var loggerFactory = logging.NewDefaultLoggerFactory()

// NewLogger returns a leveled logger for scope. Levels are controlled with the
// PION_LOG_<LEVEL> environment variables, e.g. PION_LOG_DEBUG=audmeta/audio.
func NewLogger(scope string) logging.LeveledLogger {
	return loggerFactory.NewLogger(scope)
}
