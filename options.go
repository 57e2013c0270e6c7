// SPDX-License-Identifier: EPL-2.0

package audmeta

import (
	"github.com/ik5/audmeta/formats/vorbis"
	"github.com/pion/logging"
)

type config struct {
	oggStrategy    vorbis.Strategy
	mp4FallThrough bool
	log            logging.LeveledLogger
}

// Option configures the probers built by NewRegistry and Detect.
type Option func(*config)

// WithOggStrategy selects how the Ogg/Vorbis prober counts frames.
// The default is vorbis.Granule.
func WithOggStrategy(s vorbis.Strategy) Option {
	return func(c *config) {
		c.oggStrategy = s
	}
}

// WithMP4FallThrough turns an MP4 file whose movie header lacks a duration
// or sample rate into an ordinary probe failure, so the remaining probers
// still run. Without it such a file ends the dispatch.
func WithMP4FallThrough() Option {
	return func(c *config) {
		c.mp4FallThrough = true
	}
}

// WithLogger traces probe attempts to l.
func WithLogger(l logging.LeveledLogger) Option {
	return func(c *config) {
		c.log = l
	}
}

func newConfig(opts []Option) config {
	var c config
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
