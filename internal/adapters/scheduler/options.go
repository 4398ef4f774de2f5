package scheduler

import (
	"time"

	"github.com/okian/meditrack/pkg/logger"
)

// Option configures a Ticker.
type Option func(*Ticker)

// WithInterval sets the tick period. Non-positive values are ignored.
func WithInterval(d time.Duration) Option {
	return func(t *Ticker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithName labels the ticker in logs.
func WithName(name string) Option {
	return func(t *Ticker) {
		if name != "" {
			t.name = name
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(t *Ticker) {
		if l != nil {
			t.logger = l
		}
	}
}
