// Package scheduler runs periodic jobs such as the reminder scan.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/meditrack/pkg/logger"
)

const defaultInterval = time.Minute

// Job is invoked on every tick.
type Job func(ctx context.Context)

// Ticker calls a job immediately and then once per interval. Ticks missed
// while the job is running are dropped, never replayed.
type Ticker struct {
	job      Job
	interval time.Duration
	name     string

	shutdown chan struct{}
	done     chan struct{}
	once     sync.Once

	logger logger.Logger
}

// New creates a ticker for job.
func New(job Job, opts ...Option) *Ticker {
	t := &Ticker{
		job:      job,
		interval: defaultInterval,
		name:     "ticker",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
		logger:   logger.Get().Named("scheduler"),
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.name != "ticker" {
		t.logger = t.logger.Named(t.name)
	}
	return t
}

// Interval returns the configured period.
func (t *Ticker) Interval() time.Duration { return t.interval }

// Run blocks until ctx is cancelled or Shutdown is called.
func (t *Ticker) Run(ctx context.Context) {
	defer close(t.done)

	t.logger.Debug(ctx, "ticker started", logger.String("interval", t.interval.String()))
	t.job(ctx)

	tick := time.NewTicker(t.interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.shutdown:
			return
		case <-tick.C:
			t.job(ctx)
		}
	}
}

// Shutdown stops the loop and waits for the running job to return.
func (t *Ticker) Shutdown(ctx context.Context) error {
	t.once.Do(func() { close(t.shutdown) })

	select {
	case <-t.done:
		return nil
	case <-ctx.Done():
		t.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}
