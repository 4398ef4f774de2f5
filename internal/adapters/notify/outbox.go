package notify

import (
	"context"
	"sync"

	"github.com/okian/meditrack/pkg/metrics"
)

const defaultOutboxCapacity = 256

// Outbox buffers reminders until a client drains them. It never blocks:
// a full or closed outbox rejects the reminder.
type Outbox struct {
	mu       sync.RWMutex
	items    chan Reminder
	capacity int
	closed   bool
}

// OutboxOption configures an Outbox.
type OutboxOption func(*Outbox)

// WithCapacity sets how many reminders may wait in the outbox.
func WithCapacity(capacity int) OutboxOption {
	return func(o *Outbox) {
		if capacity > 0 {
			o.capacity = capacity
		}
	}
}

// NewOutbox creates an empty outbox.
func NewOutbox(opts ...OutboxOption) *Outbox {
	o := &Outbox{capacity: defaultOutboxCapacity}
	for _, opt := range opts {
		opt(o)
	}
	o.items = make(chan Reminder, o.capacity)
	metrics.UpdateOutboxSize(0)
	return o
}

// Notify enqueues r.
func (o *Outbox) Notify(ctx context.Context, r Reminder) error {
	o.mu.RLock()
	defer o.mu.RUnlock()

	if o.closed {
		return ErrOutboxClosed
	}

	select {
	case o.items <- r:
		metrics.UpdateOutboxSize(len(o.items))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrOutboxFull
	}
}

// Name implements Notifier.
func (o *Outbox) Name() string { return "outbox" }

// Drain removes and returns up to limit waiting reminders, oldest first.
// limit <= 0 drains everything currently queued.
func (o *Outbox) Drain(_ context.Context, limit int) []Reminder {
	o.mu.RLock()
	defer o.mu.RUnlock()

	n := len(o.items)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Reminder, 0, n)
drain:
	for len(out) < n {
		select {
		case r := <-o.items:
			out = append(out, r)
		default:
			break drain
		}
	}
	metrics.UpdateOutboxSize(len(o.items))
	return out
}

// Len returns the number of waiting reminders.
func (o *Outbox) Len() int {
	return len(o.items)
}

// Close rejects further reminders. Waiting reminders can still be drained.
func (o *Outbox) Close() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed = true
	return nil
}
