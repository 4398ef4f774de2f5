// Package notify delivers reminders to the user.
package notify

import (
	"context"
	"errors"

	"github.com/okian/meditrack/internal/domain/reminder"
	"github.com/okian/meditrack/pkg/metrics"
)

// Reminder is the payload every notifier receives.
type Reminder = reminder.Reminder

// Notifier presents a reminder to the user.
type Notifier interface {
	Notify(ctx context.Context, r Reminder) error
	// Name labels the notifier in logs and metrics.
	Name() string
}

// Multi fans a reminder out to every notifier and joins their errors.
type Multi []Notifier

// Notify calls every notifier, even after a failure.
func (m Multi) Notify(ctx context.Context, r Reminder) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, r); err != nil {
			metrics.RecordReminderDropped(n.Name())
			errs = append(errs, err)
			continue
		}
		metrics.RecordReminderDelivered(n.Name())
	}
	return errors.Join(errs...)
}

// Name implements Notifier.
func (m Multi) Name() string { return "multi" }
