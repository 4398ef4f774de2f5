package service

import (
	"time"

	"github.com/okian/meditrack/internal/adapters/notify"
	"github.com/okian/meditrack/internal/adapters/repository"
	"github.com/okian/meditrack/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithStore sets where medicines and the ledger are persisted.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithNotifier adds a reminder destination next to the log and the outbox.
func WithNotifier(n notify.Notifier) Option {
	return func(s *Service) {
		if n != nil {
			s.notifiers = append(s.notifiers, n)
		}
	}
}

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithReminderInterval sets how often reminders are checked.
func WithReminderInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.reminderInterval = d
		}
	}
}

// WithoutTicker disables the background reminder scan. CheckReminders can
// still be called directly.
func WithoutTicker() Option {
	return func(s *Service) {
		s.runTicker = false
	}
}

// WithOutboxSize sets how many undelivered reminders are buffered.
func WithOutboxSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.outboxSize = size
		}
	}
}

// WithDedupeSize sets how many delivered reminder keys are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}
