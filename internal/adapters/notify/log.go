package notify

import (
	"context"

	"github.com/okian/meditrack/pkg/logger"
)

// LogNotifier writes reminders to the structured log.
type LogNotifier struct {
	logger logger.Logger
}

// NewLogNotifier returns a notifier logging through l.
func NewLogNotifier(l logger.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

// Notify logs the reminder at info level.
func (n *LogNotifier) Notify(ctx context.Context, r Reminder) error {
	n.logger.Info(ctx, r.Message(),
		logger.String("medicine_id", r.MedicineID),
		logger.String("date", r.Date),
		logger.String("slot", r.Slot),
	)
	return nil
}

// Name implements Notifier.
func (n *LogNotifier) Name() string { return "log" }
