package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/okian/meditrack/internal/domain/reminder"
)

var errInvalidLimit = errors.New("limit must be a non-negative integer")

// ReminderDependencies drains delivered reminders.
type ReminderDependencies interface {
	DrainReminders(ctx context.Context, limit int) []reminder.Reminder
}

// RemindersHandler handles GET /reminders.
type RemindersHandler struct {
	deps ReminderDependencies
}

// NewRemindersHandler creates a new reminders handler.
func NewRemindersHandler(deps ReminderDependencies) *RemindersHandler {
	return &RemindersHandler{deps: deps}
}

// HandleDrain removes and returns waiting reminders. ?limit=N caps the batch.
func (h *RemindersHandler) HandleDrain(w http.ResponseWriter, r *http.Request) {
	const op = "api.drain_reminders"
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, errInvalidLimit))
			return
		}
		limit = n
	}

	drained := h.deps.DrainReminders(r.Context(), limit)
	resp := remindersResponse{Reminders: make([]reminderView, 0, len(drained))}
	for _, rem := range drained {
		resp.Reminders = append(resp.Reminders, reminderView{Reminder: rem, Message: rem.Message()})
	}
	writeJSON(w, http.StatusOK, resp)
}
