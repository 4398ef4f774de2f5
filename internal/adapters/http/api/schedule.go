package api

import (
	"context"
	"net/http"

	"github.com/okian/meditrack/internal/domain/types"
)

// ScheduleDependencies covers today's schedule and the adherence chart.
type ScheduleDependencies interface {
	SummaryProvider
	Schedule(ctx context.Context) []types.ScheduleEntry
	Chart(ctx context.Context) []types.ChartDay
}

// ScheduleHandler handles schedule and adherence requests.
type ScheduleHandler struct {
	deps ScheduleDependencies
}

type scheduleResponse struct {
	Schedule []types.ScheduleEntry `json:"schedule"`
}

type adherenceResponse struct {
	Rate int              `json:"rate"`
	Days []types.ChartDay `json:"days"`
}

// NewScheduleHandler creates a new schedule handler.
func NewScheduleHandler(deps ScheduleDependencies) *ScheduleHandler {
	return &ScheduleHandler{deps: deps}
}

// HandleSchedule handles GET /schedule requests.
func (h *ScheduleHandler) HandleSchedule(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scheduleResponse{Schedule: h.deps.Schedule(r.Context())})
}

// HandleAdherence handles GET /adherence requests.
func (h *ScheduleHandler) HandleAdherence(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	writeJSON(w, http.StatusOK, adherenceResponse{
		Rate: h.deps.Stats(ctx).AdherenceRate,
		Days: h.deps.Chart(ctx),
	})
}
