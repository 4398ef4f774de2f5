package api

import (
	"context"
	"net/http"

	"github.com/okian/meditrack/internal/domain/types"
)

// StatsProvider defines the interface for getting service statistics.
type StatsProvider interface {
	GetStats() map[string]interface{}
}

// SummaryProvider returns the stats block shown above the schedule.
type SummaryProvider interface {
	Stats(ctx context.Context) types.Stats
}

// StatsHandler handles stats requests.
type StatsHandler struct {
	summary       SummaryProvider
	statsProvider StatsProvider
}

type statsResponse struct {
	types.Stats
	Service map[string]interface{} `json:"service,omitempty"`
}

// NewStatsHandler creates a new stats handler. statsProvider may be nil.
func NewStatsHandler(summary SummaryProvider, statsProvider StatsProvider) *StatsHandler {
	return &StatsHandler{summary: summary, statsProvider: statsProvider}
}

// HandleStats handles GET /stats requests.
func (h *StatsHandler) HandleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Stats: h.summary.Stats(r.Context())}
	if h.statsProvider != nil {
		resp.Service = h.statsProvider.GetStats()
	}
	writeJSON(w, http.StatusOK, resp)
}
