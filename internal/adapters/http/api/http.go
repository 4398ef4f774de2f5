// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/reminder"
	"github.com/okian/meditrack/internal/domain/types"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	MedicineDependencies
	ScheduleDependencies
	ReminderDependencies
}

// MedicineInput mirrors the OpenAPI schema for POST /medicines.
type MedicineInput = types.MedicineInput

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	medicinesHandler *MedicinesHandler
	scheduleHandler  *ScheduleHandler
	remindersHandler *RemindersHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(deps, statsProvider),
		medicinesHandler: NewMedicinesHandler(deps),
		scheduleHandler:  NewScheduleHandler(deps),
		remindersHandler: NewRemindersHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("GET /stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("GET /medicines", MetricsMiddleware(s.medicinesHandler.HandleList, "medicines"))
	mux.HandleFunc("POST /medicines", MetricsMiddleware(s.medicinesHandler.HandleAdd, "medicines"))
	mux.HandleFunc("DELETE /medicines/{id}", MetricsMiddleware(s.medicinesHandler.HandleDelete, "medicine"))
	mux.HandleFunc("POST /medicines/{id}/taken", MetricsMiddleware(s.medicinesHandler.HandleTaken, "medicine_taken"))
	mux.HandleFunc("GET /schedule", MetricsMiddleware(s.scheduleHandler.HandleSchedule, "schedule"))
	mux.HandleFunc("GET /adherence", MetricsMiddleware(s.scheduleHandler.HandleAdherence, "adherence"))
	mux.HandleFunc("GET /reminders", MetricsMiddleware(s.remindersHandler.HandleDrain, "reminders"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type medicineResponse struct {
	Medicine model.Medicine `json:"medicine"`
}

type remindersResponse struct {
	Reminders []reminderView `json:"reminders"`
}

type reminderView struct {
	reminder.Reminder
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError maps service sentinels to HTTP status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, model.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", Wrap(op, err))
	case errors.Is(err, model.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", Wrap(op, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal", Wrap(op, err))
	}
}
