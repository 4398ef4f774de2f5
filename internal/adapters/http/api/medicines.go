package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/okian/meditrack/internal/domain/model"
	"github.com/okian/meditrack/internal/domain/types"
)

// MedicineDependencies covers the medicine list and its mutations.
type MedicineDependencies interface {
	Medicines(ctx context.Context) []types.Medicine
	AddMedicine(ctx context.Context, in MedicineInput) (model.Medicine, error)
	DeleteMedicine(ctx context.Context, id string) error
	MarkTaken(ctx context.Context, id string) (model.Medicine, error)
}

// MedicinesHandler handles /medicines requests.
type MedicinesHandler struct {
	deps MedicineDependencies
}

type medicinesResponse struct {
	Medicines []types.Medicine `json:"medicines"`
}

// NewMedicinesHandler creates a new medicines handler.
func NewMedicinesHandler(deps MedicineDependencies) *MedicinesHandler {
	return &MedicinesHandler{deps: deps}
}

// HandleList handles GET /medicines requests.
func (h *MedicinesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, medicinesResponse{Medicines: h.deps.Medicines(r.Context())})
}

// HandleAdd handles POST /medicines requests.
func (h *MedicinesHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	const op = "api.add_medicine"
	var req MedicineInput
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrEmptyBody))
			return
		}
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	m, err := h.deps.AddMedicine(r.Context(), req)
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusCreated, medicineResponse{Medicine: m})
}

// HandleDelete handles DELETE /medicines/{id} requests.
func (h *MedicinesHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	const op = "api.delete_medicine"
	if err := h.deps.DeleteMedicine(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, op, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleTaken handles POST /medicines/{id}/taken requests.
func (h *MedicinesHandler) HandleTaken(w http.ResponseWriter, r *http.Request) {
	const op = "api.mark_taken"
	m, err := h.deps.MarkTaken(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, medicineResponse{Medicine: m})
}
