package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"stocktrack/internal/metrics"
	"stocktrack/internal/model"
	"stocktrack/internal/store"
)

// MovementsHandler handles movement ledger endpoints.
type MovementsHandler struct {
	DB *sql.DB
}

type createMovementRequest struct {
	Barcode        string `json:"barcode"`
	TargetLocation string `json:"target_location"`
	PerformedBy    string `json:"performed_by"`
	Note           string `json:"note"`
}

// Create handles POST /api/movements: move an item to a target location
// and append the ledger record.
func (h *MovementsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMovementRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	movement, err := store.MoveItem(r.Context(), h.DB, req.Barcode, req.TargetLocation, req.PerformedBy, req.Note)
	if err != nil {
		var ce *store.ConflictError
		if errors.As(err, &ce) {
			metrics.MoveConflicts.Inc()
		}
		storeError(w, err, "failed to move item")
		return
	}

	metrics.Movements.WithLabelValues(movement.Kind).Inc()
	jsonResponse(w, http.StatusCreated, movement)
}

// List handles GET /api/movements with an optional barcode filter,
// most recent first.
func (h *MovementsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	limit := 0
	if l := q.Get("limit"); l != "" {
		n, err := strconv.Atoi(l)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	movements, err := store.ListMovements(r.Context(), h.DB, q.Get("barcode"), limit)
	if err != nil {
		storeError(w, err, "failed to list movements")
		return
	}
	if movements == nil {
		movements = []model.Movement{}
	}
	jsonResponse(w, http.StatusOK, movements)
}
