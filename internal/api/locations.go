package api

import (
	"database/sql"
	"net/http"

	"stocktrack/internal/store"
)

// LocationsHandler manages the accepted location label set.
type LocationsHandler struct {
	DB *sql.DB
}

type createLocationRequest struct {
	Name string `json:"name"`
}

// List handles GET /api/locations.
func (h *LocationsHandler) List(w http.ResponseWriter, r *http.Request) {
	locations, err := store.ListLocations(r.Context(), h.DB)
	if err != nil {
		storeError(w, err, "failed to list locations")
		return
	}
	jsonResponse(w, http.StatusOK, locations)
}

// Create handles POST /api/locations.
func (h *LocationsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createLocationRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := store.AddLocation(r.Context(), h.DB, req.Name); err != nil {
		storeError(w, err, "failed to add location")
		return
	}
	jsonResponse(w, http.StatusCreated, map[string]string{"name": req.Name})
}

// Delete handles DELETE /api/locations/{name}.
func (h *LocationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := store.RemoveLocation(r.Context(), h.DB, r.PathValue("name")); err != nil {
		storeError(w, err, "failed to remove location")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "location removed"})
}
