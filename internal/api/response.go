package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stocktrack/internal/store"
)

// jsonResponse writes a JSON response with the given status code.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("encoding response", "error", err)
		}
	}
}

// jsonError writes a JSON error response.
func jsonError(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}

// storeError translates a typed store error into an HTTP response with a
// stable reason code, falling back to a 500 with the given message.
// Presentation layers key their localized messages off the code field.
func storeError(w http.ResponseWriter, err error, fallback string) {
	var ve *store.ValidationError
	if errors.As(err, &ve) {
		jsonResponse(w, http.StatusBadRequest, map[string]string{
			"error": ve.Error(),
			"code":  ve.Code,
			"field": ve.Field,
		})
		return
	}

	var nfe *store.NotFoundError
	if errors.As(err, &nfe) {
		jsonResponse(w, http.StatusNotFound, map[string]string{
			"error": nfe.Error(),
			"code":  "NOT_FOUND",
		})
		return
	}

	var ce *store.ConflictError
	if errors.As(err, &ce) {
		jsonResponse(w, http.StatusConflict, map[string]string{
			"error": ce.Error(),
			"code":  "CONFLICT",
		})
		return
	}

	slog.Error(fallback, "error", err)
	jsonError(w, http.StatusInternalServerError, fallback)
}

// decodeJSON decodes a JSON request body into the given target.
func decodeJSON(r *http.Request, target any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(target)
}
