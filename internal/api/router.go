package api

import (
	"database/sql"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRouter creates the API router with all endpoints registered.
// Authentication is left to whatever fronts this service.
func NewRouter(db *sql.DB) http.Handler {
	mux := http.NewServeMux()

	itemsHandler := &ItemsHandler{DB: db}
	movementsHandler := &MovementsHandler{DB: db}
	locationsHandler := &LocationsHandler{DB: db}

	// Items: registry CRUD plus barcode lookup.
	mux.HandleFunc("GET /api/items", itemsHandler.List)
	mux.HandleFunc("POST /api/items", itemsHandler.Create)
	mux.HandleFunc("GET /api/items/{id}", itemsHandler.Get)
	mux.HandleFunc("PUT /api/items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /api/items/{id}", itemsHandler.Delete)
	mux.HandleFunc("PUT /api/items/{id}/image", itemsHandler.UploadImage)
	mux.HandleFunc("GET /api/items/{id}/image", itemsHandler.GetImage)
	mux.HandleFunc("GET /api/barcodes/lookup", itemsHandler.Lookup)

	// Movements: append via move, read-only history. No update or delete
	// routes exist: the ledger is immutable.
	mux.HandleFunc("POST /api/movements", movementsHandler.Create)
	mux.HandleFunc("GET /api/movements", movementsHandler.List)

	// Accepted location labels.
	mux.HandleFunc("GET /api/locations", locationsHandler.List)
	mux.HandleFunc("POST /api/locations", locationsHandler.Create)
	mux.HandleFunc("DELETE /api/locations/{name}", locationsHandler.Delete)

	mux.Handle("GET /metrics", promhttp.Handler())

	return MetricsMiddleware(mux)
}
