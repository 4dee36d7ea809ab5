package api

import (
	"database/sql"
	"net/http"
	"strconv"
	"strings"

	"stocktrack/internal/imaging"
	"stocktrack/internal/metrics"
	"stocktrack/internal/model"
	"stocktrack/internal/store"
)

// ItemsHandler handles item registry endpoints.
type ItemsHandler struct {
	DB *sql.DB
}

type itemRequest struct {
	Barcode      string `json:"barcode"`
	Name         string `json:"name"`
	ProductType  string `json:"product_type"`
	Brand        string `json:"brand"`
	Model        string `json:"model"`
	Description  string `json:"description"`
	SerialNumber string `json:"serial_number"`
}

func (r itemRequest) params() store.ItemParams {
	return store.ItemParams{
		Barcode:      r.Barcode,
		Name:         r.Name,
		ProductType:  r.ProductType,
		Brand:        r.Brand,
		Model:        r.Model,
		Description:  r.Description,
		SerialNumber: r.SerialNumber,
	}
}

// List handles GET /api/items with optional filters.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := store.ItemFilter{
		Term:        q.Get("term"),
		ProductType: q.Get("productType"),
		Brand:       q.Get("brand"),
		Location:    q.Get("location"),
		Serial:      q.Get("serial"),
		InStockOnly: q.Get("inStockOnly") == "true",
	}
	if limit := q.Get("limit"); limit != "" {
		n, err := strconv.Atoi(limit)
		if err != nil || n < 1 {
			jsonError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		storeError(w, err, "failed to list items")
		return
	}
	if items == nil {
		items = []model.ItemSummary{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items (register a new item).
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.RegisterItem(r.Context(), h.DB, req.params())
	if err != nil {
		storeError(w, err, "failed to register item")
		return
	}

	metrics.ItemsRegistered.Inc()
	jsonResponse(w, http.StatusCreated, item)
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Lookup handles GET /api/barcodes/lookup?code=. The raw code is trimmed
// and length-validated before the registry lookup.
func (h *ItemsHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if len(code) < model.BarcodeMinLen || len(code) > model.BarcodeMaxLen {
		jsonResponse(w, http.StatusBadRequest, map[string]string{
			"error": "barcode must be 6-7 characters",
			"code":  store.CodeBarcodeLength,
			"field": "barcode",
		})
		return
	}

	item, err := store.GetItemByBarcode(r.Context(), h.DB, code)
	if err != nil {
		storeError(w, err, "failed to look up barcode")
		return
	}
	if item == nil {
		jsonResponse(w, http.StatusNotFound, map[string]string{
			"error": "no item with this barcode",
			"code":  "NOT_FOUND",
		})
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id} (descriptive fields only).
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := store.UpdateItem(r.Context(), h.DB, id, req.params())
	if err != nil {
		storeError(w, err, "failed to update item")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		storeError(w, err, "failed to delete item")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// UploadImage handles PUT /api/items/{id}/image.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	processed, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, processed.Data, processed.MIME); err != nil {
		storeError(w, err, "failed to save image")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id)
	if err != nil {
		storeError(w, err, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
