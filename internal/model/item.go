package model

import "time"

// Item represents a single physical, barcode-identified unit of inventory.
// Quantity is not modeled: one row is one unit.
type Item struct {
	ID            int64     `json:"id"`
	Barcode       string    `json:"barcode"`
	Name          string    `json:"name"`
	ProductType   string    `json:"product_type,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Model         string    `json:"model,omitempty"`
	Description   string    `json:"description,omitempty"`
	SerialNumber  string    `json:"serial_number,omitempty"`
	Location      string    `json:"location"`
	CurrentHolder string    `json:"current_holder,omitempty"`
	InStock       bool      `json:"in_stock"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Version increments on every state mutation and backs the
	// optimistic concurrency check in the movement ledger.
	Version int64 `json:"-"`
}

// ItemSummary is the lightweight list/search shape exposed at the API
// boundary. Its field set is a stable contract, separate from Item.
type ItemSummary struct {
	Barcode       string `json:"barcode"`
	Name          string `json:"name"`
	ProductType   string `json:"product_type,omitempty"`
	Brand         string `json:"brand,omitempty"`
	Model         string `json:"model,omitempty"`
	SerialNumber  string `json:"serial_number,omitempty"`
	Location      string `json:"location"`
	CurrentHolder string `json:"current_holder,omitempty"`
	InStock       bool   `json:"in_stock"`
}

// Default location labels. The set is administrable (see store.AddLocation),
// but Storage is fixed: it defines the entry/exit classification.
const (
	LocationStorage    = "Storage"
	LocationOffice     = "Office"
	LocationOutOfStock = "Out-of-stock"
)

// Barcode length bounds (characters).
const (
	BarcodeMinLen = 6
	BarcodeMaxLen = 7
)

// InStock reports whether an item at the given location counts as in stock.
// This is the single definition of the derived flag; callers never set it.
func InStock(location string) bool {
	return location == LocationStorage
}
