package store

import (
	"context"
	"database/sql"
	"strings"

	"stocktrack/internal/model"
)

// itemColumns is the column list every item query selects, in scan order.
const itemColumns = `id, barcode, name, product_type, brand, model, description,
       serial_number, location, current_holder, version, created_at, updated_at`

// ItemParams are the caller-supplied descriptive fields of an item.
// Location and holder are deliberately absent: current state is mutated
// only by the movement ledger (MoveItem).
type ItemParams struct {
	Barcode      string
	Name         string
	ProductType  string
	Brand        string
	Model        string
	Description  string
	SerialNumber string
}

// RegisterItem creates a new item. The item starts in Storage with no
// holder. Fails with a ValidationError on bad barcode length, duplicate
// barcode, or duplicate non-empty serial number.
func RegisterItem(ctx context.Context, db *sql.DB, p ItemParams) (*model.Item, error) {
	barcode := strings.TrimSpace(p.Barcode)
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, &ValidationError{Field: "name", Code: CodeRequired}
	}

	if taken, err := barcodeTaken(ctx, db, barcode, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "barcode", Code: CodeBarcodeDuplicate, Value: barcode}
	}
	if taken, err := serialTaken(ctx, db, p.SerialNumber, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "serial_number", Code: CodeSerialDuplicate, Value: p.SerialNumber}
	}

	result, err := db.ExecContext(ctx,
		`INSERT INTO items (barcode, name, product_type, brand, model, description, serial_number, location)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		barcode, p.Name, p.ProductType, p.Brand, p.Model, p.Description, p.SerialNumber,
		model.LocationStorage,
	)
	if err != nil {
		return nil, storeErr("creating item", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, storeErr("getting item id", err)
	}

	return GetItem(ctx, db, id)
}

// GetItem returns an item by ID, or nil if it doesn't exist.
func GetItem(ctx context.Context, db *sql.DB, id int64) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id)
	return scanItem(row)
}

// GetItemByBarcode returns an item by its barcode, or nil if no item
// matches. The barcode is trimmed before lookup; matching is exact and
// case-sensitive. An unknown barcode is not an error.
func GetItemByBarcode(ctx context.Context, db *sql.DB, barcode string) (*model.Item, error) {
	row := db.QueryRowContext(ctx,
		`SELECT `+itemColumns+` FROM items WHERE barcode = ?`, strings.TrimSpace(barcode))
	return scanItem(row)
}

// UpdateItem updates an item's descriptive fields. Barcode and serial
// uniqueness are re-validated excluding the item itself. Location and
// holder are not updatable here.
func UpdateItem(ctx context.Context, db *sql.DB, id int64, p ItemParams) (*model.Item, error) {
	current, err := GetItem(ctx, db, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, &NotFoundError{Kind: "item", Ref: itoa(id)}
	}

	barcode := strings.TrimSpace(p.Barcode)
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}
	if strings.TrimSpace(p.Name) == "" {
		return nil, &ValidationError{Field: "name", Code: CodeRequired}
	}

	if taken, err := barcodeTaken(ctx, db, barcode, id); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "barcode", Code: CodeBarcodeDuplicate, Value: barcode}
	}
	if taken, err := serialTaken(ctx, db, p.SerialNumber, id); err != nil {
		return nil, err
	} else if taken {
		return nil, &ValidationError{Field: "serial_number", Code: CodeSerialDuplicate, Value: p.SerialNumber}
	}

	_, err = db.ExecContext(ctx,
		`UPDATE items SET barcode = ?, name = ?, product_type = ?, brand = ?, model = ?,
		        description = ?, serial_number = ?, updated_at = CURRENT_TIMESTAMP
		 WHERE id = ?`,
		barcode, p.Name, p.ProductType, p.Brand, p.Model, p.Description, p.SerialNumber, id,
	)
	if err != nil {
		return nil, storeErr("updating item", err)
	}

	return GetItem(ctx, db, id)
}

// DeleteItem removes an item. Removal is refused while movement records
// reference the item's barcode, so history is never orphaned.
func DeleteItem(ctx context.Context, db *sql.DB, id int64) error {
	item, err := GetItem(ctx, db, id)
	if err != nil {
		return err
	}
	if item == nil {
		return &NotFoundError{Kind: "item", Ref: itoa(id)}
	}

	var refs int
	err = db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM movements WHERE barcode = ?`, item.Barcode,
	).Scan(&refs)
	if err != nil {
		return storeErr("checking item history", err)
	}
	if refs > 0 {
		return &ValidationError{Field: "barcode", Code: CodeHasHistory, Value: item.Barcode}
	}

	if _, err := db.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return storeErr("deleting item", err)
	}
	return nil
}

// ItemFilter narrows a ListItems query. Zero values mean "no filter".
type ItemFilter struct {
	Term        string // substring over barcode, name, brand, model, serial
	ProductType string
	Brand       string
	Location    string
	Serial      string // serial number substring
	InStockOnly bool
	Limit       int // result cap, defaults to MaxListItems
}

// MaxListItems caps list/search results.
const MaxListItems = 500

// ListItems returns item summaries matching the filter, most recently
// registered first.
func ListItems(ctx context.Context, db *sql.DB, f ItemFilter) ([]model.ItemSummary, error) {
	query := `SELECT barcode, name, product_type, brand, model, serial_number,
	                 location, current_holder
	          FROM items WHERE 1=1`
	var args []any

	if f.ProductType != "" {
		query += ` AND product_type = ?`
		args = append(args, f.ProductType)
	}
	if f.Brand != "" {
		query += ` AND brand = ?`
		args = append(args, f.Brand)
	}
	if f.Location != "" {
		query += ` AND location = ?`
		args = append(args, f.Location)
	}
	if f.InStockOnly {
		query += ` AND location = ?`
		args = append(args, model.LocationStorage)
	}
	if f.Serial != "" {
		query += ` AND serial_number LIKE ?`
		args = append(args, "%"+f.Serial+"%")
	}
	if term := strings.TrimSpace(f.Term); term != "" {
		query += ` AND (barcode LIKE ? OR name LIKE ? OR brand LIKE ? OR model LIKE ? OR serial_number LIKE ?)`
		like := "%" + term + "%"
		args = append(args, like, like, like, like, like)
	}

	limit := f.Limit
	if limit <= 0 || limit > MaxListItems {
		limit = MaxListItems
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("listing items", err)
	}
	defer rows.Close()

	var items []model.ItemSummary
	for rows.Next() {
		var s model.ItemSummary
		var productType, brand, mdl, serial, holder sql.NullString
		if err := rows.Scan(&s.Barcode, &s.Name, &productType, &brand, &mdl, &serial,
			&s.Location, &holder); err != nil {
			return nil, storeErr("scanning item", err)
		}
		s.ProductType = productType.String
		s.Brand = brand.String
		s.Model = mdl.String
		s.SerialNumber = serial.String
		s.CurrentHolder = holder.String
		s.InStock = model.InStock(s.Location)
		items = append(items, s)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listing items", err)
	}
	return items, nil
}

// SetItemImage stores an item's photo.
func SetItemImage(ctx context.Context, db *sql.DB, id int64, image []byte, mime string) error {
	result, err := db.ExecContext(ctx,
		`UPDATE items SET image = ?, image_mime = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		image, mime, id,
	)
	if err != nil {
		return storeErr("setting item image", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Kind: "item", Ref: itoa(id)}
	}
	return nil
}

// GetItemImage returns an item's photo and MIME type, or nil if none is set.
func GetItemImage(ctx context.Context, db *sql.DB, id int64) ([]byte, string, error) {
	var image []byte
	var mime sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT image, image_mime FROM items WHERE id = ?`, id,
	).Scan(&image, &mime)
	if err == sql.ErrNoRows {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", storeErr("getting item image", err)
	}
	return image, mime.String, nil
}

// validateBarcode checks the trimmed barcode's length bounds.
func validateBarcode(barcode string) error {
	if len(barcode) < model.BarcodeMinLen || len(barcode) > model.BarcodeMaxLen {
		return &ValidationError{Field: "barcode", Code: CodeBarcodeLength, Value: barcode}
	}
	return nil
}

// barcodeTaken reports whether another item (excluding excludeID) already
// uses the barcode.
func barcodeTaken(ctx context.Context, db *sql.DB, barcode string, excludeID int64) (bool, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE barcode = ? AND id != ?`, barcode, excludeID,
	).Scan(&n)
	if err != nil {
		return false, storeErr("checking barcode uniqueness", err)
	}
	return n > 0, nil
}

// serialTaken reports whether another item already uses the serial number.
// Empty serials are not unique.
func serialTaken(ctx context.Context, db *sql.DB, serial string, excludeID int64) (bool, error) {
	if serial == "" {
		return false, nil
	}
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE serial_number = ? AND id != ?`, serial, excludeID,
	).Scan(&n)
	if err != nil {
		return false, storeErr("checking serial uniqueness", err)
	}
	return n > 0, nil
}

// scanItem scans a single item row, computing the derived in-stock flag.
// Returns nil (not an error) when the row doesn't exist.
func scanItem(row *sql.Row) (*model.Item, error) {
	item := &model.Item{}
	var productType, brand, mdl, description, serial, holder sql.NullString
	err := row.Scan(&item.ID, &item.Barcode, &item.Name, &productType, &brand, &mdl,
		&description, &serial, &item.Location, &holder, &item.Version,
		&item.CreatedAt, &item.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("getting item", err)
	}
	item.ProductType = productType.String
	item.Brand = brand.String
	item.Model = mdl.String
	item.Description = description.String
	item.SerialNumber = serial.String
	item.CurrentHolder = holder.String
	item.InStock = model.InStock(item.Location)
	return item, nil
}
