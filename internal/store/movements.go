package store

import (
	"context"
	"database/sql"
	"strings"

	"stocktrack/internal/model"
)

const movementColumns = `id, barcode, kind, quantity, target_location, performed_by, note, occurred_at`

// MaxListMovements caps history results.
const MaxListMovements = 200

// MoveItem moves an item to a target location and appends the resulting
// ledger record. The item state update and the append happen in a single
// transaction: they succeed or fail together.
//
// A move into Storage is classified as an entry, any other target as an
// exit. The current holder is cleared on every move. The version check on
// the item makes a losing concurrent writer fail with a ConflictError and
// no partial effect.
func MoveItem(ctx context.Context, db *sql.DB, barcode, targetLocation, performedBy, note string) (*model.Movement, error) {
	barcode = strings.TrimSpace(barcode)
	if err := validateBarcode(barcode); err != nil {
		return nil, err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storeErr("beginning move transaction", err)
	}
	defer tx.Rollback()

	// Validate the target against the accepted label set.
	var known int
	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM locations WHERE name = ?`, targetLocation,
	).Scan(&known)
	if err != nil {
		return nil, storeErr("checking target location", err)
	}
	if known == 0 {
		return nil, &ValidationError{Field: "target_location", Code: CodeInvalidLocation, Value: targetLocation}
	}

	// The ledger reads item state but mutates it only through this
	// registry-owned row; referential validity is checked here, at append
	// time, not by a storage-engine constraint.
	var itemID, version int64
	err = tx.QueryRowContext(ctx,
		`SELECT id, version FROM items WHERE barcode = ?`, barcode,
	).Scan(&itemID, &version)
	if err == sql.ErrNoRows {
		return nil, &NotFoundError{Kind: "item", Ref: barcode}
	}
	if err != nil {
		return nil, storeErr("looking up item", err)
	}

	kind := model.ClassifyMovement(targetLocation)

	result, err := tx.ExecContext(ctx,
		`UPDATE items
		 SET location = ?, current_holder = NULL, version = version + 1,
		     updated_at = CURRENT_TIMESTAMP
		 WHERE id = ? AND version = ?`,
		targetLocation, itemID, version,
	)
	if err != nil {
		return nil, storeErr("updating item state", err)
	}
	if n, err := result.RowsAffected(); err != nil {
		return nil, storeErr("updating item state", err)
	} else if n == 0 {
		return nil, &ConflictError{Barcode: barcode}
	}

	result, err = tx.ExecContext(ctx,
		`INSERT INTO movements (barcode, kind, quantity, target_location, performed_by, note)
		 VALUES (?, ?, 1, ?, ?, ?)`,
		barcode, kind, targetLocation, performedBy, note,
	)
	if err != nil {
		return nil, storeErr("appending movement", err)
	}

	movementID, err := result.LastInsertId()
	if err != nil {
		return nil, storeErr("getting movement id", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, storeErr("committing move", err)
	}

	return GetMovement(ctx, db, movementID)
}

// GetMovement returns a single ledger record by ID, or nil if absent.
func GetMovement(ctx context.Context, db *sql.DB, id int64) (*model.Movement, error) {
	m := &model.Movement{}
	var performedBy, note sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT `+movementColumns+` FROM movements WHERE id = ?`, id,
	).Scan(&m.ID, &m.Barcode, &m.Kind, &m.Quantity, &m.TargetLocation,
		&performedBy, &note, &m.OccurredAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, storeErr("getting movement", err)
	}
	m.PerformedBy = performedBy.String
	m.Note = note.String
	return m, nil
}

// ListMovements returns ledger records, optionally filtered to one barcode,
// most recent first (occurred_at descending, ties broken by id).
func ListMovements(ctx context.Context, db *sql.DB, barcode string, limit int) ([]model.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	var args []any

	if barcode = strings.TrimSpace(barcode); barcode != "" {
		query += ` AND barcode = ?`
		args = append(args, barcode)
	}

	if limit <= 0 || limit > MaxListMovements {
		limit = MaxListMovements
	}
	query += ` ORDER BY occurred_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, storeErr("listing movements", err)
	}
	defer rows.Close()

	var movements []model.Movement
	for rows.Next() {
		var m model.Movement
		var performedBy, note sql.NullString
		if err := rows.Scan(&m.ID, &m.Barcode, &m.Kind, &m.Quantity, &m.TargetLocation,
			&performedBy, &note, &m.OccurredAt); err != nil {
			return nil, storeErr("scanning movement", err)
		}
		m.PerformedBy = performedBy.String
		m.Note = note.String
		movements = append(movements, m)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listing movements", err)
	}
	return movements, nil
}
