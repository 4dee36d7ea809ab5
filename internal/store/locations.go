package store

import (
	"context"
	"database/sql"
	"strings"

	"stocktrack/internal/model"
)

// ListLocations returns the accepted location labels, Storage first, the
// rest alphabetically.
func ListLocations(ctx context.Context, db *sql.DB) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT name FROM locations ORDER BY name != ?, name`, model.LocationStorage,
	)
	if err != nil {
		return nil, storeErr("listing locations", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storeErr("scanning location", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storeErr("listing locations", err)
	}
	return names, nil
}

// AddLocation adds a label to the accepted set. Adding an existing label
// is a no-op, so concurrent adds are safe.
func AddLocation(ctx context.Context, db *sql.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return &ValidationError{Field: "name", Code: CodeRequired}
	}

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO locations (name) VALUES (?)`, name,
	)
	if err != nil {
		return storeErr("adding location", err)
	}
	return nil
}

// RemoveLocation removes a label from the accepted set. Storage cannot be
// removed (it defines the entry/exit classification), and neither can a
// label some item still occupies.
func RemoveLocation(ctx context.Context, db *sql.DB, name string) error {
	name = strings.TrimSpace(name)
	if name == model.LocationStorage {
		return &ValidationError{Field: "name", Code: CodeLocationInUse, Value: name}
	}

	var occupied int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM items WHERE location = ?`, name,
	).Scan(&occupied)
	if err != nil {
		return storeErr("checking location usage", err)
	}
	if occupied > 0 {
		return &ValidationError{Field: "name", Code: CodeLocationInUse, Value: name}
	}

	result, err := db.ExecContext(ctx, `DELETE FROM locations WHERE name = ?`, name)
	if err != nil {
		return storeErr("removing location", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return &NotFoundError{Kind: "location", Ref: name}
	}
	return nil
}
