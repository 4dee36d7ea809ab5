package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// Movements reference items by barcode as a plain indexed string, not a
// foreign key: referential validity is enforced by the store layer so the
// ledger stays decoupled from registry internals.
const schema = `
CREATE TABLE IF NOT EXISTS items (
    id             INTEGER PRIMARY KEY,
    barcode        TEXT NOT NULL,
    name           TEXT NOT NULL,
    product_type   TEXT,
    brand          TEXT,
    model          TEXT,
    description    TEXT,
    serial_number  TEXT,
    location       TEXT NOT NULL DEFAULT 'Storage',
    current_holder TEXT,
    image          BLOB,
    image_mime     TEXT,
    version        INTEGER NOT NULL DEFAULT 1,
    created_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    updated_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_barcode
    ON items(barcode);

CREATE UNIQUE INDEX IF NOT EXISTS idx_items_serial
    ON items(serial_number)
    WHERE serial_number IS NOT NULL AND serial_number != '';

CREATE TABLE IF NOT EXISTS movements (
    id              INTEGER PRIMARY KEY,
    barcode         TEXT NOT NULL,
    kind            TEXT NOT NULL CHECK (kind IN ('entry', 'exit')),
    quantity        INTEGER NOT NULL DEFAULT 1 CHECK (quantity > 0),
    target_location TEXT NOT NULL,
    performed_by    TEXT,
    note            TEXT,
    occurred_at     DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_movements_barcode
    ON movements(barcode);

CREATE INDEX IF NOT EXISTS idx_movements_occurred_at
    ON movements(occurred_at);

CREATE TABLE IF NOT EXISTS locations (
    name       TEXT PRIMARY KEY,
    created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

INSERT OR IGNORE INTO locations (name) VALUES ('Storage'), ('Office'), ('Out-of-stock');
`

// EnsureSchema creates all tables and indexes if they don't already exist
// and seeds the default location labels.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
