package database

import (
	"context"
	"fmt"
)

// Migrate ensures the two collection tables exist. The schema is small
// enough that idempotent create statements beat a migration framework.
func Migrate(db *DB) error {
	_, err := db.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS stock_records (
			id UUID PRIMARY KEY,
			position INTEGER NOT NULL,
			name VARCHAR(255) NOT NULL,
			category VARCHAR(255) NOT NULL,
			purchase_frequency VARCHAR(255) NOT NULL DEFAULT '',
			min_quantity INTEGER NOT NULL DEFAULT 0 CHECK (min_quantity >= 0),
			current_quantity INTEGER NOT NULL DEFAULT 0 CHECK (current_quantity >= 0),
			unit_price NUMERIC(12, 2) NOT NULL DEFAULT 0 CHECK (unit_price >= 0),
			manual_quantity INTEGER NOT NULL DEFAULT 0 CHECK (manual_quantity >= 0),
			last_purchase_date TIMESTAMPTZ
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create stock_records table: %w", err)
	}

	_, err = db.Exec(context.Background(), `
		CREATE TABLE IF NOT EXISTS history_entries (
			id UUID PRIMARY KEY,
			position INTEGER NOT NULL,
			date TIMESTAMPTZ NOT NULL,
			item_name VARCHAR(255) NOT NULL,
			quantity_purchased INTEGER NOT NULL CHECK (quantity_purchased > 0),
			total_cost NUMERIC(12, 2) NOT NULL DEFAULT 0
		);
	`)
	if err != nil {
		return fmt.Errorf("failed to create history_entries table: %w", err)
	}

	return nil
}
