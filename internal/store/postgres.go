package store

import (
	"context"
	"fmt"

	"pantry-tracker/internal/database"
	"pantry-tracker/internal/models"

	"github.com/jackc/pgx/v5"
)

// PostgresStore persists both collections in Postgres. Saves replace the
// whole collection in one transaction, keeping the snapshot-per-write
// contract of the file store. The position column preserves collection
// order across reloads.
type PostgresStore struct {
	db *database.DB
}

func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) LoadStock(ctx context.Context) ([]models.StockRecord, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, category, purchase_frequency, min_quantity,
		 current_quantity, unit_price, manual_quantity, last_purchase_date
		 FROM stock_records
		 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load stock records: %w", err)
	}
	defer rows.Close()

	var records []models.StockRecord
	for rows.Next() {
		var r models.StockRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Category, &r.PurchaseFrequency,
			&r.MinQuantity, &r.CurrentQuantity, &r.UnitPrice,
			&r.ManualQuantity, &r.LastPurchaseDate); err != nil {
			return nil, fmt.Errorf("failed to scan stock record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *PostgresStore) SaveStock(ctx context.Context, records []models.StockRecord) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveStockTx(ctx, tx, records); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, date, item_name, quantity_purchased, total_cost
		 FROM history_entries
		 ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to load history entries: %w", err)
	}
	defer rows.Close()

	var entries []models.HistoryEntry
	for rows.Next() {
		var e models.HistoryEntry
		if err := rows.Scan(&e.ID, &e.Date, &e.ItemName, &e.QuantityPurchased, &e.TotalCost); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (s *PostgresStore) SaveHistory(ctx context.Context, entries []models.HistoryEntry) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveHistoryTx(ctx, tx, entries); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Replace(ctx context.Context, stock []models.StockRecord, history []models.HistoryEntry) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := saveStockTx(ctx, tx, stock); err != nil {
		return err
	}
	if err := saveHistoryTx(ctx, tx, history); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (s *PostgresStore) Close() {
	s.db.Close()
}

func saveStockTx(ctx context.Context, tx pgx.Tx, records []models.StockRecord) error {
	if _, err := tx.Exec(ctx, `DELETE FROM stock_records`); err != nil {
		return fmt.Errorf("failed to clear stock records: %w", err)
	}
	for i, r := range records {
		_, err := tx.Exec(ctx,
			`INSERT INTO stock_records (id, position, name, category, purchase_frequency,
			 min_quantity, current_quantity, unit_price, manual_quantity, last_purchase_date)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			r.ID, i, r.Name, r.Category, r.PurchaseFrequency,
			r.MinQuantity, r.CurrentQuantity, r.UnitPrice,
			r.ManualQuantity, r.LastPurchaseDate)
		if err != nil {
			return fmt.Errorf("failed to insert stock record %s: %w", r.ID, err)
		}
	}
	return nil
}

func saveHistoryTx(ctx context.Context, tx pgx.Tx, entries []models.HistoryEntry) error {
	if _, err := tx.Exec(ctx, `DELETE FROM history_entries`); err != nil {
		return fmt.Errorf("failed to clear history entries: %w", err)
	}
	for i, e := range entries {
		_, err := tx.Exec(ctx,
			`INSERT INTO history_entries (id, position, date, item_name, quantity_purchased, total_cost)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			e.ID, i, e.Date, e.ItemName, e.QuantityPurchased, e.TotalCost)
		if err != nil {
			return fmt.Errorf("failed to insert history entry %s: %w", e.ID, err)
		}
	}
	return nil
}
