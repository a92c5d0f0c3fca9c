// Package store holds the persistence collaborators for the two durable
// collections. Every write is a full snapshot of one collection; there is no
// partial update, so a crash can lose at most the mutation in flight.
package store

import (
	"context"

	"pantry-tracker/internal/models"
)

// Store persists the stock and history collections.
type Store interface {
	LoadStock(ctx context.Context) ([]models.StockRecord, error)
	SaveStock(ctx context.Context, records []models.StockRecord) error
	LoadHistory(ctx context.Context) ([]models.HistoryEntry, error)
	SaveHistory(ctx context.Context, entries []models.HistoryEntry) error

	// Replace swaps both collections wholesale, used by snapshot import.
	Replace(ctx context.Context, stock []models.StockRecord, history []models.HistoryEntry) error

	Close()
}
