package models

import (
	"errors"
	"time"
)

// HistoryEntry is an immutable record of one completed purchase. The item
// name is denormalized so the entry survives renames and deletes.
type HistoryEntry struct {
	ID                string    `json:"id" db:"id"`
	Date              time.Time `json:"date" db:"date"`
	ItemName          string    `json:"item_name" db:"item_name"`
	QuantityPurchased int       `json:"quantity_purchased" db:"quantity_purchased"`
	TotalCost         float64   `json:"total_cost" db:"total_cost"`
}

// Snapshot is the full-state export/import document. Both collections must
// be present for an import to be accepted.
type Snapshot struct {
	Stock   []StockRecord  `json:"stock"`
	History []HistoryEntry `json:"history"`
}

var (
	// ErrNotFound is returned when an operation references an unknown record id.
	ErrNotFound = errors.New("stock record not found")

	// ErrInvalidSnapshot is returned when an import document is missing a
	// required collection or cannot be parsed. State is left untouched.
	ErrInvalidSnapshot = errors.New("invalid snapshot document")
)
