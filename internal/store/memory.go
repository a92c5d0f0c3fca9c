package store

import (
	"context"
	"sync"

	"pantry-tracker/internal/models"
)

// MemoryStore keeps both collections in memory. It backs tests and the
// memory storage driver; nothing survives a restart.
type MemoryStore struct {
	mu      sync.RWMutex
	stock   []models.StockRecord
	history []models.HistoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) LoadStock(ctx context.Context) ([]models.StockRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyStock(s.stock), nil
}

func (s *MemoryStore) SaveStock(ctx context.Context, records []models.StockRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = copyStock(records)
	return nil
}

func (s *MemoryStore) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyHistory(s.history), nil
}

func (s *MemoryStore) SaveHistory(ctx context.Context, entries []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = copyHistory(entries)
	return nil
}

func (s *MemoryStore) Replace(ctx context.Context, stock []models.StockRecord, history []models.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stock = copyStock(stock)
	s.history = copyHistory(history)
	return nil
}

func (s *MemoryStore) Close() {}

func copyStock(records []models.StockRecord) []models.StockRecord {
	out := make([]models.StockRecord, len(records))
	copy(out, records)
	return out
}

func copyHistory(entries []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	return out
}
