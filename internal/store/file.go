package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"pantry-tracker/internal/models"
)

const (
	stockFile   = "stock.json"
	historyFile = "history.json"
)

// FileStore mirrors each collection to its own JSON document under a data
// directory. Writes go through a temp file and rename so a crash mid-write
// never corrupts the previous snapshot.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) LoadStock(ctx context.Context) ([]models.StockRecord, error) {
	var records []models.StockRecord
	if err := s.read(stockFile, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *FileStore) SaveStock(ctx context.Context, records []models.StockRecord) error {
	if records == nil {
		records = []models.StockRecord{}
	}
	return s.write(stockFile, records)
}

func (s *FileStore) LoadHistory(ctx context.Context) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := s.read(historyFile, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *FileStore) SaveHistory(ctx context.Context, entries []models.HistoryEntry) error {
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	return s.write(historyFile, entries)
}

func (s *FileStore) Replace(ctx context.Context, stock []models.StockRecord, history []models.HistoryEntry) error {
	if err := s.SaveStock(ctx, stock); err != nil {
		return err
	}
	return s.SaveHistory(ctx, history)
}

func (s *FileStore) Close() {}

func (s *FileStore) read(name string, out any) error {
	data, err := os.ReadFile(filepath.Join(s.dir, name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

func (s *FileStore) write(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	path := filepath.Join(s.dir, name)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", name, err)
	}
	return nil
}
