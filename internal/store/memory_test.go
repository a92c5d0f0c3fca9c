package store

import (
	"context"
	"testing"
	"time"

	"pantry-tracker/internal/models"

	"github.com/stretchr/testify/suite"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *MemoryStore
	ctx   context.Context
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewMemoryStore()
	s.ctx = context.Background()
}

func (s *MemoryStoreSuite) TestStockRoundTrip() {
	records := []models.StockRecord{
		{ID: "a", Name: "Rice", Category: "Pantry", MinQuantity: 2, CurrentQuantity: 3},
		{ID: "b", Name: "Beans", Category: "Pantry", MinQuantity: 2, CurrentQuantity: 1, ManualQuantity: 1},
	}
	s.Require().NoError(s.store.SaveStock(s.ctx, records))

	loaded, err := s.store.LoadStock(s.ctx)
	s.Require().NoError(err)
	s.Equal(records, loaded)
}

func (s *MemoryStoreSuite) TestHistoryRoundTrip() {
	entries := []models.HistoryEntry{
		{ID: "h1", Date: time.Now().UTC(), ItemName: "Coffee", QuantityPurchased: 1, TotalCost: 5.20},
	}
	s.Require().NoError(s.store.SaveHistory(s.ctx, entries))

	loaded, err := s.store.LoadHistory(s.ctx)
	s.Require().NoError(err)
	s.Equal(entries, loaded)
}

func (s *MemoryStoreSuite) TestLoadedSlicesAreCopies() {
	records := []models.StockRecord{{ID: "a", Name: "Rice"}}
	s.Require().NoError(s.store.SaveStock(s.ctx, records))

	loaded, err := s.store.LoadStock(s.ctx)
	s.Require().NoError(err)
	loaded[0].Name = "Changed"

	again, err := s.store.LoadStock(s.ctx)
	s.Require().NoError(err)
	s.Equal("Rice", again[0].Name)
}

func (s *MemoryStoreSuite) TestReplace() {
	s.Require().NoError(s.store.SaveStock(s.ctx, []models.StockRecord{{ID: "old"}}))
	s.Require().NoError(s.store.SaveHistory(s.ctx, []models.HistoryEntry{{ID: "old"}}))

	stock := []models.StockRecord{{ID: "new-stock"}}
	history := []models.HistoryEntry{{ID: "new-history"}}
	s.Require().NoError(s.store.Replace(s.ctx, stock, history))

	loadedStock, err := s.store.LoadStock(s.ctx)
	s.Require().NoError(err)
	s.Equal(stock, loadedStock)

	loadedHistory, err := s.store.LoadHistory(s.ctx)
	s.Require().NoError(err)
	s.Equal(history, loadedHistory)
}
