package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"pantry-tracker/internal/models"
	"pantry-tracker/internal/store"

	"github.com/stretchr/testify/suite"
)

type ServiceSuite struct {
	suite.Suite
	store *store.MemoryStore
	svc   *Service
	ctx   context.Context
	now   time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = store.NewMemoryStore()
	s.ctx = context.Background()
	s.now = time.Date(2026, time.March, 14, 15, 0, 0, 0, time.UTC)
	s.svc = s.newService()
}

func (s *ServiceSuite) newService() *Service {
	svc := NewService(s.store, nil, nil)
	svc.now = func() time.Time { return s.now }

	var n int
	svc.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return svc
}

func (s *ServiceSuite) addItem(name, category string, min, current any) models.StockView {
	view, err := s.svc.AddItem(s.ctx, models.CreateItemRequest{
		Name:            name,
		Category:        category,
		MinQuantity:     min,
		CurrentQuantity: current,
	})
	s.Require().NoError(err)
	return view
}

func (s *ServiceSuite) TestLoadSeedsEmptyStock() {
	s.Require().NoError(s.svc.Load(s.ctx))

	groups := s.svc.StockGroups()
	s.NotEmpty(groups)

	var total int
	for _, g := range groups {
		total += len(g.Items)
	}
	s.Equal(6, total)

	s.Run("seed is persisted and not repeated", func() {
		again := s.newService()
		s.Require().NoError(again.Load(s.ctx))

		var count int
		for _, g := range again.StockGroups() {
			count += len(g.Items)
		}
		s.Equal(6, count)
	})
}

func (s *ServiceSuite) TestLoadDerivesManualQuantities() {
	s.Require().NoError(s.store.SaveStock(s.ctx, []models.StockRecord{
		{ID: "a", Name: "Coffee", Category: "Beverages", MinQuantity: 6, CurrentQuantity: 2, ManualQuantity: 0},
		{ID: "b", Name: "Rice", Category: "Pantry", MinQuantity: 2, CurrentQuantity: 1, ManualQuantity: 9},
	}))
	s.Require().NoError(s.svc.Load(s.ctx))

	items, _ := s.svc.ShoppingList()
	s.Require().Len(items, 2)
	s.Equal(4, items[0].ManualQuantity) // raised to the shortfall
	s.Equal(9, items[1].ManualQuantity) // user intent preserved
}

func (s *ServiceSuite) TestAddItem() {
	view := s.addItem("Coffee", "Beverages", 6, 2)

	s.Equal("id-1", view.ID)
	s.Equal(4, view.QuantityToBuy)
	s.Equal(models.StatusNeedsPurchase, view.Status)
	s.Equal(4, view.ManualQuantity)
	s.Equal(0.0, view.UnitPrice)
	s.Nil(view.LastPurchaseDate)

	s.Run("non-numeric quantities coerce to zero", func() {
		view := s.addItem("Mystery", "Pantry", "lots", nil)
		s.Equal(0, view.MinQuantity)
		s.Equal(0, view.CurrentQuantity)
		s.Equal(models.StatusAtLimit, view.Status)
	})

	s.Run("new item is persisted", func() {
		records, err := s.store.LoadStock(s.ctx)
		s.Require().NoError(err)
		s.Len(records, 2)
	})
}

func (s *ServiceSuite) TestEditItem() {
	view := s.addItem("Rice", "Pantry", 2, 3)

	s.Run("edit resets the manual quantity to the shortfall", func() {
		_, err := s.svc.SetManualQuantity(s.ctx, view.ID, 10)
		s.Require().NoError(err)

		edited, err := s.svc.EditItem(s.ctx, view.ID, models.UpdateItemRequest{
			MinQuantity:     5,
			CurrentQuantity: 1,
		})
		s.Require().NoError(err)
		s.Equal(4, edited.ManualQuantity)
		s.Equal(models.StatusNeedsPurchase, edited.Status)
	})

	s.Run("non-numeric input coerces to zero", func() {
		edited, err := s.svc.EditItem(s.ctx, view.ID, models.UpdateItemRequest{
			MinQuantity:     "many",
			CurrentQuantity: nil,
		})
		s.Require().NoError(err)
		s.Equal(0, edited.MinQuantity)
		s.Equal(0, edited.CurrentQuantity)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.svc.EditItem(s.ctx, "missing", models.UpdateItemRequest{})
		s.ErrorIs(err, models.ErrNotFound)
	})
}

func (s *ServiceSuite) TestDeleteItem() {
	view := s.addItem("Rice", "Pantry", 2, 3)

	s.Run("history survives the delete", func() {
		_, err := s.svc.SetManualQuantity(s.ctx, view.ID, 2)
		s.Require().NoError(err)
		outcome, err := s.svc.CompleteOne(s.ctx, view.ID)
		s.Require().NoError(err)
		s.Require().True(outcome.Purchased)

		s.Require().NoError(s.svc.DeleteItem(s.ctx, view.ID))

		s.Empty(s.svc.StockGroups())
		s.Len(s.svc.History(), 1)
	})

	s.Run("unknown id is not found", func() {
		s.ErrorIs(s.svc.DeleteItem(s.ctx, view.ID), models.ErrNotFound)
	})
}

func (s *ServiceSuite) TestSetPrice() {
	view := s.addItem("Coffee", "Beverages", 1, 0)

	updated, err := s.svc.SetPrice(s.ctx, view.ID, 5.20)
	s.Require().NoError(err)
	s.Equal(5.20, updated.UnitPrice)

	s.Run("negative price clamps to zero", func() {
		updated, err := s.svc.SetPrice(s.ctx, view.ID, -3)
		s.Require().NoError(err)
		s.Equal(0.0, updated.UnitPrice)
	})

	s.Run("price writes append no history", func() {
		s.Empty(s.svc.History())
	})
}

func (s *ServiceSuite) TestSetManualQuantity() {
	view := s.addItem("Coffee", "Beverages", 6, 2)

	s.Run("can raise above the shortfall", func() {
		updated, err := s.svc.SetManualQuantity(s.ctx, view.ID, 10)
		s.Require().NoError(err)
		s.Equal(10, updated.ManualQuantity)
	})

	s.Run("derivation raises a value below the shortfall", func() {
		updated, err := s.svc.SetManualQuantity(s.ctx, view.ID, 1)
		s.Require().NoError(err)
		s.Equal(4, updated.ManualQuantity)
	})

	s.Run("invalid input coerces and rederives", func() {
		updated, err := s.svc.SetManualQuantity(s.ctx, view.ID, "a lot")
		s.Require().NoError(err)
		s.Equal(4, updated.ManualQuantity)
	})
}

func (s *ServiceSuite) TestCompleteOne() {
	view := s.addItem("Coffee", "Beverages", 6, 2)
	_, err := s.svc.SetPrice(s.ctx, view.ID, 5.20)
	s.Require().NoError(err)

	outcome, err := s.svc.CompleteOne(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Require().True(outcome.Purchased)

	s.Run("stock is updated and manual quantity reset", func() {
		s.Equal(6, outcome.Item.CurrentQuantity)
		s.Equal(0, outcome.Item.ManualQuantity)
		s.Equal(models.StatusAtLimit, outcome.Item.Status)
		s.Require().NotNil(outcome.Item.LastPurchaseDate)
		s.Equal(s.now, *outcome.Item.LastPurchaseDate)
	})

	s.Run("exactly one history entry is appended", func() {
		entries := s.svc.History()
		s.Require().Len(entries, 1)
		s.Equal("Coffee", entries[0].ItemName)
		s.Equal(4, entries[0].QuantityPurchased)
		s.InDelta(20.80, entries[0].TotalCost, 1e-9)
	})

	s.Run("second completion has nothing to purchase", func() {
		outcome, err := s.svc.CompleteOne(s.ctx, view.ID)
		s.Require().NoError(err)
		s.False(outcome.Purchased)
		s.Len(s.svc.History(), 1)
	})

	s.Run("both collections are persisted", func() {
		records, err := s.store.LoadStock(s.ctx)
		s.Require().NoError(err)
		s.Equal(6, records[0].CurrentQuantity)

		entries, err := s.store.LoadHistory(s.ctx)
		s.Require().NoError(err)
		s.Len(entries, 1)
	})

	s.Run("unknown id is not found", func() {
		_, err := s.svc.CompleteOne(s.ctx, "missing")
		s.ErrorIs(err, models.ErrNotFound)
	})
}

func (s *ServiceSuite) TestCompleteChecked() {
	coffee := s.addItem("Coffee", "Beverages", 1, 0)
	rice := s.addItem("Rice", "Pantry", 2, 1)
	milk := s.addItem("Milk", "Dairy", 2, 5) // nothing to buy
	s.addItem("Beans", "Pantry", 2, 0)       // needed but not checked

	s.Require().NoError(s.svc.ToggleChecked(coffee.ID, true))
	s.Require().NoError(s.svc.ToggleChecked(rice.ID, true))
	s.Require().NoError(s.svc.ToggleChecked(milk.ID, true))

	result, err := s.svc.CompleteChecked(s.ctx)
	s.Require().NoError(err)

	s.Run("skips do not block other items", func() {
		s.Equal(2, result.Succeeded)
		s.Equal(1, result.Skipped)
		s.Len(s.svc.History(), 2)
	})

	s.Run("unchecked items are untouched", func() {
		items, _ := s.svc.ShoppingList()
		s.Require().Len(items, 1)
		s.Equal("Beans", items[0].Name)
	})

	s.Run("purchased items are unchecked", func() {
		for _, g := range s.svc.StockGroups() {
			for _, item := range g.Items {
				if item.ID == coffee.ID || item.ID == rice.ID {
					s.False(item.Checked)
				}
			}
		}
	})
}

func (s *ServiceSuite) TestToggleChecked() {
	view := s.addItem("Rice", "Pantry", 2, 1)

	s.Require().NoError(s.svc.ToggleChecked(view.ID, true))

	s.Run("flag shows up in views", func() {
		items, _ := s.svc.ShoppingList()
		s.Require().Len(items, 1)
		s.True(items[0].Checked)
	})

	s.Run("flag is never persisted", func() {
		records, err := s.store.LoadStock(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(records, 1)

		reloaded := s.newService()
		s.Require().NoError(reloaded.Load(s.ctx))
		items, _ := reloaded.ShoppingList()
		s.Require().Len(items, 1)
		s.False(items[0].Checked)
	})

	s.Run("unknown id is not found", func() {
		s.ErrorIs(s.svc.ToggleChecked("missing", true), models.ErrNotFound)
	})
}

func (s *ServiceSuite) TestClearHistory() {
	view := s.addItem("Coffee", "Beverages", 1, 0)
	_, err := s.svc.CompleteOne(s.ctx, view.ID)
	s.Require().NoError(err)
	s.Require().Len(s.svc.History(), 1)

	s.Require().NoError(s.svc.ClearHistory(s.ctx))

	s.Empty(s.svc.History())
	entries, err := s.store.LoadHistory(s.ctx)
	s.Require().NoError(err)
	s.Empty(entries)
}

func (s *ServiceSuite) TestSnapshotRoundTrip() {
	coffee := s.addItem("Coffee", "Beverages", 6, 2)
	_, err := s.svc.SetPrice(s.ctx, coffee.ID, 5.20)
	s.Require().NoError(err)
	_, err = s.svc.CompleteOne(s.ctx, coffee.ID)
	s.Require().NoError(err)
	rice := s.addItem("Rice", "Pantry", 2, 1)
	s.Require().NoError(s.svc.ToggleChecked(rice.ID, true))

	document, err := json.Marshal(s.svc.ExportSnapshot())
	s.Require().NoError(err)

	s.Run("export carries no checked flags", func() {
		s.NotContains(string(document), `"checked"`)
	})

	other := NewService(store.NewMemoryStore(), nil, nil)
	s.Require().NoError(other.ImportSnapshot(s.ctx, document))

	s.Run("imported state is equivalent", func() {
		s.Equal(s.svc.ExportSnapshot(), other.ExportSnapshot())
	})

	s.Run("checked flags reset on import", func() {
		items, _ := other.ShoppingList()
		s.Require().NotEmpty(items)
		for _, item := range items {
			s.False(item.Checked)
		}
	})
}

func (s *ServiceSuite) TestImportRejectsMalformedDocuments() {
	view := s.addItem("Rice", "Pantry", 2, 1)

	cases := []struct {
		name     string
		document string
	}{
		{"missing history", `{"stock": []}`},
		{"missing stock", `{"history": []}`},
		{"not json", `{broken`},
	}

	for _, tc := range cases {
		s.Run(tc.name, func() {
			err := s.svc.ImportSnapshot(s.ctx, []byte(tc.document))
			s.ErrorIs(err, models.ErrInvalidSnapshot)

			// State untouched
			items, _ := s.svc.ShoppingList()
			s.Require().Len(items, 1)
			s.Equal(view.ID, items[0].ID)
		})
	}
}
