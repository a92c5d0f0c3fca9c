package engine

import (
	"sort"
	"time"

	"pantry-tracker/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Category and name ordering follows the display locale rather than byte
// order, so accented names sort where a user expects them.
var collator = collate.New(language.Portuguese, collate.Loose)

// QuantityToBuy is the derived shortfall of a record.
func QuantityToBuy(minQuantity, currentQuantity int) int {
	if need := minQuantity - currentQuantity; need > 0 {
		return need
	}
	return 0
}

// StatusFor classifies a record. The rules are evaluated in order and the
// first match wins, so currentQuantity == minQuantity is at_limit, not
// needs_purchase.
func StatusFor(minQuantity, currentQuantity int) models.StockStatus {
	switch {
	case currentQuantity > minQuantity:
		return models.StatusSufficient
	case currentQuantity == minQuantity:
		return models.StatusAtLimit
	case currentQuantity > 0:
		return models.StatusNeedsPurchase
	default:
		return models.StatusOutOfStock
	}
}

// Derive reconciles the manual purchase quantity of a record against its
// freshly computed shortfall. The suggestion is raised to at least the
// shortfall, but a user-entered value above it is never lowered. Derive is
// idempotent.
func Derive(r models.StockRecord) models.StockRecord {
	if need := QuantityToBuy(r.MinQuantity, r.CurrentQuantity); r.ManualQuantity < need {
		r.ManualQuantity = need
	}
	return r
}

// DeriveAll runs Derive over every record. It runs on load and after any
// quantity-affecting change.
func DeriveAll(records []models.StockRecord) []models.StockRecord {
	out := make([]models.StockRecord, len(records))
	for i, r := range records {
		out[i] = Derive(r)
	}
	return out
}

// View projects a record into its display-ready form. The checked flag is
// session state owned by the caller, not part of the record.
func View(r models.StockRecord, checked bool) models.StockView {
	return models.StockView{
		StockRecord:   r,
		QuantityToBuy: QuantityToBuy(r.MinQuantity, r.CurrentQuantity),
		Status:        StatusFor(r.MinQuantity, r.CurrentQuantity),
		Checked:       checked,
		EstimatedCost: float64(r.ManualQuantity) * r.UnitPrice,
	}
}

// ShoppingList filters the views that need replenishment and orders them by
// category. The sort is stable so ties keep their collection order.
func ShoppingList(views []models.StockView) []models.StockView {
	var items []models.StockView
	for _, v := range views {
		if v.Status == models.StatusNeedsPurchase || v.Status == models.StatusOutOfStock {
			items = append(items, v)
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return collator.CompareString(items[i].Category, items[j].Category) < 0
	})
	return items
}

// TotalEstimatedCost sums the estimated cost of a shopping list.
func TotalEstimatedCost(views []models.StockView) float64 {
	var total float64
	for _, v := range views {
		total += v.EstimatedCost
	}
	return total
}

// GroupStock arranges views into category groups for the stock table,
// categories ascending and names ascending within each group.
func GroupStock(views []models.StockView) []models.StockGroup {
	byCategory := make(map[string][]models.StockView)
	var categories []string
	for _, v := range views {
		if _, ok := byCategory[v.Category]; !ok {
			categories = append(categories, v.Category)
		}
		byCategory[v.Category] = append(byCategory[v.Category], v)
	}
	sort.SliceStable(categories, func(i, j int) bool {
		return collator.CompareString(categories[i], categories[j]) < 0
	})

	groups := make([]models.StockGroup, 0, len(categories))
	for _, category := range categories {
		items := byCategory[category]
		sort.SliceStable(items, func(i, j int) bool {
			return collator.CompareString(items[i].Name, items[j].Name) < 0
		})
		groups = append(groups, models.StockGroup{Category: category, Items: items})
	}
	return groups
}

// Purchase applies a completed purchase to a record. The quantity bought is
// the manual quantity, which lets a user buy more than the shortfall. When
// the manual quantity is zero there is nothing to purchase: the record is
// returned unchanged and no history entry is produced.
func Purchase(r models.StockRecord, now time.Time, entryID string) (models.StockRecord, models.HistoryEntry, bool) {
	if r.ManualQuantity <= 0 {
		return r, models.HistoryEntry{}, false
	}

	quantity := r.ManualQuantity
	r.CurrentQuantity += quantity
	r.LastPurchaseDate = &now
	r.ManualQuantity = 0

	entry := models.HistoryEntry{
		ID:                entryID,
		Date:              now,
		ItemName:          r.Name,
		QuantityPurchased: quantity,
		TotalCost:         float64(quantity) * r.UnitPrice,
	}
	return r, entry, true
}

// SortHistory returns the entries ordered newest first.
func SortHistory(entries []models.HistoryEntry) []models.HistoryEntry {
	out := make([]models.HistoryEntry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}
