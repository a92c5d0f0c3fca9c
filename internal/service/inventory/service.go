package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"pantry-tracker/internal/engine"
	"pantry-tracker/internal/models"
	"pantry-tracker/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ChangeNotifier is told after each successful mutation so the presentation
// layer can re-render. Implemented by the websocket hub.
type ChangeNotifier interface {
	StockChanged()
	HistoryChanged()
	SnapshotImported()
}

// Service owns the two collections and the ephemeral checked set. Every
// operation runs to completion under one mutex, so there is exactly one
// logical actor and no interleaving of mutations. After each mutation both
// in-memory collections are mirrored to the store as full snapshots.
type Service struct {
	mu       sync.Mutex
	store    store.Store
	notifier ChangeNotifier
	logger   *zap.Logger

	stock   []models.StockRecord
	history []models.HistoryEntry
	checked map[string]bool

	now   func() time.Time
	newID func() string
}

func NewService(st store.Store, notifier ChangeNotifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    st,
		notifier: notifier,
		logger:   logger,
		checked:  make(map[string]bool),
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Load reads both collections from the store. On first run the stock
// collection is seeded with a fixed set of example items. The checked flags
// are session state and always start false.
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stock, err := s.store.LoadStock(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stock: %w", err)
	}
	history, err := s.store.LoadHistory(ctx)
	if err != nil {
		return fmt.Errorf("failed to load history: %w", err)
	}

	if len(stock) == 0 {
		stock = s.seedStock()
		s.logger.Info("stock empty, seeding example items", zap.Int("count", len(stock)))
	}

	s.stock = engine.DeriveAll(stock)
	s.history = history
	s.checked = make(map[string]bool)

	if err := s.store.SaveStock(ctx, s.stock); err != nil {
		return fmt.Errorf("failed to persist stock after load: %w", err)
	}
	s.logger.Info("collections loaded",
		zap.Int("stock", len(s.stock)),
		zap.Int("history", len(s.history)))
	return nil
}

// StockGroups returns the stock table projection, grouped by category.
func (s *Service) StockGroups() []models.StockGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.GroupStock(s.views())
}

// ShoppingList returns the items needing replenishment plus the estimated
// total cost of buying them all at their manual quantities.
func (s *Service) ShoppingList() ([]models.StockView, float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := engine.ShoppingList(s.views())
	return items, engine.TotalEstimatedCost(items)
}

// History returns the purchase log, newest first.
func (s *Service) History() []models.HistoryEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return engine.SortHistory(s.history)
}

// AddItem creates a new stock record. Price starts at 0 until the first
// purchase sets it; the manual quantity starts at the derived shortfall.
func (s *Service) AddItem(ctx context.Context, req models.CreateItemRequest) (models.StockView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record := engine.Derive(models.StockRecord{
		ID:                s.newID(),
		Name:              req.Name,
		Category:          req.Category,
		PurchaseFrequency: req.PurchaseFrequency,
		MinQuantity:       engine.CoerceQuantity(req.MinQuantity),
		CurrentQuantity:   engine.CoerceQuantity(req.CurrentQuantity),
	})
	s.stock = append(s.stock, record)

	if err := s.persistStock(ctx); err != nil {
		return models.StockView{}, err
	}
	s.notifyStock()
	s.logger.Info("stock item added", zap.String("id", record.ID), zap.String("name", record.Name))
	return engine.View(record, false), nil
}

// EditItem applies new quantities (and optionally name, category and
// frequency) to a record. Unlike passive derivation, an edit always resets
// the manual quantity to the fresh shortfall.
func (s *Service) EditItem(ctx context.Context, id string, req models.UpdateItemRequest) (models.StockView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return models.StockView{}, err
	}

	r := s.stock[i]
	if req.Name != nil {
		r.Name = *req.Name
	}
	if req.Category != nil {
		r.Category = *req.Category
	}
	if req.PurchaseFrequency != nil {
		r.PurchaseFrequency = *req.PurchaseFrequency
	}
	r.MinQuantity = engine.CoerceQuantity(req.MinQuantity)
	r.CurrentQuantity = engine.CoerceQuantity(req.CurrentQuantity)
	r.ManualQuantity = engine.QuantityToBuy(r.MinQuantity, r.CurrentQuantity)
	s.stock[i] = r

	if err := s.persistStock(ctx); err != nil {
		return models.StockView{}, err
	}
	s.notifyStock()
	return engine.View(r, s.checked[id]), nil
}

// DeleteItem removes a record. History entries referencing it are immutable
// facts and stay untouched.
func (s *Service) DeleteItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return err
	}
	s.stock = append(s.stock[:i], s.stock[i+1:]...)
	delete(s.checked, id)

	if err := s.persistStock(ctx); err != nil {
		return err
	}
	s.notifyStock()
	s.logger.Info("stock item deleted", zap.String("id", id))
	return nil
}

// SetPrice writes the unit price of a record. Invalid or negative input is
// coerced to 0; no history is appended.
func (s *Service) SetPrice(ctx context.Context, id string, value any) (models.StockView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return models.StockView{}, err
	}
	s.stock[i].UnitPrice = engine.CoercePrice(value)
	s.stock[i] = engine.Derive(s.stock[i])

	if err := s.persistStock(ctx); err != nil {
		return models.StockView{}, err
	}
	s.notifyStock()
	return engine.View(s.stock[i], s.checked[id]), nil
}

// SetManualQuantity writes the intended purchase quantity of a record.
// Invalid input coerces to 0 and the following derivation raises the value
// back to the shortfall when it lands below it.
func (s *Service) SetManualQuantity(ctx context.Context, id string, value any) (models.StockView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return models.StockView{}, err
	}
	s.stock[i].ManualQuantity = engine.CoerceQuantity(value)
	s.stock[i] = engine.Derive(s.stock[i])

	if err := s.persistStock(ctx); err != nil {
		return models.StockView{}, err
	}
	s.notifyStock()
	return engine.View(s.stock[i], s.checked[id]), nil
}

// ToggleChecked flips the transient "in cart" marker. The flag lives outside
// the durable record, so nothing is persisted.
func (s *Service) ToggleChecked(id string, checked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.indexOf(id); err != nil {
		return err
	}
	if checked {
		s.checked[id] = true
	} else {
		delete(s.checked, id)
	}
	s.notifyStock()
	return nil
}

// PurchaseOutcome reports what a completion attempt did.
type PurchaseOutcome struct {
	Purchased bool                 `json:"purchased"`
	Item      *models.StockView    `json:"item,omitempty"`
	Entry     *models.HistoryEntry `json:"entry,omitempty"`
}

// CompleteOne finishes the purchase of a single item. A zero manual
// quantity means there is nothing to purchase: the call reports that as an
// outcome and mutates nothing.
func (s *Service) CompleteOne(ctx context.Context, id string) (PurchaseOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, err := s.indexOf(id)
	if err != nil {
		return PurchaseOutcome{}, err
	}

	record, entry, ok := engine.Purchase(s.stock[i], s.now(), s.newID())
	if !ok {
		return PurchaseOutcome{Purchased: false}, nil
	}
	s.stock[i] = record
	s.history = append(s.history, entry)
	delete(s.checked, id)

	if err := s.persistAll(ctx); err != nil {
		return PurchaseOutcome{}, err
	}
	s.notifyStock()
	s.notifyHistory()
	s.logger.Info("purchase completed",
		zap.String("item", entry.ItemName),
		zap.Int("quantity", entry.QuantityPurchased),
		zap.Float64("total_cost", entry.TotalCost))

	view := engine.View(record, false)
	return PurchaseOutcome{Purchased: true, Item: &view, Entry: &entry}, nil
}

// BulkResult summarizes a checked-item completion pass.
type BulkResult struct {
	Succeeded int `json:"succeeded"`
	Skipped   int `json:"skipped"`
}

// CompleteChecked finishes every checked item independently. Items whose
// manual quantity is zero are skipped and counted; one skip never blocks or
// rolls back the others. Persistence happens once after the whole pass.
func (s *Service) CompleteChecked(ctx context.Context) (BulkResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var result BulkResult
	now := s.now()
	for i, r := range s.stock {
		if !s.checked[r.ID] {
			continue
		}
		record, entry, ok := engine.Purchase(r, now, s.newID())
		if !ok {
			result.Skipped++
			continue
		}
		s.stock[i] = record
		s.history = append(s.history, entry)
		delete(s.checked, r.ID)
		result.Succeeded++
	}

	if result.Succeeded > 0 {
		if err := s.persistAll(ctx); err != nil {
			return BulkResult{}, err
		}
		s.notifyStock()
		s.notifyHistory()
	}
	s.logger.Info("bulk purchase completed",
		zap.Int("succeeded", result.Succeeded),
		zap.Int("skipped", result.Skipped))
	return result, nil
}

// ClearHistory empties the purchase log.
func (s *Service) ClearHistory(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = nil
	if err := s.persistHistory(ctx); err != nil {
		return err
	}
	s.notifyHistory()
	s.logger.Info("purchase history cleared")
	return nil
}

// ExportSnapshot returns the full-state document. Checked flags live outside
// the durable records, so the export carries none.
func (s *Service) ExportSnapshot() models.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := models.Snapshot{
		Stock:   make([]models.StockRecord, len(s.stock)),
		History: make([]models.HistoryEntry, len(s.history)),
	}
	copy(snapshot.Stock, s.stock)
	copy(snapshot.History, s.history)
	return snapshot
}

// ImportSnapshot replaces both collections wholesale. A document missing
// either top-level collection is rejected and state stays untouched.
func (s *Service) ImportSnapshot(ctx context.Context, document []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var doc struct {
		Stock   *[]models.StockRecord  `json:"stock"`
		History *[]models.HistoryEntry `json:"history"`
	}
	if err := json.Unmarshal(document, &doc); err != nil {
		return fmt.Errorf("%w: %v", models.ErrInvalidSnapshot, err)
	}
	if doc.Stock == nil || doc.History == nil {
		return fmt.Errorf("%w: missing stock or history collection", models.ErrInvalidSnapshot)
	}

	stock := engine.DeriveAll(*doc.Stock)
	history := *doc.History
	if err := s.store.Replace(ctx, stock, history); err != nil {
		return fmt.Errorf("failed to persist imported snapshot: %w", err)
	}

	s.stock = stock
	s.history = history
	s.checked = make(map[string]bool)
	if s.notifier != nil {
		s.notifier.SnapshotImported()
	}
	s.logger.Info("snapshot imported",
		zap.Int("stock", len(s.stock)),
		zap.Int("history", len(s.history)))
	return nil
}

func (s *Service) views() []models.StockView {
	views := make([]models.StockView, len(s.stock))
	for i, r := range s.stock {
		views[i] = engine.View(r, s.checked[r.ID])
	}
	return views
}

func (s *Service) indexOf(id string) (int, error) {
	for i, r := range s.stock {
		if r.ID == id {
			return i, nil
		}
	}
	return 0, models.ErrNotFound
}

func (s *Service) persistStock(ctx context.Context) error {
	if err := s.store.SaveStock(ctx, s.stock); err != nil {
		return fmt.Errorf("failed to persist stock: %w", err)
	}
	return nil
}

func (s *Service) persistHistory(ctx context.Context) error {
	if err := s.store.SaveHistory(ctx, s.history); err != nil {
		return fmt.Errorf("failed to persist history: %w", err)
	}
	return nil
}

func (s *Service) persistAll(ctx context.Context) error {
	if err := s.persistStock(ctx); err != nil {
		return err
	}
	return s.persistHistory(ctx)
}

func (s *Service) notifyStock() {
	if s.notifier != nil {
		s.notifier.StockChanged()
	}
}

func (s *Service) notifyHistory() {
	if s.notifier != nil {
		s.notifier.HistoryChanged()
	}
}

func (s *Service) seedStock() []models.StockRecord {
	seeds := []models.StockRecord{
		{Name: "Rice", Category: "Pantry", PurchaseFrequency: "weekly", MinQuantity: 2, CurrentQuantity: 3},
		{Name: "Beans", Category: "Pantry", PurchaseFrequency: "weekly", MinQuantity: 2, CurrentQuantity: 1},
		{Name: "Coffee", Category: "Beverages", PurchaseFrequency: "biweekly", MinQuantity: 1, CurrentQuantity: 0},
		{Name: "Milk", Category: "Dairy", PurchaseFrequency: "weekly", MinQuantity: 6, CurrentQuantity: 6},
		{Name: "Laundry soap", Category: "Cleaning", PurchaseFrequency: "monthly", MinQuantity: 1, CurrentQuantity: 2},
		{Name: "Toilet paper", Category: "Bathroom", PurchaseFrequency: "monthly", MinQuantity: 4, CurrentQuantity: 2},
	}
	for i := range seeds {
		seeds[i].ID = s.newID()
	}
	return seeds
}
