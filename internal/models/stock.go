package models

import "time"

// StockStatus is the derived replenishment state of a stock record.
type StockStatus string

const (
	StatusSufficient    StockStatus = "sufficient"
	StatusAtLimit       StockStatus = "at_limit"
	StatusNeedsPurchase StockStatus = "needs_purchase"
	StatusOutOfStock    StockStatus = "out_of_stock"
)

// StockRecord is one tracked inventory item. Only durable fields live here;
// derived values and the transient "in cart" flag belong to StockView.
type StockRecord struct {
	ID                string     `json:"id" db:"id"`
	Name              string     `json:"name" db:"name"`
	Category          string     `json:"category" db:"category"`
	PurchaseFrequency string     `json:"purchase_frequency" db:"purchase_frequency"`
	MinQuantity       int        `json:"min_quantity" db:"min_quantity"`
	CurrentQuantity   int        `json:"current_quantity" db:"current_quantity"`
	UnitPrice         float64    `json:"unit_price" db:"unit_price"`
	ManualQuantity    int        `json:"manual_quantity" db:"manual_quantity"`
	LastPurchaseDate  *time.Time `json:"last_purchase_date" db:"last_purchase_date"`
}

// StockView is a display-ready projection of a StockRecord.
type StockView struct {
	StockRecord
	QuantityToBuy int         `json:"quantity_to_buy"`
	Status        StockStatus `json:"status"`
	Checked       bool        `json:"checked"`
	EstimatedCost float64     `json:"estimated_cost"`
}

// StockGroup is one category section of the stock table.
type StockGroup struct {
	Category string      `json:"category"`
	Items    []StockView `json:"items"`
}

type CreateItemRequest struct {
	Name              string `json:"name" validate:"required,min=1,max=255"`
	Category          string `json:"category" validate:"required,min=1,max=255"`
	PurchaseFrequency string `json:"purchase_frequency" validate:"max=255"`
	MinQuantity       any    `json:"min_quantity"`
	CurrentQuantity   any    `json:"current_quantity"`
}

type UpdateItemRequest struct {
	Name              *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Category          *string `json:"category,omitempty" validate:"omitempty,min=1,max=255"`
	PurchaseFrequency *string `json:"purchase_frequency,omitempty" validate:"omitempty,max=255"`
	MinQuantity       any     `json:"min_quantity"`
	CurrentQuantity   any     `json:"current_quantity"`
}

type SetPriceRequest struct {
	Price any `json:"price"`
}

type SetManualQuantityRequest struct {
	Quantity any `json:"quantity"`
}

type SetCheckedRequest struct {
	Checked bool `json:"checked"`
}
