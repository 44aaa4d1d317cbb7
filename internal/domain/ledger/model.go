// Package ledger records daily stock movements per product type and
// carries each day's closing stock forward as the next day's opening stock.
package ledger

import (
	"time"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
)

// InitialStockNote is stored on entries written by SeedInitialStock.
const InitialStockNote = "initial stock"

// Quantity bounds. Each submitted quantity is at most MaxQuantity and a
// carried opening stock must stay within MaxStock in absolute value, which
// keeps the closing stock inside int64 and the BIGINT column.
const (
	MaxQuantity int64 = 1_000_000_000_000
	MaxStock    int64 = 1_000_000_000_000_000
)

// Entry is one (date, product type) row of the daily ledger.
// ClosingStock always equals OpeningStock + Production - Delivery - Spoilage and may be negative.
type Entry struct {
	Date          types.Date
	ProductTypeID id.ID
	OpeningStock  int64
	Production    int64
	Delivery      int64
	Spoilage      int64
	ClosingStock  int64
	Notes         string
	WrittenBy     *id.ID
	UpdatedAt     time.Time
}

// EntryView is an entry joined with its product type.
type EntryView struct {
	Entry
	Code        string
	Description string
}

// MovementInput is one item of a daily movements batch.
// Quantities are already normalized to non-negative integers by the caller.
type MovementInput struct {
	ProductTypeID id.ID
	Production    int64
	Delivery      int64
	Spoilage      int64
	Notes         string
}

// SeedInput is one item of an initial stock batch.
type SeedInput struct {
	ProductTypeID id.ID
	OpeningStock  int64
}

// ComputeClosing applies the day's flows to the opening stock.
func ComputeClosing(opening, production, delivery, spoilage int64) int64 {
	return opening + production - delivery - spoilage
}

// Recompute refreshes ClosingStock from the other quantities.
func (e *Entry) Recompute() {
	e.ClosingStock = ComputeClosing(e.OpeningStock, e.Production, e.Delivery, e.Spoilage)
}
