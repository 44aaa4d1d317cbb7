// Package reports provides read-only aggregates over the daily stock ledger.
package reports

import (
	"time"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
)

// --- Dashboard ---

// SnapshotRow is one product type with its entry for the snapshot date.
// Types without an entry carry zero quantities and HasEntry=false.
type SnapshotRow struct {
	ProductTypeID id.ID         `db:"pba_type_id"`
	Code          string        `db:"code"`
	Description   string        `db:"description"`
	OpeningStock  int64         `db:"stock_initial"`
	Production    int64         `db:"production"`
	Delivery      int64         `db:"livraison"`
	Spoilage      int64         `db:"avaries"`
	ClosingStock  int64         `db:"stock_actuel"`
	HasEntry      bool          `db:"has_entry"`
	Status        ledger.Status `db:"-"`
}

// FlowTotals sums the daily flows over a date range.
type FlowTotals struct {
	Production int64 `db:"total_production"`
	Delivery   int64 `db:"total_livraison"`
	Spoilage   int64 `db:"total_avaries"`
}

// DailyTotals sums the flows of every product type for one date.
type DailyTotals struct {
	Date       time.Time `db:"date"`
	Production int64     `db:"total_production"`
	Delivery   int64     `db:"total_livraison"`
	Spoilage   int64     `db:"total_avaries"`
}

// Dashboard combines the current snapshot, month-to-date totals and the trailing week.
type Dashboard struct {
	Date          types.Date
	Snapshot      []SnapshotRow
	MonthStart    types.Date
	MonthlyTotals FlowTotals
	TrailingFrom  types.Date
	Trailing      []DailyTotals
}

// --- History ---

// HistoryFilter narrows the range history. Nil bounds are open.
type HistoryFilter struct {
	StartDate *types.Date
	EndDate   *types.Date
	Code      string
}

// HistoryRow is a ledger entry joined with its product type and writer.
type HistoryRow struct {
	Date          time.Time     `db:"date"`
	ProductTypeID id.ID         `db:"pba_type_id"`
	Code          string        `db:"code"`
	Description   string        `db:"description"`
	OpeningStock  int64         `db:"stock_initial"`
	Production    int64         `db:"production"`
	Delivery      int64         `db:"livraison"`
	Spoilage      int64         `db:"avaries"`
	ClosingStock  int64         `db:"stock_actuel"`
	Notes         *string       `db:"observations"`
	Username      *string       `db:"username"`
	UpdatedAt     time.Time     `db:"updated_at"`
	Status        ledger.Status `db:"-"`
}

// --- Inventory ---

// RollupEntry is the input of Rollup: one ledger entry keyed by product code.
type RollupEntry struct {
	Date         time.Time `db:"date" validate:"required"`
	Code         string    `db:"code" validate:"required"`
	OpeningStock int64     `db:"stock_initial"`
	Production   int64     `db:"production" validate:"gte=0"`
	Delivery     int64     `db:"livraison" validate:"gte=0"`
	Spoilage     int64     `db:"avaries" validate:"gte=0"`
	ClosingStock int64     `db:"stock_actuel"`
}

// InventoryRow aggregates one product type over the report range.
type InventoryRow struct {
	Code         string
	Description  string
	OpeningStock int64
	Production   int64
	Delivery     int64
	Spoilage     int64
	ClosingStock int64
	EntryCount   int
	Status       ledger.Status
}

// InventoryTotals sums every numeric column of the rows.
type InventoryTotals struct {
	OpeningStock int64
	Production   int64
	Delivery     int64
	Spoilage     int64
	ClosingStock int64
	EntryCount   int
}

// InventoryReport is the rollup of a date range.
type InventoryReport struct {
	Period    Period
	StartDate types.Date
	EndDate   types.Date
	Rows      []InventoryRow
	Totals    InventoryTotals
}
