package reports

import (
	"context"

	"doccstock/internal/core/types"
)

// Repository defines report data access.
type Repository interface {
	// Snapshot returns every product type joined with its entry for date, ordered by code.
	Snapshot(ctx context.Context, date types.Date) ([]SnapshotRow, error)

	// FlowTotals sums flows for dates in [from, to].
	FlowTotals(ctx context.Context, from, to types.Date) (FlowTotals, error)

	// DailyTotals returns per-date flow sums for [from, to], ascending. Dates without entries are absent.
	DailyTotals(ctx context.Context, from, to types.Date) ([]DailyTotals, error)

	// History returns filtered entries ordered by date DESC, then code ASC.
	History(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error)

	// RangeEntries returns entries in [from, to] ordered by date ASC, then code ASC.
	RangeEntries(ctx context.Context, from, to types.Date) ([]RollupEntry, error)
}
