package ledger

import (
	"context"
	"fmt"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
)

// Resolver derives a day's opening stock from the previous calendar day.
type Resolver struct {
	entries EntryReader
}

// NewResolver creates a carry-forward resolver.
func NewResolver(entries EntryReader) *Resolver {
	return &Resolver{entries: entries}
}

// Resolve returns the closing stock of (date-1, productTypeID).
// inherited is false when the previous day has no entry; the value is then 0.
func (r *Resolver) Resolve(ctx context.Context, date types.Date, productTypeID id.ID) (opening int64, inherited bool, err error) {
	prev, err := r.entries.GetEntry(ctx, date.PrevDay(), productTypeID)
	if err != nil {
		return 0, false, fmt.Errorf("read previous day %s: %w", date.PrevDay(), err)
	}
	if prev == nil {
		return 0, false, nil
	}
	return prev.ClosingStock, true, nil
}

// ResolveOpeningStock returns the opening stock for (date, productTypeID).
func (r *Resolver) ResolveOpeningStock(ctx context.Context, date types.Date, productTypeID id.ID) (int64, error) {
	opening, _, err := r.Resolve(ctx, date, productTypeID)
	return opening, err
}
