package ledger

import (
	"context"
	"errors"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
)

// ErrUnknownProductType is returned by Upsert when the entry references a
// product type (or writer) that no longer exists.
var ErrUnknownProductType = errors.New("unknown pba type")

// EntryReader reads single ledger entries.
type EntryReader interface {
	// GetEntry returns the entry for (date, productTypeID), or nil without error when absent.
	GetEntry(ctx context.Context, date types.Date, productTypeID id.ID) (*Entry, error)
}

// Repository defines ledger storage operations.
type Repository interface {
	EntryReader

	// GetEntryForUpdate is GetEntry that locks the row until the surrounding transaction ends.
	GetEntryForUpdate(ctx context.Context, date types.Date, productTypeID id.ID) (*Entry, error)

	// Upsert inserts the entry or overwrites the row with the same (date, product type).
	// ClosingStock and UpdatedAt are refreshed from storage.
	// A dangling reference is reported as ErrUnknownProductType.
	Upsert(ctx context.Context, e *Entry) error

	// ListByDate returns entries of one date joined with their product type, ordered by code.
	ListByDate(ctx context.Context, date types.Date) ([]EntryView, error)
}
