package pba

import (
	"context"

	"doccstock/internal/core/id"
)

// Repository defines product type storage operations.
type Repository interface {
	// List returns every product type ordered by code.
	List(ctx context.Context) ([]ProductType, error)

	// GetByIDs returns the product types found among ids, keyed by ID. Unknown IDs are absent.
	GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]ProductType, error)

	// GetByCode returns a product type or a not-found error.
	GetByCode(ctx context.Context, code string) (*ProductType, error)

	// Create inserts a product type. A taken code yields a duplicate error.
	Create(ctx context.Context, p *ProductType) error
}
