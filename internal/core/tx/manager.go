// Package tx provides transaction management abstractions.
// Domain services depend on these interfaces; the pgx implementation
// lives in infrastructure/storage/postgres.
package tx

import (
	"context"
)

// Manager runs a unit of work inside one database transaction.
type Manager interface {
	// RunInTransaction executes fn within a transaction.
	// A non-nil error from fn rolls everything back; otherwise it commits.
	// Nested calls reuse the transaction already carried by ctx.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReadOnlyManager extends Manager with read-only transactions.
type ReadOnlyManager interface {
	Manager

	// ReadOnly executes fn in a read-only transaction.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Passthrough is a Manager that runs fn directly without a transaction.
// Used by unit tests whose repositories are in-memory.
type Passthrough struct{}

// RunInTransaction calls fn with the given context.
func (Passthrough) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
