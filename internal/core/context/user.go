// Package context provides request-scoped values extraction.
package context

import (
	"context"

	"doccstock/internal/core/id"
)

// Role names carried in tokens.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// UserContext is the acting user of a request.
// Write operations receive it explicitly; middleware also stores it in context.
type UserContext struct {
	UserID   id.ID
	Username string
	Role     string
}

type userContextKey struct{}

// WithUser adds UserContext to context.
func WithUser(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// GetUser returns UserContext from context.
func GetUser(ctx context.Context) *UserContext {
	if v, ok := ctx.Value(userContextKey{}).(*UserContext); ok {
		return v
	}
	return nil
}
