package auth

import (
	"context"

	"doccstock/internal/core/id"
)

// UserRepository defines user storage operations.
type UserRepository interface {
	// Create creates a new user. A taken username yields a duplicate error.
	Create(ctx context.Context, user *User) error

	// GetByID retrieves user by ID.
	GetByID(ctx context.Context, userID id.ID) (*User, error)

	// GetByUsername retrieves user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdatePassword replaces the password hash.
	UpdatePassword(ctx context.Context, userID id.ID, passwordHash string) error
}
