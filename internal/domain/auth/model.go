package auth

import (
	"strings"
	"time"

	"doccstock/internal/core/apperror"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
)

// User represents a system user.
type User struct {
	ID           id.ID     `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         string    `db:"role" json:"role"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// NewUser creates a new user.
func NewUser(username, passwordHash, role string) *User {
	return &User{
		ID:           id.New(),
		Username:     strings.TrimSpace(username),
		PasswordHash: passwordHash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
}

// Validate validates user data.
func (u *User) Validate() error {
	if u.Username == "" {
		return apperror.NewValidation("username is required").WithDetail("field", "username")
	}
	if u.Role != appctx.RoleAdmin && u.Role != appctx.RoleUser {
		return apperror.NewValidation("role must be admin or user").WithDetail("field", "role")
	}
	return nil
}

// Context returns the request identity of the user.
func (u *User) Context() *appctx.UserContext {
	return &appctx.UserContext{UserID: u.ID, Username: u.Username, Role: u.Role}
}

// Credentials is a login request.
type Credentials struct {
	Username string
	Password string
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      *User
}
