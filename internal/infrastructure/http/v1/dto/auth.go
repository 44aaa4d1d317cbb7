package dto

import (
	"time"

	"doccstock/internal/domain/auth"
)

// LoginRequest for user login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// ToCredentials converts to domain credentials.
func (r *LoginRequest) ToCredentials() auth.Credentials {
	return auth.Credentials{
		Username: r.Username,
		Password: r.Password,
	}
}

// UserResponse represents user in API responses.
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// FromUser converts domain user to response.
func FromUser(u *auth.User) UserResponse {
	return UserResponse{
		ID:       u.ID.String(),
		Username: u.Username,
		Role:     u.Role,
	}
}

// LoginResponse is returned by POST /auth/login.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

// FromLoginResult converts a login result to response.
func FromLoginResult(r *auth.LoginResult) LoginResponse {
	return LoginResponse{
		Token:     r.Token,
		ExpiresAt: r.ExpiresAt,
		User:      FromUser(r.User),
	}
}
