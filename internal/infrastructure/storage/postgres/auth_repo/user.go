// Package auth_repo provides the PostgreSQL user repository.
package auth_repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
	"doccstock/internal/domain/auth"
	"doccstock/internal/infrastructure/storage/postgres"
)

var _ auth.UserRepository = (*UserRepo)(nil)

// UserRepo implements auth.UserRepository.
type UserRepo struct {
	txm *postgres.TxManager
}

// NewUserRepo creates a new user repository.
func NewUserRepo(txm *postgres.TxManager) *UserRepo {
	return &UserRepo{txm: txm}
}

// Create creates a new user.
func (r *UserRepo) Create(ctx context.Context, user *auth.User) error {
	q := r.txm.GetQuerier(ctx)

	query := `
		INSERT INTO users (id, username, password_hash, role, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := q.Exec(ctx, query,
		user.ID.String(), user.Username, user.PasswordHash, user.Role, user.CreatedAt,
	)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("user", "username", user.Username)
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves user by ID.
func (r *UserRepo) GetByID(ctx context.Context, userID id.ID) (*auth.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE id = $1
	`
	return r.getOne(ctx, query, userID.String())
}

// GetByUsername retrieves user by username.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	query := `
		SELECT id, username, password_hash, role, created_at
		FROM users
		WHERE username = $1
	`
	return r.getOne(ctx, query, username)
}

func (r *UserRepo) getOne(ctx context.Context, query string, key string) (*auth.User, error) {
	q := r.txm.GetQuerier(ctx)

	var user auth.User
	err := q.QueryRow(ctx, query, key).Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Role, &user.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, apperror.NewNotFound("user", key)
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	return &user, nil
}

// UpdatePassword replaces the password hash.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID id.ID, passwordHash string) error {
	q := r.txm.GetQuerier(ctx)

	tag, err := q.Exec(ctx, `UPDATE users SET password_hash = $2 WHERE id = $1`, userID.String(), passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("user", userID.String())
	}
	return nil
}
