package auth

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
	"doccstock/pkg/logger"
)

// PasswordMinLength is enforced when users are created.
const PasswordMinLength = 6

// Service provides authentication logic.
type Service struct {
	userRepo   UserRepository
	jwtService *JWTService
}

// NewService creates a new auth service.
func NewService(userRepo UserRepository, jwtService *JWTService) *Service {
	return &Service{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Login checks credentials and issues a token.
// Unknown usernames and wrong passwords produce the same error.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	if creds.Username == "" || creds.Password == "" {
		return nil, apperror.NewValidation("username and password are required")
	}

	user, err := s.userRepo.GetByUsername(ctx, creds.Username)
	if err != nil {
		if apperror.IsNotFound(err) {
			logger.Warn(ctx, "login failed", "username", creds.Username, "reason", "unknown user")
			return nil, apperror.NewUnauthorized("invalid credentials")
		}
		return nil, apperror.NewDatabase("load user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(creds.Password)); err != nil {
		logger.Warn(ctx, "login failed", "username", creds.Username, "reason", "bad password")
		return nil, apperror.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	logger.Info(ctx, "user logged in", "user_id", user.ID, "username", user.Username)

	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: user}, nil
}

// CurrentUser loads the user behind a validated token.
func (s *Service) CurrentUser(ctx context.Context, userID id.ID) (*User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("user no longer exists")
		}
		return nil, apperror.NewDatabase("load user", err)
	}
	return user, nil
}

// CreateUser hashes the password and stores a new user.
func (s *Service) CreateUser(ctx context.Context, username, password, role string) (*User, error) {
	if len(password) < PasswordMinLength {
		return nil, apperror.NewValidation(
			fmt.Sprintf("password must be at least %d characters", PasswordMinLength),
		).WithDetail("field", "password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := NewUser(username, string(hash), role)
	if err := user.Validate(); err != nil {
		return nil, err
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info(ctx, "user created", "user_id", user.ID, "username", user.Username, "role", user.Role)
	return user, nil
}

// EnsureUser creates the user unless the username exists; an existing user gets the given password.
func (s *Service) EnsureUser(ctx context.Context, username, password, role string) (*User, bool, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil && !apperror.IsNotFound(err) {
		return nil, false, fmt.Errorf("get user %s: %w", username, err)
	}
	if existing == nil {
		user, err := s.CreateUser(ctx, username, password, role)
		return user, err == nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(password)) == nil {
		return existing, false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, false, fmt.Errorf("hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, existing.ID, string(hash)); err != nil {
		return nil, false, fmt.Errorf("update password: %w", err)
	}
	existing.PasswordHash = string(hash)
	return existing, false, nil
}
