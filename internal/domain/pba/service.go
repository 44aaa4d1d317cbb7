package pba

import (
	"context"
	"fmt"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
	"doccstock/pkg/logger"
)

// Service exposes the product type registry.
type Service struct {
	repo Repository
}

// NewService creates a product type service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// List returns all product types ordered by code.
func (s *Service) List(ctx context.Context) ([]ProductType, error) {
	types, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewDatabase("list pba types", err)
	}
	return types, nil
}

// Lookup returns the product types among ids.
func (s *Service) Lookup(ctx context.Context, ids []id.ID) (map[id.ID]ProductType, error) {
	found, err := s.repo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("lookup pba types: %w", err)
	}
	return found, nil
}

// Register adds a product type unless its code already exists.
// Returns the stored type and whether it was created.
func (s *Service) Register(ctx context.Context, code, description string) (*ProductType, bool, error) {
	p := NewProductType(code, description)
	if err := p.Validate(); err != nil {
		return nil, false, err
	}

	existing, err := s.repo.GetByCode(ctx, p.Code)
	if err == nil {
		return existing, false, nil
	}
	if !apperror.IsNotFound(err) {
		return nil, false, fmt.Errorf("get pba type %s: %w", p.Code, err)
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return nil, false, err
	}

	logger.Info(ctx, "pba type registered", "code", p.Code, "id", p.ID)
	return p, true, nil
}
