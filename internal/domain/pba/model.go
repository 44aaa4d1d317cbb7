// Package pba holds the registry of product types whose stock is tracked.
package pba

import (
	"strings"
	"time"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
)

// ProductType is a registered product ("PBA") referenced by ledger entries.
// Immutable once seeded.
type ProductType struct {
	ID          id.ID     `db:"id" json:"id"`
	Code        string    `db:"code" json:"code"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"createdAt"`
}

// NewProductType creates a product type with a fresh ID.
func NewProductType(code, description string) *ProductType {
	return &ProductType{
		ID:          id.New(),
		Code:        strings.TrimSpace(code),
		Description: strings.TrimSpace(description),
		CreatedAt:   time.Now().UTC(),
	}
}

// Validate checks required fields.
func (p *ProductType) Validate() error {
	if p.Code == "" {
		return apperror.NewValidation("code is required").WithDetail("field", "code")
	}
	if len(p.Code) > 50 {
		return apperror.NewValidation("code must be at most 50 characters").WithDetail("field", "code")
	}
	return nil
}
