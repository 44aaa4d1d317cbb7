// Package pba_repo provides the PostgreSQL product type repository.
package pba_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
	"doccstock/internal/domain/pba"
	"doccstock/internal/infrastructure/storage/postgres"
)

const productTypesTable = "pba_types"

var _ pba.Repository = (*ProductTypeRepo)(nil)

// ProductTypeRepo implements pba.Repository.
type ProductTypeRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
	columns []string
}

// NewProductTypeRepo creates a new product type repository.
func NewProductTypeRepo(txm *postgres.TxManager) *ProductTypeRepo {
	return &ProductTypeRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		columns: postgres.Columns[pba.ProductType](),
	}
}

// List returns every product type ordered by code.
func (r *ProductTypeRepo) List(ctx context.Context) ([]pba.ProductType, error) {
	query, args, err := r.builder.
		Select(r.columns...).
		From(productTypesTable).
		OrderBy("code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var types []pba.ProductType
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &types, query, args...); err != nil {
		return nil, fmt.Errorf("select pba types: %w", err)
	}
	return types, nil
}

// GetByIDs returns the product types found among ids.
func (r *ProductTypeRepo) GetByIDs(ctx context.Context, ids []id.ID) (map[id.ID]pba.ProductType, error) {
	out := make(map[id.ID]pba.ProductType, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	keys := make([]string, len(ids))
	for i, v := range ids {
		keys[i] = v.String()
	}

	query, args, err := r.builder.
		Select(r.columns...).
		From(productTypesTable).
		Where(squirrel.Eq{"id": keys}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var types []pba.ProductType
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &types, query, args...); err != nil {
		return nil, fmt.Errorf("select pba types by id: %w", err)
	}
	for _, p := range types {
		out[p.ID] = p
	}
	return out, nil
}

// GetByCode returns the product type with the given code.
func (r *ProductTypeRepo) GetByCode(ctx context.Context, code string) (*pba.ProductType, error) {
	query, args, err := r.builder.
		Select(r.columns...).
		From(productTypesTable).
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var p pba.ProductType
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &p, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("pba type", code)
		}
		return nil, fmt.Errorf("get pba type: %w", err)
	}
	return &p, nil
}

// Create inserts a product type.
func (r *ProductTypeRepo) Create(ctx context.Context, p *pba.ProductType) error {
	query, args, err := r.builder.
		Insert(productTypesTable).
		Columns("id", "code", "description", "created_at").
		Values(p.ID.String(), p.Code, p.Description, p.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, query, args...); err != nil {
		if postgres.IsUniqueViolation(err) {
			return apperror.NewDuplicate("pba type", "code", p.Code)
		}
		return fmt.Errorf("insert pba type: %w", err)
	}
	return nil
}
