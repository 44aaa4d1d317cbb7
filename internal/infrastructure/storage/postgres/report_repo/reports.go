// Package report_repo provides PostgreSQL implementations for report queries.
package report_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"doccstock/internal/core/types"
	"doccstock/internal/domain/reports"
	"doccstock/internal/infrastructure/storage/postgres"
)

var _ reports.Repository = (*ReportRepo)(nil)

var flowSums = []string{
	"COALESCE(SUM(ds.production), 0)::BIGINT AS total_production",
	"COALESCE(SUM(ds.livraison), 0)::BIGINT AS total_livraison",
	"COALESCE(SUM(ds.avaries), 0)::BIGINT AS total_avaries",
}

// ReportRepo implements reports.Repository. Queries run on the pool unless ctx carries a transaction.
type ReportRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewReportRepo creates a new report repository.
func NewReportRepo(txm *postgres.TxManager) *ReportRepo {
	return &ReportRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Snapshot returns every product type with its entry for date.
func (r *ReportRepo) Snapshot(ctx context.Context, date types.Date) ([]reports.SnapshotRow, error) {
	query, args, err := r.builder.
		Select(
			"p.id AS pba_type_id",
			"p.code",
			"p.description",
			"COALESCE(ds.stock_initial, 0) AS stock_initial",
			"COALESCE(ds.production, 0) AS production",
			"COALESCE(ds.livraison, 0) AS livraison",
			"COALESCE(ds.avaries, 0) AS avaries",
			"COALESCE(ds.stock_actuel, 0) AS stock_actuel",
			"(ds.pba_type_id IS NOT NULL) AS has_entry",
		).
		From("pba_types p").
		LeftJoin("daily_stock ds ON ds.pba_type_id = p.id AND ds.date = ?", date.Time).
		OrderBy("p.code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.SnapshotRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return rows, nil
}

// FlowTotals sums flows for dates in [from, to].
func (r *ReportRepo) FlowTotals(ctx context.Context, from, to types.Date) (reports.FlowTotals, error) {
	query, args, err := r.builder.
		Select(flowSums...).
		From("daily_stock ds").
		Where(squirrel.GtOrEq{"ds.date": from.Time}).
		Where(squirrel.LtOrEq{"ds.date": to.Time}).
		ToSql()
	if err != nil {
		return reports.FlowTotals{}, fmt.Errorf("build query: %w", err)
	}

	var totals reports.FlowTotals
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &totals, query, args...); err != nil {
		return reports.FlowTotals{}, fmt.Errorf("select flow totals: %w", err)
	}
	return totals, nil
}

// DailyTotals returns per-date sums for [from, to], ascending.
func (r *ReportRepo) DailyTotals(ctx context.Context, from, to types.Date) ([]reports.DailyTotals, error) {
	query, args, err := r.builder.
		Select(append([]string{"ds.date"}, flowSums...)...).
		From("daily_stock ds").
		Where(squirrel.GtOrEq{"ds.date": from.Time}).
		Where(squirrel.LtOrEq{"ds.date": to.Time}).
		GroupBy("ds.date").
		OrderBy("ds.date").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.DailyTotals
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select daily totals: %w", err)
	}
	return rows, nil
}

// History returns filtered entries, newest first then by code.
func (r *ReportRepo) History(ctx context.Context, filter reports.HistoryFilter) ([]reports.HistoryRow, error) {
	q := r.builder.
		Select(
			"ds.date",
			"ds.pba_type_id",
			"p.code",
			"p.description",
			"ds.stock_initial",
			"ds.production",
			"ds.livraison",
			"ds.avaries",
			"ds.stock_actuel",
			"ds.observations",
			"u.username",
			"ds.updated_at",
		).
		From("daily_stock ds").
		Join("pba_types p ON p.id = ds.pba_type_id").
		LeftJoin("users u ON u.id = ds.written_by")

	if filter.StartDate != nil {
		q = q.Where(squirrel.GtOrEq{"ds.date": filter.StartDate.Time})
	}
	if filter.EndDate != nil {
		q = q.Where(squirrel.LtOrEq{"ds.date": filter.EndDate.Time})
	}
	if filter.Code != "" {
		q = q.Where(squirrel.Eq{"p.code": filter.Code})
	}

	query, args, err := q.OrderBy("ds.date DESC", "p.code ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.HistoryRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}
	return rows, nil
}

// RangeEntries returns entries in [from, to], oldest first then by code.
func (r *ReportRepo) RangeEntries(ctx context.Context, from, to types.Date) ([]reports.RollupEntry, error) {
	query, args, err := r.builder.
		Select(
			"ds.date",
			"p.code",
			"ds.stock_initial",
			"ds.production",
			"ds.livraison",
			"ds.avaries",
			"ds.stock_actuel",
		).
		From("daily_stock ds").
		Join("pba_types p ON p.id = ds.pba_type_id").
		Where(squirrel.GtOrEq{"ds.date": from.Time}).
		Where(squirrel.LtOrEq{"ds.date": to.Time}).
		OrderBy("ds.date ASC", "p.code ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []reports.RollupEntry
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select range entries: %w", err)
	}
	return rows, nil
}
