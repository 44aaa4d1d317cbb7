package reports

import (
	"context"
	"strings"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
)

// TrailingDays is the length of the dashboard series, today included.
const TrailingDays = 7

// TypeLister lists the registered product types.
type TypeLister interface {
	List(ctx context.Context) ([]pba.ProductType, error)
}

// Service provides report generation operations. Nothing is cached.
type Service struct {
	repo       Repository
	types      TypeLister
	thresholds ledger.Thresholds
}

// NewService creates a new reports service.
func NewService(repo Repository, types TypeLister, thresholds ledger.Thresholds) *Service {
	return &Service{repo: repo, types: types, thresholds: thresholds}
}

// Snapshot returns the state of every product type on today.
func (s *Service) Snapshot(ctx context.Context, today types.Date) ([]SnapshotRow, error) {
	rows, err := s.repo.Snapshot(ctx, today)
	if err != nil {
		return nil, apperror.NewDatabase("load stock snapshot", err)
	}
	for i := range rows {
		rows[i].Status = s.thresholds.Classify(rows[i].ClosingStock)
	}
	return rows, nil
}

// MonthlyTotals sums flows from the first day of today's month through today.
func (s *Service) MonthlyTotals(ctx context.Context, today types.Date) (FlowTotals, error) {
	totals, err := s.repo.FlowTotals(ctx, today.MonthStart(), today)
	if err != nil {
		return FlowTotals{}, apperror.NewDatabase("load monthly totals", err)
	}
	return totals, nil
}

// TrailingSeries returns per-date totals for the last TrailingDays days ending today.
func (s *Service) TrailingSeries(ctx context.Context, today types.Date) ([]DailyTotals, error) {
	series, err := s.repo.DailyTotals(ctx, today.AddDays(-(TrailingDays - 1)), today)
	if err != nil {
		return nil, apperror.NewDatabase("load trailing series", err)
	}
	return series, nil
}

// Dashboard combines Snapshot, MonthlyTotals and TrailingSeries.
func (s *Service) Dashboard(ctx context.Context, today types.Date) (*Dashboard, error) {
	snapshot, err := s.Snapshot(ctx, today)
	if err != nil {
		return nil, err
	}
	monthly, err := s.MonthlyTotals(ctx, today)
	if err != nil {
		return nil, err
	}
	series, err := s.TrailingSeries(ctx, today)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Date:          today,
		Snapshot:      snapshot,
		MonthStart:    today.MonthStart(),
		MonthlyTotals: monthly,
		TrailingFrom:  today.AddDays(-(TrailingDays - 1)),
		Trailing:      series,
	}, nil
}

// History returns entries within the filter, newest first.
func (s *Service) History(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error) {
	filter.Code = strings.TrimSpace(filter.Code)
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.After(*filter.EndDate) {
		return nil, apperror.NewValidation("startDate must not be after endDate").
			WithDetail("field", "startDate")
	}

	rows, err := s.repo.History(ctx, filter)
	if err != nil {
		return nil, apperror.NewDatabase("load stock history", err)
	}
	for i := range rows {
		rows[i].Status = s.thresholds.Classify(rows[i].ClosingStock)
	}
	return rows, nil
}

// Inventory rolls up the period containing anchor by product type.
func (s *Service) Inventory(ctx context.Context, period Period, anchor types.Date) (*InventoryReport, error) {
	if anchor.IsZero() {
		return nil, apperror.NewValidation("invalid date").WithDetail("field", "date")
	}
	from, to := period.Range(anchor)

	productTypes, err := s.types.List(ctx)
	if err != nil {
		return nil, err
	}
	entries, err := s.repo.RangeEntries(ctx, from, to)
	if err != nil {
		return nil, apperror.NewDatabase("load inventory entries", err)
	}

	report, err := Rollup(entries, productTypes)
	if err != nil {
		return nil, err
	}
	report.Period = period
	report.StartDate = from
	report.EndDate = to
	for i := range report.Rows {
		report.Rows[i].Status = s.thresholds.Classify(report.Rows[i].ClosingStock)
	}
	return report, nil
}
