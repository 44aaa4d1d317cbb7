package reports

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
)

func mustDate(s string) types.Date {
	return types.MustParseDate(s)
}

type mockRepo struct {
	mock.Mock
}

func (m *mockRepo) Snapshot(ctx context.Context, date types.Date) ([]SnapshotRow, error) {
	args := m.Called(ctx, date)
	rows, _ := args.Get(0).([]SnapshotRow)
	return rows, args.Error(1)
}

func (m *mockRepo) FlowTotals(ctx context.Context, from, to types.Date) (FlowTotals, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(FlowTotals), args.Error(1)
}

func (m *mockRepo) DailyTotals(ctx context.Context, from, to types.Date) ([]DailyTotals, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]DailyTotals)
	return rows, args.Error(1)
}

func (m *mockRepo) History(ctx context.Context, filter HistoryFilter) ([]HistoryRow, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]HistoryRow)
	return rows, args.Error(1)
}

func (m *mockRepo) RangeEntries(ctx context.Context, from, to types.Date) ([]RollupEntry, error) {
	args := m.Called(ctx, from, to)
	rows, _ := args.Get(0).([]RollupEntry)
	return rows, args.Error(1)
}

type staticTypes []pba.ProductType

func (s staticTypes) List(ctx context.Context) ([]pba.ProductType, error) {
	return s, nil
}

func TestService_Dashboard(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, staticTypes(nil), ledger.DefaultThresholds())
	ctx := context.Background()
	today := mustDate("2024-05-03")

	repo.On("Snapshot", ctx, today).Return([]SnapshotRow{
		{Code: "A100", ClosingStock: 5, HasEntry: true},
		{Code: "B200"},
		{Code: "C300", ClosingStock: 75, HasEntry: true},
	}, nil)
	repo.On("FlowTotals", ctx, mustDate("2024-05-01"), today).
		Return(FlowTotals{Production: 120, Delivery: 30, Spoilage: 2}, nil)
	repo.On("DailyTotals", ctx, mustDate("2024-04-27"), today).
		Return([]DailyTotals{{Date: day("2024-05-01"), Production: 60}, {Date: day("2024-05-03"), Production: 60}}, nil)

	dash, err := svc.Dashboard(ctx, today)
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01", dash.MonthStart.String())
	assert.Equal(t, "2024-04-27", dash.TrailingFrom.String())
	assert.EqualValues(t, 120, dash.MonthlyTotals.Production)
	assert.Len(t, dash.Trailing, 2)
	require.Len(t, dash.Snapshot, 3)
	assert.Equal(t, ledger.StatusCritical, dash.Snapshot[0].Status)
	assert.Equal(t, ledger.StatusCritical, dash.Snapshot[1].Status)
	assert.Equal(t, ledger.StatusNormal, dash.Snapshot[2].Status)
	repo.AssertExpectations(t)
}

func TestService_DashboardStorageFailure(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, staticTypes(nil), ledger.DefaultThresholds())
	today := mustDate("2024-05-03")

	repo.On("Snapshot", mock.Anything, today).Return(nil, errors.New("connection reset"))

	_, err := svc.Dashboard(context.Background(), today)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
}

func TestService_History(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, staticTypes(nil), ledger.DefaultThresholds())
	start, end := mustDate("2024-05-01"), mustDate("2024-05-02")
	filter := HistoryFilter{StartDate: &start, EndDate: &end, Code: "A100"}

	repo.On("History", mock.Anything, filter).Return([]HistoryRow{
		{Date: day("2024-05-02"), Code: "A100", ClosingStock: 50},
		{Date: day("2024-05-01"), Code: "A100", ClosingStock: 40},
	}, nil)

	rows, err := svc.History(context.Background(), HistoryFilter{StartDate: &start, EndDate: &end, Code: " A100 "})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, ledger.StatusNormal, rows[0].Status)
	assert.Equal(t, ledger.StatusLow, rows[1].Status)
	repo.AssertExpectations(t)
}

func TestService_HistoryRejectsInvertedRange(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, staticTypes(nil), ledger.DefaultThresholds())
	start, end := mustDate("2024-05-05"), mustDate("2024-05-02")

	_, err := svc.History(context.Background(), HistoryFilter{StartDate: &start, EndDate: &end})
	assert.True(t, apperror.HasCode(err, apperror.CodeValidation))
	repo.AssertNotCalled(t, "History", mock.Anything, mock.Anything)
}

func TestService_InventoryWeek(t *testing.T) {
	repo := new(mockRepo)
	svc := NewService(repo, staticTypes(registry("A100", "B200")), ledger.DefaultThresholds())

	repo.On("RangeEntries", mock.Anything, mustDate("2024-05-13"), mustDate("2024-05-19")).Return([]RollupEntry{
		{Date: day("2024-05-13"), Code: "A100", Production: 50, Delivery: 10, ClosingStock: 40},
		{Date: day("2024-05-14"), Code: "A100", OpeningStock: 40, Production: 20, Delivery: 5, Spoilage: 5, ClosingStock: 50},
	}, nil)

	report, err := svc.Inventory(context.Background(), PeriodWeek, mustDate("2024-05-16"))
	require.NoError(t, err)

	assert.Equal(t, PeriodWeek, report.Period)
	assert.Equal(t, "2024-05-13", report.StartDate.String())
	assert.Equal(t, "2024-05-19", report.EndDate.String())
	require.Len(t, report.Rows, 2)
	assert.EqualValues(t, 50, report.Rows[0].ClosingStock)
	assert.Equal(t, ledger.StatusNormal, report.Rows[0].Status)
	assert.Equal(t, ledger.StatusCritical, report.Rows[1].Status)
	assert.Equal(t, 2, report.Totals.EntryCount)
	repo.AssertExpectations(t)
}
