package v1

import (
	"context"

	"github.com/stretchr/testify/mock"

	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/auth"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
	"doccstock/internal/domain/reports"
	"doccstock/internal/infrastructure/storage/postgres"
)

type mockAuth struct{ mock.Mock }

func (m *mockAuth) Login(ctx context.Context, creds auth.Credentials) (*auth.LoginResult, error) {
	args := m.Called(ctx, creds)
	res, _ := args.Get(0).(*auth.LoginResult)
	return res, args.Error(1)
}

func (m *mockAuth) CurrentUser(ctx context.Context, userID id.ID) (*auth.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*auth.User)
	return u, args.Error(1)
}

type mockTypes struct{ mock.Mock }

func (m *mockTypes) List(ctx context.Context) ([]pba.ProductType, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]pba.ProductType)
	return items, args.Error(1)
}

type mockLedger struct{ mock.Mock }

func (m *mockLedger) ApplyDailyMovements(ctx context.Context, actor *appctx.UserContext, date types.Date, items []ledger.MovementInput) ([]ledger.Entry, error) {
	args := m.Called(ctx, actor, date, items)
	entries, _ := args.Get(0).([]ledger.Entry)
	return entries, args.Error(1)
}

func (m *mockLedger) SeedInitialStock(ctx context.Context, actor *appctx.UserContext, date types.Date, items []ledger.SeedInput) ([]ledger.Entry, error) {
	args := m.Called(ctx, actor, date, items)
	entries, _ := args.Get(0).([]ledger.Entry)
	return entries, args.Error(1)
}

func (m *mockLedger) ListDaily(ctx context.Context, date types.Date) ([]ledger.EntryView, error) {
	args := m.Called(ctx, date)
	entries, _ := args.Get(0).([]ledger.EntryView)
	return entries, args.Error(1)
}

type mockReports struct{ mock.Mock }

func (m *mockReports) History(ctx context.Context, filter reports.HistoryFilter) ([]reports.HistoryRow, error) {
	args := m.Called(ctx, filter)
	rows, _ := args.Get(0).([]reports.HistoryRow)
	return rows, args.Error(1)
}

func (m *mockReports) Dashboard(ctx context.Context, today types.Date) (*reports.Dashboard, error) {
	args := m.Called(ctx, today)
	d, _ := args.Get(0).(*reports.Dashboard)
	return d, args.Error(1)
}

func (m *mockReports) Inventory(ctx context.Context, period reports.Period, anchor types.Date) (*reports.InventoryReport, error) {
	args := m.Called(ctx, period, anchor)
	r, _ := args.Get(0).(*reports.InventoryReport)
	return r, args.Error(1)
}

type stubDatabase struct {
	pingErr error
}

func (s stubDatabase) Ping(context.Context) error { return s.pingErr }

func (s stubDatabase) Stats() postgres.PoolStats {
	return postgres.PoolStats{TotalConns: 2, IdleConns: 2, MaxConns: 10}
}
