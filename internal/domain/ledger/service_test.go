package ledger

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doccstock/internal/core/apperror"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
)

func testActor() *appctx.UserContext {
	return &appctx.UserContext{UserID: id.New(), Username: "alice", Role: appctx.RoleUser}
}

func newTestService() (*Service, *memStore) {
	store := newMemStore()
	return NewService(store, store, store), store
}

func TestApplyDailyMovements_CarryForward(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	a100 := store.addType("A100")

	day1, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100, Production: 50, Delivery: 10},
	})
	require.NoError(t, err)
	require.Len(t, day1, 1)
	assert.EqualValues(t, 0, day1[0].OpeningStock)
	assert.EqualValues(t, 40, day1[0].ClosingStock)

	day2, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-05-02"), []MovementInput{
		{ProductTypeID: a100, Production: 20, Delivery: 5, Spoilage: 5},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 40, day2[0].OpeningStock)
	assert.EqualValues(t, 50, day2[0].ClosingStock)
}

func TestApplyDailyMovements_CrossesMonthBoundary(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	a100 := store.addType("A100")

	_, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-02-29"), []MovementInput{
		{ProductTypeID: a100, Production: 12},
	})
	require.NoError(t, err)

	saved, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-03-01"), []MovementInput{
		{ProductTypeID: a100, Delivery: 2},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 12, saved[0].OpeningStock)
	assert.EqualValues(t, 10, saved[0].ClosingStock)
}

func TestApplyDailyMovements_ResubmissionOverwrites(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	a100 := store.addType("A100")
	date := types.MustParseDate("2024-05-01")
	batch := []MovementInput{{ProductTypeID: a100, Production: 30, Delivery: 4, Notes: "first"}}

	_, err := svc.ApplyDailyMovements(ctx, testActor(), date, batch)
	require.NoError(t, err)
	first, _ := store.entry("2024-05-01", a100)

	_, err = svc.ApplyDailyMovements(ctx, testActor(), date, batch)
	require.NoError(t, err)
	second, _ := store.entry("2024-05-01", a100)

	assert.Equal(t, first.ClosingStock, second.ClosingStock)
	assert.EqualValues(t, 30, second.Production)
	assert.Len(t, store.rows, 1)

	_, err = svc.ApplyDailyMovements(ctx, testActor(), date, []MovementInput{{ProductTypeID: a100, Production: 5}})
	require.NoError(t, err)
	third, _ := store.entry("2024-05-01", a100)
	assert.EqualValues(t, 5, third.Production)
	assert.EqualValues(t, 0, third.Delivery)
	assert.Empty(t, third.Notes)
}

func TestApplyDailyMovements_KeepsSeededOpening(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	b200 := store.addType("B200")
	date := types.MustParseDate("2024-05-01")

	_, err := svc.SeedInitialStock(ctx, testActor(), date, []SeedInput{{ProductTypeID: b200, OpeningStock: 100}})
	require.NoError(t, err)

	saved, err := svc.ApplyDailyMovements(ctx, testActor(), date, []MovementInput{
		{ProductTypeID: b200, Production: 10, Delivery: 30},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 100, saved[0].OpeningStock)
	assert.EqualValues(t, 80, saved[0].ClosingStock)
}

func TestApplyDailyMovements_PreviousDayWinsOverSeed(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	b200 := store.addType("B200")

	_, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: b200, Production: 7},
	})
	require.NoError(t, err)
	_, err = svc.SeedInitialStock(ctx, testActor(), types.MustParseDate("2024-05-02"), []SeedInput{
		{ProductTypeID: b200, OpeningStock: 100},
	})
	require.NoError(t, err)

	saved, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-05-02"), []MovementInput{
		{ProductTypeID: b200, Production: 1},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 7, saved[0].OpeningStock)
	assert.EqualValues(t, 8, saved[0].ClosingStock)
}

func TestApplyDailyMovements_AtomicBatch(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	a100 := store.addType("A100")
	b200 := store.addType("B200")
	store.failOn = b200

	_, err := svc.ApplyDailyMovements(ctx, testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100, Production: 10},
		{ProductTypeID: b200, Production: 10},
	})
	require.Error(t, err)
	assert.True(t, apperror.HasCode(err, apperror.CodeDatabase))
	assert.Equal(t, 1, store.rollbacks)
	assert.Empty(t, store.rows)
}

func TestApplyDailyMovements_TypeRemovedDuringBatch(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")
	b200 := store.addType("B200")
	store.danglesOn = b200

	_, err := svc.ApplyDailyMovements(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100, Production: 10},
		{ProductTypeID: b200, Production: 10},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 1, appErr.Details["item"])
	assert.Equal(t, "pba_type_id", appErr.Details["field"])
	assert.Equal(t, b200.String(), appErr.Details["value"])
	assert.ErrorIs(t, err, ErrUnknownProductType)
	assert.Equal(t, 1, store.rollbacks)
	assert.Empty(t, store.rows)
}

func TestApplyDailyMovements_OpeningOutOfRange(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")
	store.rows[entryKey{"2024-04-30", a100}] = Entry{
		Date:          types.MustParseDate("2024-04-30"),
		ProductTypeID: a100,
		ClosingStock:  MaxStock + 1,
	}

	_, err := svc.ApplyDailyMovements(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100, Production: MaxQuantity},
	})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "stock_initial", appErr.Details["field"])
	_, stored := store.entry("2024-05-01", a100)
	assert.False(t, stored)
}

func TestApplyDailyMovements_AcceptsCeiling(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")

	saved, err := svc.ApplyDailyMovements(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100, Production: MaxQuantity, Spoilage: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, MaxQuantity-1, saved[0].ClosingStock)
}

func TestApplyDailyMovements_LocksCurrentRow(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")

	_, err := svc.ApplyDailyMovements(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100},
	})
	require.NoError(t, err)
	assert.Equal(t, []entryKey{{"2024-05-01", a100}}, store.locked)
	assert.Equal(t, 1, store.txCount)
}

func TestApplyDailyMovements_RecordsWriter(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")
	actor := testActor()

	_, err := svc.ApplyDailyMovements(context.Background(), actor, types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100},
	})
	require.NoError(t, err)

	e, ok := store.entry("2024-05-01", a100)
	require.True(t, ok)
	require.NotNil(t, e.WrittenBy)
	assert.Equal(t, actor.UserID, *e.WrittenBy)
}

func TestApplyDailyMovements_Validation(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, store, store)
	a100 := store.addType("A100")
	date := types.MustParseDate("2024-05-01")

	tests := []struct {
		name      string
		date      types.Date
		items     []MovementInput
		wantItem  any
		wantField string
	}{
		{
			name:      "zero date",
			items:     []MovementInput{{ProductTypeID: a100}},
			wantField: "date",
		},
		{
			name:      "empty batch",
			date:      date,
			wantField: "stockData",
		},
		{
			name:      "negative delivery",
			date:      date,
			items:     []MovementInput{{ProductTypeID: a100, Delivery: -1}},
			wantItem:  0,
			wantField: "livraison",
		},
		{
			name:      "production above ceiling",
			date:      date,
			items:     []MovementInput{{ProductTypeID: a100, Production: math.MaxInt64}},
			wantItem:  0,
			wantField: "production",
		},
		{
			name:      "unknown type",
			date:      date,
			items:     []MovementInput{{ProductTypeID: a100}, {ProductTypeID: id.New()}},
			wantItem:  1,
			wantField: "pba_type_id",
		},
		{
			name:      "duplicate type",
			date:      date,
			items:     []MovementInput{{ProductTypeID: a100}, {ProductTypeID: a100}},
			wantItem:  1,
			wantField: "pba_type_id",
		},
		{
			name:      "missing type",
			date:      date,
			items:     []MovementInput{{Production: 1}},
			wantItem:  0,
			wantField: "pba_type_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ApplyDailyMovements(context.Background(), testActor(), tt.date, tt.items)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tt.wantField, appErr.Details["field"])
			if tt.wantItem != nil {
				assert.Equal(t, tt.wantItem, appErr.Details["item"])
			}
		})
	}
	assert.Empty(t, store.rows)
	assert.Zero(t, store.txCount)
}

func TestApplyDailyMovements_RequiresActor(t *testing.T) {
	svc, store := newTestService()
	a100 := store.addType("A100")

	_, err := svc.ApplyDailyMovements(context.Background(), nil, types.MustParseDate("2024-05-01"), []MovementInput{
		{ProductTypeID: a100},
	})
	assert.True(t, apperror.HasCode(err, apperror.CodeUnauthorized))
}

func TestSeedInitialStock(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	b200 := store.addType("B200")
	date := types.MustParseDate("2024-05-01")

	_, err := svc.ApplyDailyMovements(ctx, testActor(), date, []MovementInput{
		{ProductTypeID: b200, Production: 9, Delivery: 3, Spoilage: 1},
	})
	require.NoError(t, err)

	saved, err := svc.SeedInitialStock(ctx, testActor(), date, []SeedInput{{ProductTypeID: b200, OpeningStock: 100}})
	require.NoError(t, err)
	require.Len(t, saved, 1)

	e, _ := store.entry("2024-05-01", b200)
	assert.EqualValues(t, 100, e.OpeningStock)
	assert.EqualValues(t, 0, e.Production)
	assert.EqualValues(t, 0, e.Delivery)
	assert.EqualValues(t, 0, e.Spoilage)
	assert.EqualValues(t, 100, e.ClosingStock)
	assert.Equal(t, InitialStockNote, e.Notes)

	next, err := svc.ApplyDailyMovements(ctx, testActor(), date.AddDays(1), []MovementInput{{ProductTypeID: b200}})
	require.NoError(t, err)
	assert.EqualValues(t, 100, next[0].OpeningStock)
}

func TestSeedInitialStock_RejectsNegative(t *testing.T) {
	svc, store := newTestService()
	b200 := store.addType("B200")

	_, err := svc.SeedInitialStock(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []SeedInput{
		{ProductTypeID: b200, OpeningStock: -5},
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "stock_initial", appErr.Details["field"])
}

func TestSeedInitialStock_RejectsAboveCeiling(t *testing.T) {
	svc, store := newTestService()
	b200 := store.addType("B200")

	_, err := svc.SeedInitialStock(context.Background(), testActor(), types.MustParseDate("2024-05-01"), []SeedInput{
		{ProductTypeID: b200, OpeningStock: MaxQuantity + 1},
	})
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, 0, appErr.Details["item"])
	assert.Equal(t, "stock_initial", appErr.Details["field"])
	assert.Empty(t, store.rows)
}

func TestListDaily(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()
	b200 := store.addType("B200")
	a100 := store.addType("A100")
	date := types.MustParseDate("2024-05-01")

	_, err := svc.ApplyDailyMovements(ctx, testActor(), date, []MovementInput{
		{ProductTypeID: b200, Production: 3},
		{ProductTypeID: a100, Production: 4},
	})
	require.NoError(t, err)

	views, err := svc.ListDaily(ctx, date)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, "A100", views[0].Code)
	assert.Equal(t, "B200", views[1].Code)
	assert.EqualValues(t, 4, views[0].ClosingStock)

	empty, err := svc.ListDaily(ctx, date.AddDays(1))
	require.NoError(t, err)
	assert.Empty(t, empty)
}
