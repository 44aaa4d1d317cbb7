// Package ledger_repo provides the PostgreSQL daily stock repository.
package ledger_repo

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/infrastructure/storage/postgres"
)

const dailyStockTable = "daily_stock"

var _ ledger.Repository = (*DailyStockRepo)(nil)

// entryRow mirrors a daily_stock row.
type entryRow struct {
	Date         time.Time `db:"date"`
	PbaTypeID    id.ID     `db:"pba_type_id"`
	StockInitial int64     `db:"stock_initial"`
	Production   int64     `db:"production"`
	Livraison    int64     `db:"livraison"`
	Avaries      int64     `db:"avaries"`
	StockActuel  int64     `db:"stock_actuel"`
	Observations *string   `db:"observations"`
	WrittenBy    *id.ID    `db:"written_by"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func (r entryRow) toEntry() ledger.Entry {
	e := ledger.Entry{
		Date:          types.NewDate(r.Date),
		ProductTypeID: r.PbaTypeID,
		OpeningStock:  r.StockInitial,
		Production:    r.Production,
		Delivery:      r.Livraison,
		Spoilage:      r.Avaries,
		ClosingStock:  r.StockActuel,
		WrittenBy:     r.WrittenBy,
		UpdatedAt:     r.UpdatedAt,
	}
	if r.Observations != nil {
		e.Notes = *r.Observations
	}
	return e
}

type entryViewRow struct {
	entryRow
	Code        string `db:"code"`
	Description string `db:"description"`
}

// DailyStockRepo implements ledger.Repository.
type DailyStockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

// NewDailyStockRepo creates a new daily stock repository.
func NewDailyStockRepo(txm *postgres.TxManager) *DailyStockRepo {
	return &DailyStockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// GetEntry returns the entry for (date, productTypeID), or nil when absent.
func (r *DailyStockRepo) GetEntry(ctx context.Context, date types.Date, productTypeID id.ID) (*ledger.Entry, error) {
	return r.getEntry(ctx, date, productTypeID, false)
}

// GetEntryForUpdate is GetEntry with a row lock held until the transaction ends.
func (r *DailyStockRepo) GetEntryForUpdate(ctx context.Context, date types.Date, productTypeID id.ID) (*ledger.Entry, error) {
	return r.getEntry(ctx, date, productTypeID, true)
}

func (r *DailyStockRepo) getEntry(ctx context.Context, date types.Date, productTypeID id.ID, lock bool) (*ledger.Entry, error) {
	q := r.builder.
		Select(postgres.Columns[entryRow]()...).
		From(dailyStockTable).
		Where(squirrel.Eq{"date": date.Time, "pba_type_id": productTypeID.String()})
	if lock {
		q = q.Suffix("FOR UPDATE")
	}

	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var row entryRow
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &row, query, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily stock: %w", err)
	}

	e := row.toEntry()
	return &e, nil
}

// Upsert inserts the entry or overwrites the existing (date, type) row.
func (r *DailyStockRepo) Upsert(ctx context.Context, e *ledger.Entry) error {
	var notes *string
	if e.Notes != "" {
		notes = &e.Notes
	}
	var writtenBy *string
	if e.WrittenBy != nil {
		s := e.WrittenBy.String()
		writtenBy = &s
	}

	query, args, err := r.builder.
		Insert(dailyStockTable).
		Columns("date", "pba_type_id", "stock_initial", "production", "livraison", "avaries",
			"observations", "written_by", "updated_at").
		Values(e.Date.Time, e.ProductTypeID.String(), e.OpeningStock, e.Production, e.Delivery, e.Spoilage,
			notes, writtenBy, squirrel.Expr("now()")).
		Suffix(`ON CONFLICT (date, pba_type_id) DO UPDATE SET
			stock_initial = EXCLUDED.stock_initial,
			production    = EXCLUDED.production,
			livraison     = EXCLUDED.livraison,
			avaries       = EXCLUDED.avaries,
			observations  = EXCLUDED.observations,
			written_by    = EXCLUDED.written_by,
			updated_at    = now()
		RETURNING stock_actuel, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build query: %w", err)
	}

	if err := r.txm.GetQuerier(ctx).QueryRow(ctx, query, args...).Scan(&e.ClosingStock, &e.UpdatedAt); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return fmt.Errorf("upsert daily stock: %w: %w", ledger.ErrUnknownProductType, err)
		}
		return fmt.Errorf("upsert daily stock: %w", err)
	}
	return nil
}

// ListByDate returns the entries of one date joined with their product type.
func (r *DailyStockRepo) ListByDate(ctx context.Context, date types.Date) ([]ledger.EntryView, error) {
	cols := append(postgres.QualifiedColumns[entryRow]("ds"), "p.code", "p.description")

	query, args, err := r.builder.
		Select(cols...).
		From(dailyStockTable + " ds").
		Join("pba_types p ON p.id = ds.pba_type_id").
		Where(squirrel.Eq{"ds.date": date.Time}).
		OrderBy("p.code").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []entryViewRow
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select daily stock: %w", err)
	}

	out := make([]ledger.EntryView, len(rows))
	for i, row := range rows {
		out[i] = ledger.EntryView{
			Entry:       row.toEntry(),
			Code:        row.Code,
			Description: row.Description,
		}
	}
	return out, nil
}
