package ledger

import (
	"context"
	"errors"
	"fmt"

	"doccstock/internal/core/apperror"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/id"
	"doccstock/internal/core/tx"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/pba"
	"doccstock/pkg/logger"
)

// Field names reported in validation details. They match the request payload.
const (
	fieldDate         = "date"
	fieldItems        = "stockData"
	fieldProductType  = "pba_type_id"
	fieldProduction   = "production"
	fieldDelivery     = "livraison"
	fieldSpoilage     = "avaries"
	fieldOpeningStock = "stock_initial"
)

// TypeLookup resolves product type IDs against the registry.
type TypeLookup interface {
	Lookup(ctx context.Context, ids []id.ID) (map[id.ID]pba.ProductType, error)
}

// Service writes and reads the daily ledger.
type Service struct {
	repo      Repository
	types     TypeLookup
	txManager tx.Manager
	resolver  *Resolver
}

// NewService creates a ledger service.
func NewService(repo Repository, types TypeLookup, txManager tx.Manager) *Service {
	return &Service{
		repo:      repo,
		types:     types,
		txManager: txManager,
		resolver:  NewResolver(repo),
	}
}

// Resolver returns the carry-forward resolver bound to the service's repository.
func (s *Service) Resolver() *Resolver {
	return s.resolver
}

// ApplyDailyMovements records production, delivery and spoilage for one date.
// The opening stock of each item is the previous day's closing stock; when the
// previous day has no entry the opening already stored for the date is kept.
// Flows overwrite what was stored. Either every item is saved or none is.
func (s *Service) ApplyDailyMovements(
	ctx context.Context,
	actor *appctx.UserContext,
	date types.Date,
	items []MovementInput,
) ([]Entry, error) {
	if actor == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	typeIDs := make([]id.ID, len(items))
	for i, item := range items {
		typeIDs[i] = item.ProductTypeID
	}
	if err := s.validateBatch(ctx, date, typeIDs); err != nil {
		return nil, err
	}
	for i, item := range items {
		if err := checkQuantity(i, fieldProduction, item.Production); err != nil {
			return nil, err
		}
		if err := checkQuantity(i, fieldDelivery, item.Delivery); err != nil {
			return nil, err
		}
		if err := checkQuantity(i, fieldSpoilage, item.Spoilage); err != nil {
			return nil, err
		}
	}

	writer := actor.UserID
	saved := make([]Entry, 0, len(items))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i, item := range items {
			current, err := s.repo.GetEntryForUpdate(ctx, date, item.ProductTypeID)
			if err != nil {
				return fmt.Errorf("lock entry %s/%s: %w", date, item.ProductTypeID, err)
			}

			opening, inherited, err := s.resolver.Resolve(ctx, date, item.ProductTypeID)
			if err != nil {
				return err
			}
			if !inherited && current != nil {
				opening = current.OpeningStock
			}
			if opening > MaxStock || opening < -MaxStock {
				return apperror.NewInvalidItem(i, fieldOpeningStock, "opening stock out of range").
					WithDetail("value", opening)
			}

			entry := Entry{
				Date:          date,
				ProductTypeID: item.ProductTypeID,
				OpeningStock:  opening,
				Production:    item.Production,
				Delivery:      item.Delivery,
				Spoilage:      item.Spoilage,
				Notes:         item.Notes,
				WrittenBy:     &writer,
			}
			entry.Recompute()

			if err := s.upsert(ctx, i, &entry); err != nil {
				return err
			}
			saved = append(saved, entry)
		}
		return nil
	})
	if err != nil {
		return nil, s.persistenceError(ctx, "save daily stock", err)
	}

	logger.Info(ctx, "daily stock saved",
		"date", date.String(),
		"items", len(saved),
		"user_id", writer)

	return saved, nil
}

// SeedInitialStock sets the opening stock of each item for one date.
// Flows are reset to 0, so the closing stock equals the opening stock.
func (s *Service) SeedInitialStock(
	ctx context.Context,
	actor *appctx.UserContext,
	date types.Date,
	items []SeedInput,
) ([]Entry, error) {
	if actor == nil {
		return nil, apperror.NewUnauthorized("authentication required")
	}

	typeIDs := make([]id.ID, len(items))
	for i, item := range items {
		typeIDs[i] = item.ProductTypeID
	}
	if err := s.validateBatch(ctx, date, typeIDs); err != nil {
		return nil, err
	}
	for i, item := range items {
		if err := checkQuantity(i, fieldOpeningStock, item.OpeningStock); err != nil {
			return nil, err
		}
	}

	writer := actor.UserID
	saved := make([]Entry, 0, len(items))

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		for i, item := range items {
			entry := Entry{
				Date:          date,
				ProductTypeID: item.ProductTypeID,
				OpeningStock:  item.OpeningStock,
				Notes:         InitialStockNote,
				WrittenBy:     &writer,
			}
			entry.Recompute()

			if err := s.upsert(ctx, i, &entry); err != nil {
				return err
			}
			saved = append(saved, entry)
		}
		return nil
	})
	if err != nil {
		return nil, s.persistenceError(ctx, "save initial stock", err)
	}

	logger.Info(ctx, "initial stock saved",
		"date", date.String(),
		"items", len(saved),
		"user_id", writer)

	return saved, nil
}

// ListDaily returns the entries recorded for date, ordered by product code.
func (s *Service) ListDaily(ctx context.Context, date types.Date) ([]EntryView, error) {
	if date.IsZero() {
		return nil, apperror.NewValidation("invalid date").WithDetail("field", fieldDate)
	}

	entries, err := s.repo.ListByDate(ctx, date)
	if err != nil {
		return nil, apperror.NewDatabase("list daily stock", err)
	}
	for i := range entries {
		entries[i].Recompute()
	}
	return entries, nil
}

// validateBatch checks the date and the product type of every item.
func (s *Service) validateBatch(ctx context.Context, date types.Date, typeIDs []id.ID) error {
	if date.IsZero() {
		return apperror.NewValidation("invalid date").WithDetail("field", fieldDate)
	}
	if len(typeIDs) == 0 {
		return apperror.NewValidation("at least one item is required").WithDetail("field", fieldItems)
	}

	seen := make(map[id.ID]int, len(typeIDs))
	for i, typeID := range typeIDs {
		if id.IsNil(typeID) {
			return apperror.NewInvalidItem(i, fieldProductType, "pba_type_id is required")
		}
		if first, dup := seen[typeID]; dup {
			return apperror.NewInvalidItem(i, fieldProductType, "duplicate pba type in batch").
				WithDetail("firstItem", first)
		}
		seen[typeID] = i
	}

	known, err := s.types.Lookup(ctx, typeIDs)
	if err != nil {
		return apperror.NewDatabase("lookup pba types", err)
	}
	for i, typeID := range typeIDs {
		if _, ok := known[typeID]; !ok {
			return apperror.NewInvalidItem(i, fieldProductType, "unknown pba type").
				WithDetail("value", typeID.String())
		}
	}
	return nil
}

// upsert stores the entry of batch item index.
func (s *Service) upsert(ctx context.Context, index int, e *Entry) error {
	err := s.repo.Upsert(ctx, e)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrUnknownProductType):
		return apperror.NewInvalidItem(index, fieldProductType, "unknown pba type").
			WithDetail("value", e.ProductTypeID.String()).
			WithCause(err)
	default:
		return fmt.Errorf("upsert entry %s/%s: %w", e.Date, e.ProductTypeID, err)
	}
}

func (s *Service) persistenceError(ctx context.Context, operation string, err error) error {
	if appErr, ok := apperror.AsAppError(err); ok {
		return appErr
	}
	logger.Error(ctx, operation+" failed, transaction rolled back", "error", err)
	return apperror.NewDatabase(operation, err)
}

func checkQuantity(index int, field string, value int64) error {
	switch {
	case value < 0:
		return apperror.NewInvalidItem(index, field, field+" must not be negative").
			WithDetail("value", value)
	case value > MaxQuantity:
		return apperror.NewInvalidItem(index, field, fmt.Sprintf("%s must not exceed %d", field, MaxQuantity)).
			WithDetail("value", value)
	}
	return nil
}
