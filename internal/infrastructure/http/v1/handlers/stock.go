package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
	"doccstock/internal/infrastructure/http/v1/dto"
)

// PbaTypeLister lists registered product types.
type PbaTypeLister interface {
	List(ctx context.Context) ([]pba.ProductType, error)
}

// LedgerService is the part of ledger.Service used over HTTP.
type LedgerService interface {
	ApplyDailyMovements(ctx context.Context, actor *appctx.UserContext, date types.Date, items []ledger.MovementInput) ([]ledger.Entry, error)
	SeedInitialStock(ctx context.Context, actor *appctx.UserContext, date types.Date, items []ledger.SeedInput) ([]ledger.Entry, error)
	ListDaily(ctx context.Context, date types.Date) ([]ledger.EntryView, error)
}

// StockHandler handles product types and daily ledger entries.
type StockHandler struct {
	*BaseHandler
	types  PbaTypeLister
	ledger LedgerService
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, types PbaTypeLister, ledger LedgerService) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		types:       types,
		ledger:      ledger,
	}
}

// PbaTypes handles GET /stock/pba-types
func (h *StockHandler) PbaTypes(c *gin.Context) {
	items, err := h.types.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromProductTypes(items))
}

// Daily handles GET /stock/daily/:date
func (h *StockHandler) Daily(c *gin.Context) {
	date, err := dto.ParseDate("date", c.Param("date"))
	if err != nil {
		h.Error(c, err)
		return
	}

	entries, err := h.ledger.ListDaily(c.Request.Context(), date)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.NewListResponse(dailyResponses(entries)))
}

// SaveDaily handles POST /stock/daily
func (h *StockHandler) SaveDaily(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.DailyStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	date, items, err := req.ToInputs()
	if err != nil {
		h.Error(c, err)
		return
	}

	saved, err := h.ledger.ApplyDailyMovements(c.Request.Context(), actor, date, items)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SaveStockResponse{
		Message: "daily stock saved",
		Date:    date.String(),
		Entries: entryResponses(saved),
	})
}

// SaveInitialStock handles POST /stock/initial-stock
func (h *StockHandler) SaveInitialStock(c *gin.Context) {
	actor, ok := h.CurrentUser(c)
	if !ok {
		return
	}

	var req dto.InitialStockRequest
	if !h.BindJSON(c, &req) {
		return
	}
	date, items, err := req.ToInputs()
	if err != nil {
		h.Error(c, err)
		return
	}

	saved, err := h.ledger.SeedInitialStock(c.Request.Context(), actor, date, items)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SaveStockResponse{
		Message: "initial stock saved",
		Date:    date.String(),
		Entries: entryResponses(saved),
	})
}

func entryResponses(entries []ledger.Entry) []dto.EntryResponse {
	out := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.FromEntry(e)
	}
	return out
}

func dailyResponses(entries []ledger.EntryView) []dto.EntryResponse {
	out := make([]dto.EntryResponse, len(entries))
	for i, e := range entries {
		out[i] = dto.FromEntryView(e)
	}
	return out
}
