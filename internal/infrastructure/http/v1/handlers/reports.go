package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"doccstock/internal/core/types"
	"doccstock/internal/domain/reports"
	"doccstock/internal/infrastructure/http/v1/dto"
)

// ReportService is the part of reports.Service used over HTTP.
type ReportService interface {
	History(ctx context.Context, filter reports.HistoryFilter) ([]reports.HistoryRow, error)
	Dashboard(ctx context.Context, today types.Date) (*reports.Dashboard, error)
	Inventory(ctx context.Context, period reports.Period, anchor types.Date) (*reports.InventoryReport, error)
}

// ReportsHandler handles the admin report endpoints.
type ReportsHandler struct {
	*BaseHandler
	service ReportService
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service ReportService) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// History handles GET /stock/history
func (h *ReportsHandler) History(c *gin.Context) {
	var query dto.HistoryQuery
	if !h.BindQuery(c, &query) {
		return
	}
	filter, err := query.ToFilter()
	if err != nil {
		h.Error(c, err)
		return
	}

	rows, err := h.service.History(c.Request.Context(), filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]dto.HistoryRowResponse, len(rows))
	for i, r := range rows {
		items[i] = dto.FromHistoryRow(r)
	}
	h.OK(c, dto.NewListResponse(items))
}

// Dashboard handles GET /stock/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	dashboard, err := h.service.Dashboard(c.Request.Context(), h.Today())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromDashboard(dashboard))
}

// Inventory handles GET /stock/inventory
func (h *ReportsHandler) Inventory(c *gin.Context) {
	var query dto.InventoryQuery
	if !h.BindQuery(c, &query) {
		return
	}

	period, err := reports.ParsePeriod(query.Period)
	if err != nil {
		h.Error(c, err)
		return
	}
	anchor, err := query.Anchor(h.Today())
	if err != nil {
		h.Error(c, err)
		return
	}

	report, err := h.service.Inventory(c.Request.Context(), period, anchor)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInventory(report))
}
