package dto

import (
	"doccstock/internal/core/types"
	"doccstock/internal/domain/reports"
)

// --- History ---

// HistoryQuery binds GET /stock/history parameters.
type HistoryQuery struct {
	StartDate string `form:"startDate" binding:"omitempty,datetime=2006-01-02"`
	EndDate   string `form:"endDate" binding:"omitempty,datetime=2006-01-02"`
	PbaType   string `form:"pbaType"`
}

// ToFilter converts the query to a history filter.
func (q *HistoryQuery) ToFilter() (reports.HistoryFilter, error) {
	filter := reports.HistoryFilter{Code: q.PbaType}

	if q.StartDate != "" {
		d, err := ParseDate("startDate", q.StartDate)
		if err != nil {
			return filter, err
		}
		filter.StartDate = &d
	}
	if q.EndDate != "" {
		d, err := ParseDate("endDate", q.EndDate)
		if err != nil {
			return filter, err
		}
		filter.EndDate = &d
	}
	return filter, nil
}

// HistoryRowResponse is one history line.
type HistoryRowResponse struct {
	Date         string  `json:"date"`
	PbaTypeID    string  `json:"pba_type_id"`
	Code         string  `json:"code"`
	Description  string  `json:"description"`
	InitialStock int64   `json:"stock_initial"`
	Production   int64   `json:"production"`
	Delivery     int64   `json:"livraison"`
	Spoilage     int64   `json:"avaries"`
	CurrentStock int64   `json:"stock_actuel"`
	Observations *string `json:"observations"`
	Username     *string `json:"username"`
	Status       string  `json:"status"`
}

// FromHistoryRow converts a history row to response.
func FromHistoryRow(r reports.HistoryRow) HistoryRowResponse {
	return HistoryRowResponse{
		Date:         types.NewDate(r.Date).String(),
		PbaTypeID:    r.ProductTypeID.String(),
		Code:         r.Code,
		Description:  r.Description,
		InitialStock: r.OpeningStock,
		Production:   r.Production,
		Delivery:     r.Delivery,
		Spoilage:     r.Spoilage,
		CurrentStock: r.ClosingStock,
		Observations: r.Notes,
		Username:     r.Username,
		Status:       string(r.Status),
	}
}

// --- Dashboard ---

// SnapshotRowResponse is the current stock of one product type.
type SnapshotRowResponse struct {
	PbaTypeID    string `json:"pba_type_id"`
	Code         string `json:"code"`
	Description  string `json:"description"`
	InitialStock int64  `json:"stock_initial"`
	Production   int64  `json:"production"`
	Delivery     int64  `json:"livraison"`
	Spoilage     int64  `json:"avaries"`
	CurrentStock int64  `json:"stock_actuel"`
	HasEntry     bool   `json:"has_entry"`
	Status       string `json:"status"`
}

// FlowTotalsResponse sums flows over a range.
type FlowTotalsResponse struct {
	Production int64 `json:"total_production"`
	Delivery   int64 `json:"total_livraison"`
	Spoilage   int64 `json:"total_avaries"`
}

// DailyTotalsResponse sums flows for one date.
type DailyTotalsResponse struct {
	Date string `json:"date"`
	FlowTotalsResponse
}

// DashboardResponse is returned by GET /stock/dashboard.
type DashboardResponse struct {
	Date          string                `json:"date"`
	CurrentStock  []SnapshotRowResponse `json:"currentStock"`
	MonthStart    string                `json:"monthStart"`
	MonthlyTotals FlowTotalsResponse    `json:"monthlyTotals"`
	TrailingFrom  string                `json:"trailingFrom"`
	WeeklyData    []DailyTotalsResponse `json:"weeklyData"`
}

// FromDashboard converts a dashboard to response.
func FromDashboard(d *reports.Dashboard) DashboardResponse {
	return DashboardResponse{
		Date: d.Date.String(),
		CurrentStock: mapSlice(d.Snapshot, func(r reports.SnapshotRow) SnapshotRowResponse {
			return SnapshotRowResponse{
				PbaTypeID:    r.ProductTypeID.String(),
				Code:         r.Code,
				Description:  r.Description,
				InitialStock: r.OpeningStock,
				Production:   r.Production,
				Delivery:     r.Delivery,
				Spoilage:     r.Spoilage,
				CurrentStock: r.ClosingStock,
				HasEntry:     r.HasEntry,
				Status:       string(r.Status),
			}
		}),
		MonthStart: d.MonthStart.String(),
		MonthlyTotals: FlowTotalsResponse{
			Production: d.MonthlyTotals.Production,
			Delivery:   d.MonthlyTotals.Delivery,
			Spoilage:   d.MonthlyTotals.Spoilage,
		},
		TrailingFrom: d.TrailingFrom.String(),
		WeeklyData: mapSlice(d.Trailing, func(t reports.DailyTotals) DailyTotalsResponse {
			return DailyTotalsResponse{
				Date: types.NewDate(t.Date).String(),
				FlowTotalsResponse: FlowTotalsResponse{
					Production: t.Production,
					Delivery:   t.Delivery,
					Spoilage:   t.Spoilage,
				},
			}
		}),
	}
}

// --- Inventory ---

// InventoryQuery binds GET /stock/inventory parameters.
type InventoryQuery struct {
	Period string `form:"period"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// Anchor returns the requested date or today when absent.
func (q *InventoryQuery) Anchor(today types.Date) (types.Date, error) {
	if q.Date == "" {
		return today, nil
	}
	return ParseDate("date", q.Date)
}

// InventoryRowResponse aggregates one product type.
type InventoryRowResponse struct {
	Code         string `json:"code"`
	Description  string `json:"description"`
	InitialStock int64  `json:"stock_initial"`
	Production   int64  `json:"production"`
	Delivery     int64  `json:"livraison"`
	Spoilage     int64  `json:"avaries"`
	CurrentStock int64  `json:"stock_actuel"`
	EntryCount   int    `json:"entries"`
	Status       string `json:"status"`
}

// InventoryTotalsResponse sums every column.
type InventoryTotalsResponse struct {
	InitialStock int64 `json:"stock_initial"`
	Production   int64 `json:"production"`
	Delivery     int64 `json:"livraison"`
	Spoilage     int64 `json:"avaries"`
	CurrentStock int64 `json:"stock_actuel"`
	EntryCount   int   `json:"entries"`
}

// InventoryResponse is returned by GET /stock/inventory.
type InventoryResponse struct {
	Period    string                  `json:"period"`
	StartDate string                  `json:"startDate"`
	EndDate   string                  `json:"endDate"`
	Items     []InventoryRowResponse  `json:"items"`
	Totals    InventoryTotalsResponse `json:"totals"`
}

// FromInventory converts an inventory report to response.
func FromInventory(r *reports.InventoryReport) InventoryResponse {
	return InventoryResponse{
		Period:    string(r.Period),
		StartDate: r.StartDate.String(),
		EndDate:   r.EndDate.String(),
		Items: mapSlice(r.Rows, func(row reports.InventoryRow) InventoryRowResponse {
			return InventoryRowResponse{
				Code:         row.Code,
				Description:  row.Description,
				InitialStock: row.OpeningStock,
				Production:   row.Production,
				Delivery:     row.Delivery,
				Spoilage:     row.Spoilage,
				CurrentStock: row.ClosingStock,
				EntryCount:   row.EntryCount,
				Status:       string(row.Status),
			}
		}),
		Totals: InventoryTotalsResponse{
			InitialStock: r.Totals.OpeningStock,
			Production:   r.Totals.Production,
			Delivery:     r.Totals.Delivery,
			Spoilage:     r.Totals.Spoilage,
			CurrentStock: r.Totals.ClosingStock,
			EntryCount:   r.Totals.EntryCount,
		},
	}
}
