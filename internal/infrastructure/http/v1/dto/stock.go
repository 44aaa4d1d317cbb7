package dto

import (
	"time"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/id"
	"doccstock/internal/core/types"
	"doccstock/internal/domain/ledger"
	"doccstock/internal/domain/pba"
)

// --- Product types ---

// PbaTypeResponse represents a product type.
type PbaTypeResponse struct {
	ID          string `json:"id"`
	Code        string `json:"code"`
	Description string `json:"description"`
}

// FromProductType converts a product type to response.
func FromProductType(p pba.ProductType) PbaTypeResponse {
	return PbaTypeResponse{
		ID:          p.ID.String(),
		Code:        p.Code,
		Description: p.Description,
	}
}

// FromProductTypes converts a list of product types.
func FromProductTypes(items []pba.ProductType) []PbaTypeResponse {
	return mapSlice(items, FromProductType)
}

// --- Daily movements ---

// DailyStockItem is one product line of the daily form.
type DailyStockItem struct {
	PbaTypeID    string   `json:"pba_type_id" binding:"required,uuid"`
	Production   Quantity `json:"production"`
	Delivery     Quantity `json:"livraison"`
	Spoilage     Quantity `json:"avaries"`
	Observations string   `json:"observations"`
}

// DailyStockRequest is the body of POST /stock/daily.
type DailyStockRequest struct {
	Date      string           `json:"date" binding:"required,datetime=2006-01-02"`
	StockData []DailyStockItem `json:"stockData" binding:"required,min=1,dive"`
}

// ToInputs converts the request into the service date and batch.
func (r *DailyStockRequest) ToInputs() (types.Date, []ledger.MovementInput, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return types.Date{}, nil, err
	}

	items := make([]ledger.MovementInput, len(r.StockData))
	for i, item := range r.StockData {
		typeID, err := parseItemID(i, item.PbaTypeID)
		if err != nil {
			return types.Date{}, nil, err
		}
		items[i] = ledger.MovementInput{
			ProductTypeID: typeID,
			Production:    item.Production.Int64(),
			Delivery:      item.Delivery.Int64(),
			Spoilage:      item.Spoilage.Int64(),
			Notes:         item.Observations,
		}
	}
	return date, items, nil
}

// InitialStockItem sets the opening stock of one product.
type InitialStockItem struct {
	PbaTypeID    string   `json:"pba_type_id" binding:"required,uuid"`
	InitialStock Quantity `json:"stock_initial"`
}

// InitialStockRequest is the body of POST /stock/initial-stock.
type InitialStockRequest struct {
	Date      string             `json:"date" binding:"required,datetime=2006-01-02"`
	StockData []InitialStockItem `json:"stockData" binding:"required,min=1,dive"`
}

// ToInputs converts the request into the service date and batch.
func (r *InitialStockRequest) ToInputs() (types.Date, []ledger.SeedInput, error) {
	date, err := ParseDate("date", r.Date)
	if err != nil {
		return types.Date{}, nil, err
	}

	items := make([]ledger.SeedInput, len(r.StockData))
	for i, item := range r.StockData {
		typeID, err := parseItemID(i, item.PbaTypeID)
		if err != nil {
			return types.Date{}, nil, err
		}
		items[i] = ledger.SeedInput{
			ProductTypeID: typeID,
			OpeningStock:  item.InitialStock.Int64(),
		}
	}
	return date, items, nil
}

func parseItemID(index int, raw string) (id.ID, error) {
	typeID, err := id.Parse(raw)
	if err != nil {
		return id.ID{}, apperror.NewInvalidItem(index, "pba_type_id", "invalid product type id").
			WithCause(err)
	}
	return typeID, nil
}

// EntryResponse represents a ledger entry.
type EntryResponse struct {
	Date         string    `json:"date"`
	PbaTypeID    string    `json:"pba_type_id"`
	Code         string    `json:"code,omitempty"`
	Description  string    `json:"description,omitempty"`
	InitialStock int64     `json:"stock_initial"`
	Production   int64     `json:"production"`
	Delivery     int64     `json:"livraison"`
	Spoilage     int64     `json:"avaries"`
	CurrentStock int64     `json:"stock_actuel"`
	Observations string    `json:"observations"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// FromEntry converts a ledger entry to response.
func FromEntry(e ledger.Entry) EntryResponse {
	return EntryResponse{
		Date:         e.Date.String(),
		PbaTypeID:    e.ProductTypeID.String(),
		InitialStock: e.OpeningStock,
		Production:   e.Production,
		Delivery:     e.Delivery,
		Spoilage:     e.Spoilage,
		CurrentStock: e.ClosingStock,
		Observations: e.Notes,
		UpdatedAt:    e.UpdatedAt,
	}
}

// FromEntryView converts a joined ledger entry to response.
func FromEntryView(v ledger.EntryView) EntryResponse {
	resp := FromEntry(v.Entry)
	resp.Code = v.Code
	resp.Description = v.Description
	return resp
}

// SaveStockResponse is returned by the write endpoints.
type SaveStockResponse struct {
	Message string          `json:"message"`
	Date    string          `json:"date"`
	Entries []EntryResponse `json:"entries"`
}
