package reports

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"

	"doccstock/internal/core/apperror"
	"doccstock/internal/domain/pba"
)

var validate = validator.New()

// Rollup groups entries by product code. Every registered type gets a row,
// ordered by code, even without entries.
//
// OpeningStock is the largest opening seen in the range and ClosingStock is the
// closing of the last entry processed, so entries must arrive in ascending date order.
// Entries whose code is not registered are skipped.
func Rollup(entries []RollupEntry, productTypes []pba.ProductType) (*InventoryReport, error) {
	for i := range entries {
		if err := validate.Struct(entries[i]); err != nil {
			return nil, rollupValidationError(i, err)
		}
	}

	sorted := make([]pba.ProductType, len(productTypes))
	copy(sorted, productTypes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Code < sorted[j].Code })

	rows := make([]InventoryRow, len(sorted))
	index := make(map[string]int, len(sorted))
	for i, p := range sorted {
		rows[i] = InventoryRow{Code: p.Code, Description: p.Description}
		index[p.Code] = i
	}

	for _, e := range entries {
		i, ok := index[e.Code]
		if !ok {
			continue
		}
		row := &rows[i]
		row.Production += e.Production
		row.Delivery += e.Delivery
		row.Spoilage += e.Spoilage
		// TODO: replace with the opening of the first entry once clients stop relying on the max.
		if e.OpeningStock > row.OpeningStock {
			row.OpeningStock = e.OpeningStock
		}
		row.ClosingStock = e.ClosingStock
		row.EntryCount++
	}

	report := &InventoryReport{Rows: rows}
	for _, r := range rows {
		report.Totals.OpeningStock += r.OpeningStock
		report.Totals.Production += r.Production
		report.Totals.Delivery += r.Delivery
		report.Totals.Spoilage += r.Spoilage
		report.Totals.ClosingStock += r.ClosingStock
		report.Totals.EntryCount += r.EntryCount
	}

	return report, nil
}

func rollupValidationError(index int, err error) error {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return apperror.NewInvalidItem(index, fe.Field(),
			fmt.Sprintf("%s failed %q validation", fe.Field(), fe.Tag()))
	}
	return apperror.NewInvalidItem(index, "", err.Error())
}
