package reports

import (
	"strings"

	"doccstock/internal/core/apperror"
	"doccstock/internal/core/types"
)

// Period selects the inventory range around an anchor date.
type Period string

const (
	PeriodDay   Period = "day"
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
)

// ParsePeriod accepts day, week or month. Empty means day.
func ParsePeriod(s string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PeriodDay, nil
	case PeriodDay, PeriodWeek, PeriodMonth:
		return p, nil
	default:
		return "", apperror.NewValidation("period must be one of: day, week, month").
			WithDetail("field", "period").
			WithDetail("value", s)
	}
}

// Range returns the inclusive bounds of the period containing anchor.
// Weeks run Monday to Sunday.
func (p Period) Range(anchor types.Date) (from, to types.Date) {
	switch p {
	case PeriodWeek:
		return anchor.WeekStart(), anchor.WeekEnd()
	case PeriodMonth:
		return anchor.MonthStart(), anchor.MonthEnd()
	default:
		return anchor, anchor
	}
}
