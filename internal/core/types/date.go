// Package types provides value types shared across domains.
package types

import (
	"fmt"
	"time"
)

// DateLayout is the wire format of a calendar date.
const DateLayout = "2006-01-02"

// Date is a calendar day, stored as UTC midnight.
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar day in t's own location and returns it as UTC midnight.
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string. Out-of-range days like 2024-02-30 are rejected.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return NewDate(t), nil
}

// MustParseDate is ParseDate that panics. Use only in tests.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format(DateLayout)
}

// AddDays shifts the date by n calendar days, crossing month and year boundaries.
func (d Date) AddDays(n int) Date {
	return Date{d.AddDate(0, 0, n)}
}

// PrevDay returns the previous calendar day.
func (d Date) PrevDay() Date {
	return d.AddDays(-1)
}

// MonthStart returns the first day of the date's month.
func (d Date) MonthStart() Date {
	return Date{time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// MonthEnd returns the last day of the date's month.
func (d Date) MonthEnd() Date {
	return Date{d.MonthStart().AddDate(0, 1, -1)}
}

// WeekStart returns the Monday of the date's week.
func (d Date) WeekStart() Date {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDays(-offset)
}

// WeekEnd returns the Sunday of the date's week.
func (d Date) WeekEnd() Date {
	return d.WeekStart().AddDays(6)
}

// Equal reports whether both values denote the same day.
func (d Date) Equal(o Date) bool {
	return d.Time.Equal(o.Time)
}

// Before reports whether d is strictly earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time.Before(o.Time)
}

// After reports whether d is strictly later than o.
func (d Date) After(o Date) bool {
	return d.Time.After(o.Time)
}
