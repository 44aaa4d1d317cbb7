package dto

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// Quantity is a stock count read leniently from forms: numbers and numeric
// strings are accepted and truncated toward zero, anything else reads as 0.
// Negative and out-of-range values are kept, saturated to the int64 range, so
// the service can reject them.
type Quantity int64

// UnmarshalJSON implements json.Unmarshaler.
func (q *Quantity) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*q = 0
			return nil
		}
		*q = parseQuantity(s)
		return nil
	}
	*q = parseQuantity(string(data))
	return nil
}

// Int64 returns the quantity as int64.
func (q Quantity) Int64() int64 {
	return int64(q)
}

func parseQuantity(s string) Quantity {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil || errors.Is(err, strconv.ErrRange) {
		return Quantity(n)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0
	}
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt64:
		return math.MaxInt64
	case f <= math.MinInt64:
		return math.MinInt64
	}
	return Quantity(math.Trunc(f))
}
