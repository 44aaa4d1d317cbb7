// Package dto provides Data Transfer Objects for API requests/responses.
package dto

import (
	"doccstock/internal/core/apperror"
	"doccstock/internal/core/types"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// ListResponse wraps a list with its size.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Count int `json:"count"`
}

// NewListResponse never returns a null items array.
func NewListResponse[T any](items []T) ListResponse[T] {
	if items == nil {
		items = []T{}
	}
	return ListResponse[T]{Items: items, Count: len(items)}
}

func mapSlice[S, D any](src []S, fn func(S) D) []D {
	out := make([]D, len(src))
	for i, v := range src {
		out[i] = fn(v)
	}
	return out
}

// ParseDate parses a YYYY-MM-DD value into a validation error naming field.
func ParseDate(field, raw string) (types.Date, error) {
	d, err := types.ParseDate(raw)
	if err != nil {
		return types.Date{}, apperror.NewValidation("invalid date").
			WithDetail("field", field).
			WithDetail("value", raw).
			WithCause(err)
	}
	return d, nil
}
