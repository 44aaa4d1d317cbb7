package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewInvalidItem_NamesItemAndField(t *testing.T) {
	err := NewInvalidItem(2, "production", "must not be negative")

	assert.Equal(t, CodeValidation, err.Code)
	assert.Equal(t, http.StatusBadRequest, err.HTTPStatus)
	assert.Equal(t, "item 2: must not be negative", err.Message)
	assert.Equal(t, 2, err.Details["item"])
	assert.Equal(t, "production", err.Details["field"])
}

func TestAsAppError_ThroughWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := fmt.Errorf("apply movements: %w", NewDatabase("save daily stock", cause))

	appErr, ok := AsAppError(wrapped)
	assert.True(t, ok)
	assert.Equal(t, CodeDatabase, appErr.Code)
	assert.ErrorIs(t, wrapped, cause)
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(wrapped))
}

func TestGetHTTPStatus_PlainError(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus(errors.New("boom")))
	assert.False(t, HasCode(errors.New("boom"), CodeValidation))
	assert.True(t, IsNotFound(NewNotFound("pba type", "X")))
}
