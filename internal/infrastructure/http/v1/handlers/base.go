// Package handlers provides HTTP request handlers.
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"doccstock/internal/core/apperror"
	appctx "doccstock/internal/core/context"
	"doccstock/internal/core/types"
	"doccstock/internal/infrastructure/http/v1/middleware"
)

// Clock returns the current instant.
type Clock func() time.Time

// BaseHandler provides common handler utilities.
type BaseHandler struct {
	now      Clock
	location *time.Location
}

// NewBaseHandler creates a base handler. "Today" is computed in location.
func NewBaseHandler(now Clock, location *time.Location) *BaseHandler {
	if now == nil {
		now = time.Now
	}
	if location == nil {
		location = time.UTC
	}
	return &BaseHandler{now: now, location: location}
}

// Today returns the current calendar date in the configured location.
func (h *BaseHandler) Today() types.Date {
	return types.NewDate(h.now().In(h.location))
}

// BindJSON binds and validates JSON request body.
func (h *BaseHandler) BindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		h.Error(c, middleware.BindingError("invalid request body", err))
		return false
	}
	return true
}

// BindQuery binds and validates query parameters.
func (h *BaseHandler) BindQuery(c *gin.Context, obj any) bool {
	if err := c.ShouldBindQuery(obj); err != nil {
		h.Error(c, middleware.BindingError("invalid query parameters", err))
		return false
	}
	return true
}

// Error registers error on Gin context and aborts request.
// The JSON response is produced by middleware.ErrorHandler.
func (h *BaseHandler) Error(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// CurrentUser returns the authenticated user or registers a 401.
func (h *BaseHandler) CurrentUser(c *gin.Context) (*appctx.UserContext, bool) {
	user := appctx.GetUser(c.Request.Context())
	if user == nil {
		h.Error(c, apperror.NewUnauthorized("authentication required"))
		return nil, false
	}
	return user, true
}

// OK sends 200 response with data.
func (h *BaseHandler) OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, data)
}

// Created sends 201 response with data.
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}
