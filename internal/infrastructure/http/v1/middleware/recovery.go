// Package middleware provides HTTP middleware components.
package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"doccstock/internal/core/apperror"
	"doccstock/pkg/logger"
)

// Recovery middleware turns panics into a 500 response. The stack is logged only.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.Error(c.Request.Context(), "panic recovered",
					"error", err,
					"stack", string(debug.Stack()),
				)

				c.AbortWithStatusJSON(http.StatusInternalServerError, errorBody(
					apperror.CodeInternal,
					"Internal server error",
					map[string]any{"request_id": c.GetString("request_id")},
				))
			}
		}()
		c.Next()
	}
}
