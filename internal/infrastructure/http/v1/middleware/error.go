package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"doccstock/internal/core/apperror"
	"doccstock/pkg/logger"
)

// ErrorHandler renders errors registered with c.Error as {code, message, details}.
// Causes are logged, never sent to clients.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		ctx := c.Request.Context()

		if appErr, ok := apperror.AsAppError(err); ok {
			if appErr.Err != nil {
				logger.Error(ctx, "request error",
					"code", appErr.Code,
					"cause", appErr.Err,
				)
			}

			c.JSON(apperror.GetHTTPStatus(appErr), errorBody(appErr.Code, appErr.Message, appErr.Details))
			return
		}

		logger.Error(ctx, "unhandled error", "error", err)

		c.JSON(http.StatusInternalServerError, errorBody(
			apperror.CodeInternal,
			"Internal server error",
			map[string]any{"request_id": c.GetString("request_id")},
		))
	}
}

func errorBody(code, message string, details map[string]any) gin.H {
	return gin.H{
		"code":    code,
		"message": message,
		"details": details,
	}
}
