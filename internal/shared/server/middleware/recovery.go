package middleware

import (
	"io"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a logged 500 with the standard error body.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecoveryWithWriter(io.Discard, func(c *gin.Context, rec any) {
		telemetry.Error("http.panic", map[string]any{
			"request_id": RequestIDFromContext(c),
			"panic":      rec,
			"stack":      string(debug.Stack()),
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
		})
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Unexpected server error", nil)
	})
}
