package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/tracing"
)

const recordIDKey = "recordId"

// quietPaths are scraped or polled often and only feed metrics.
var quietPaths = map[string]bool{"/metrics": true, "/api/v1/health": true}

// SetRecordID tags the request log line with the record a handler touched.
func SetRecordID(c *gin.Context, id string) {
	if c != nil && id != "" {
		c.Set(recordIDKey, id)
	}
}

// Logging writes one request.complete line per request and counts it in metrics.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		route := c.FullPath()
		metrics.ObserveRequest(c.Request.Method, route, status)
		if quietPaths[c.Request.URL.Path] && status < http.StatusInternalServerError {
			return
		}

		fields := map[string]any{
			"request_id":  RequestIDFromContext(c),
			"method":      c.Request.Method,
			"path":        c.Request.URL.Path,
			"route":       route,
			"status":      status,
			"duration_ms": metrics.SinceMillis(start),
			"user_id":     UserIDFromContext(c),
			"record_id":   c.GetString(recordIDKey),
			"is_guest":    IsGuest(c),
			"client_ip":   c.ClientIP(),
		}
		if traceID := tracing.TraceID(c.Request.Context()); traceID != "" {
			fields["trace_id"] = traceID
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}
		if status >= http.StatusInternalServerError {
			telemetry.Error("request.complete", fields)
			return
		}
		telemetry.Info("request.complete", fields)
	}
}
