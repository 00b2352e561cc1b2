package middleware

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const corsMaxAge = 10 * time.Minute

// CORS allows the configured browser origins. "*" opens the API to any origin
// without credentials; entries like "https://*.example.com" match subdomains.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	var origins []string
	for _, o := range allowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Guest-Id", "X-Request-Id", "traceparent", "tracestate"},
		ExposeHeaders: []string{"X-Request-Id", "Retry-After", "Content-Disposition"},
		MaxAge:        corsMaxAge,
	}
	if slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowWildcard = true
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
