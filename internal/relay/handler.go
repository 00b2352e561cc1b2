package relay

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
)

// Sender forwards one prompt to the provider and returns its raw response body.
type Sender interface {
	Send(ctx context.Context, prompt string) ([]byte, error)
}

// ErrNotConfigured is reported when the relay has no provider credentials.
var ErrNotConfigured = errors.New("CLAUDE_API_KEY is not configured")

// Handler serves POST /api/claude.
type Handler struct {
	Sender Sender
}

// NewHandler constructs a relay handler. A nil sender answers every prompt with 500.
func NewHandler(sender Sender) *Handler {
	return &Handler{Sender: sender}
}

// RegisterRoutes attaches the relay endpoint to the engine root.
func (h *Handler) RegisterRoutes(r gin.IRoutes, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.relay)
	r.POST("/api/claude", handlers...)
}

type relayRequest struct {
	Prompt *string `json:"prompt"`
}

func (h *Handler) relay(c *gin.Context) {
	var req relayRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Prompt == nil || strings.TrimSpace(*req.Prompt) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "prompt is required", nil)
		return
	}

	if h.Sender == nil {
		metrics.IncRelayFailure()
		respond.Error(c, http.StatusInternalServerError, "provider_error", ErrNotConfigured.Error(), nil)
		return
	}

	metrics.IncRelayRequest()
	start := time.Now()
	body, err := h.Sender.Send(c.Request.Context(), *req.Prompt)
	elapsed := metrics.SinceMillis(start)
	metrics.ObserveRelayDurationMs(elapsed)
	if err != nil {
		metrics.IncRelayFailure()
		telemetry.Error("relay.failed", map[string]any{
			"request_id":  c.GetString("requestId"),
			"duration_ms": elapsed,
			"prompt_len":  len(*req.Prompt),
			"error":       err,
		})
		msg := err.Error()
		if strings.TrimSpace(msg) == "" {
			msg = "provider request failed"
		}
		respond.Error(c, http.StatusInternalServerError, "provider_error", msg, nil)
		return
	}

	c.Data(http.StatusOK, "application/json", body)
}
