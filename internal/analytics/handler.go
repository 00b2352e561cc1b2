package analytics

import (
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const maxEventNameLen = 100

// Handler lets the web client forward events through the server-side tracker.
type Handler struct {
	Tracker Tracker
}

func NewHandler(t Tracker) *Handler {
	return &Handler{Tracker: t}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/analytics/events", h.track)
}

type trackRequest struct {
	Event      string         `json:"event"`
	Properties map[string]any `json:"properties"`
}

func (h *Handler) track(c *gin.Context) {
	var req trackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	event := strings.TrimSpace(req.Event)
	if event == "" || utf8.RuneCountInString(event) > maxEventNameLen {
		respond.Error(c, http.StatusBadRequest, "validation_error", "event is required", nil)
		return
	}
	props := req.Properties
	if props == nil {
		props = map[string]any{}
	}
	if email := middleware.UserEmailFromContext(c); email != "" {
		props["email"] = email
	}
	if h.Tracker != nil {
		h.Tracker.Track(c.Request.Context(), middleware.UserIDFromContext(c), event, props)
	}
	respond.JSON(c, http.StatusAccepted, gin.H{"accepted": true})
}
