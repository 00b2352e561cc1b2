package todos

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/todos", h.list)
	rg.POST("/todos", h.add)
	rg.PATCH("/todos/:id", h.toggle)
	rg.DELETE("/todos/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list todos", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) add(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	t, err := h.Svc.Add(c.Request.Context(), middleware.UserIDFromContext(c), req.Text)
	if err != nil {
		h.writeError(c, err, "failed to add todo")
		return
	}
	middleware.SetRecordID(c, t.ID)
	respond.Created(c, t)
}

func (h *Handler) toggle(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	t, err := h.Svc.Toggle(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "failed to update todo")
		return
	}
	respond.OK(c, t)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		h.writeError(c, err, "failed to delete todo")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "todo not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
