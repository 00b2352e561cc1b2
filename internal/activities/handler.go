package activities

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
	rg.GET("/activities", h.list)
	rg.POST("/activities", h.create)
	rg.GET("/activities/summary", h.summary)
	rg.PUT("/activities/:id", h.update)
	rg.DELETE("/activities/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list activities", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	owner := Owner{ID: middleware.UserIDFromContext(c), Email: middleware.UserEmailFromContext(c)}
	a, err := h.Svc.Create(c.Request.Context(), owner, in)
	if err != nil {
		h.writeError(c, err, "failed to create activity")
		return
	}
	middleware.SetRecordID(c, a.ID)
	respond.Created(c, a)
}

func (h *Handler) update(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	a, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		h.writeError(c, err, "failed to update activity")
		return
	}
	respond.OK(c, a)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		h.writeError(c, err, "failed to delete activity")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("date"))
	if err != nil {
		h.writeError(c, err, "failed to summarize activities")
		return
	}
	respond.OK(c, sum)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "activity not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
