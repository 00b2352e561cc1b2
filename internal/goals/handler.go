package goals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches goal routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/goals", h.list)
	rg.POST("/goals", h.createCategory)
	rg.PUT("/goals/order", h.reorder)
	rg.DELETE("/goals/:id", h.deleteCategory)
	rg.POST("/goals/:id/tasks", h.addTask)
	rg.PATCH("/goals/:id/tasks/:taskId", h.toggleTask)
	rg.DELETE("/goals/:id/tasks/:taskId", h.deleteTask)
	rg.POST("/goals/:id/tasks/:taskId/move", h.moveTask)
	rg.POST("/goals/:id/suggestions", h.suggest)
	rg.POST("/goals/:id/suggestions/:suggestionId/approve", h.approve)
	rg.DELETE("/goals/:id/suggestions/:suggestionId", h.deleteSuggestion)
}

type categoryRequest struct {
	Category string `json:"category"`
}

type textRequest struct {
	Text string `json:"text"`
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

type moveRequest struct {
	ToIndex *int `json:"toIndex"`
}

func actor(c *gin.Context) Actor {
	return Actor{ID: middleware.UserIDFromContext(c), Email: middleware.UserEmailFromContext(c)}
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list goals", nil)
		return
	}
	respond.OK(c, gin.H{"categories": items, "isOwner": h.Svc.IsOwner(actor(c))})
}

func (h *Handler) createCategory(c *gin.Context) {
	var req categoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	cat, err := h.Svc.CreateCategory(c.Request.Context(), actor(c), req.Category)
	if err != nil {
		h.writeError(c, err, "failed to create category")
		return
	}
	middleware.SetRecordID(c, cat.ID)
	respond.Created(c, cat)
}

func (h *Handler) reorder(c *gin.Context) {
	var req orderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	items, err := h.Svc.ReorderCategories(c.Request.Context(), actor(c), req.IDs)
	if err != nil {
		h.writeError(c, err, "failed to reorder goals")
		return
	}
	respond.OK(c, gin.H{"categories": items})
}

func (h *Handler) deleteCategory(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.DeleteCategory(c.Request.Context(), actor(c), id); err != nil {
		h.writeError(c, err, "failed to delete category")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) addTask(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.AddTask(c.Request.Context(), actor(c), id, req.Text)
	if err != nil {
		h.writeError(c, err, "failed to add task")
		return
	}
	respond.Created(c, cat)
}

func (h *Handler) toggleTask(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.ToggleTask(c.Request.Context(), actor(c), id, c.Param("taskId"))
	if err != nil {
		h.writeError(c, err, "failed to toggle task")
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) deleteTask(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.DeleteTask(c.Request.Context(), actor(c), id, c.Param("taskId"))
	if err != nil {
		h.writeError(c, err, "failed to delete task")
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) moveTask(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ToIndex == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "toIndex is required", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.MoveTask(c.Request.Context(), actor(c), id, c.Param("taskId"), *req.ToIndex)
	if err != nil {
		h.writeError(c, err, "failed to move task")
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) suggest(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.Suggest(c.Request.Context(), actor(c), id, req.Text)
	if err != nil {
		h.writeError(c, err, "failed to save suggestion")
		return
	}
	respond.Created(c, cat)
}

func (h *Handler) approve(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.ApproveSuggestion(c.Request.Context(), actor(c), id, c.Param("suggestionId"))
	if err != nil {
		h.writeError(c, err, "failed to approve suggestion")
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) deleteSuggestion(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	cat, err := h.Svc.DeleteSuggestion(c.Request.Context(), actor(c), id, c.Param("suggestionId"))
	if err != nil {
		h.writeError(c, err, "failed to delete suggestion")
		return
	}
	respond.OK(c, cat)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrForbidden):
		respond.Error(c, http.StatusForbidden, "forbidden", "only the goal owner can do that", nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "goal not found", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
