package coverletters

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

// RegisterRoutes attaches cover letter routes; mw guards the generate endpoint.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	rg.POST("/cover-letters/generate", append(append([]gin.HandlerFunc{}, mw...), h.generate)...)
	rg.GET("/cover-letters", h.list)
	rg.POST("/cover-letters", h.save)
	rg.GET("/cover-letters/:id", h.get)
	rg.DELETE("/cover-letters/:id", h.delete)
}

type generateRequest struct {
	JobDescription string   `json:"jobDescription"`
	StoryIDs       []string `json:"storyIds"`
	All            bool     `json:"all"`
}

type saveRequest struct {
	JobDescription string   `json:"jobDescription"`
	StoryIDs       []string `json:"storyIds"`
	CoverLetter    string   `json:"coverLetter"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	letter, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req.JobDescription, req.StoryIDs, req.All)
	if err != nil {
		h.writeError(c, err, "failed to generate cover letter")
		return
	}
	respond.OK(c, gin.H{"coverLetter": letter})
}

func (h *Handler) save(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	owner := Owner{ID: middleware.UserIDFromContext(c), Email: middleware.UserEmailFromContext(c)}
	l, err := h.Svc.Save(c.Request.Context(), owner, req.JobDescription, req.StoryIDs, req.CoverLetter)
	if err != nil {
		h.writeError(c, err, "failed to save cover letter")
		return
	}
	middleware.SetRecordID(c, l.ID)
	respond.Created(c, l)
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list cover letters", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	l, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "failed to fetch cover letter")
		return
	}
	respond.OK(c, l)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		h.writeError(c, err, "failed to delete cover letter")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "cover letter not found", nil)
	case errors.Is(err, ErrLLM):
		respond.Error(c, http.StatusBadGateway, "llm_error", "Failed to generate cover letter. Please try again.", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
