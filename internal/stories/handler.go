package stories

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const maxImageSize = 5 << 20 // 5MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches story routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stories", h.list)
	rg.POST("/stories", h.create)
	rg.GET("/stories/prompts/random", h.randomPrompt)
	rg.GET("/stories/:id", h.get)
	rg.PUT("/stories/:id", h.update)
	rg.DELETE("/stories/:id", h.delete)
	rg.POST("/stories/:id/image", h.uploadImage)
	rg.GET("/stories/:id/image", h.image)
}

func (h *Handler) list(c *gin.Context) {
	limit := 20
	offset := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 50 {
		limit = 50
	}
	if v := c.Query("offset"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			offset = parsed
		}
	}
	if offset < 0 {
		offset = 0
	}

	items, err := h.Svc.List(c.Request.Context(), middleware.UserIDFromContext(c), limit, offset)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list stories", nil)
		return
	}
	resp := make([]storyResponse, 0, len(items))
	for _, s := range items {
		resp = append(resp, toResponse(s))
	}
	respond.OK(c, resp)
}

func (h *Handler) create(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	author := Author{ID: middleware.UserIDFromContext(c), Email: middleware.UserEmailFromContext(c)}
	story, err := h.Svc.Create(c.Request.Context(), author, in)
	if err != nil {
		h.writeError(c, err, "failed to create story")
		return
	}
	middleware.SetRecordID(c, story.ID)
	respond.Created(c, toResponse(story))
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	story, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "failed to fetch story")
		return
	}
	html, err := RenderHTML(story.Content)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to render story", nil)
		return
	}
	respond.OK(c, storyDetailResponse{
		storyResponse: toResponse(story),
		ContentHTML:   html,
		YouTubeID:     YouTubeID(story.YouTubeLink),
	})
}

func (h *Handler) update(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	story, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		h.writeError(c, err, "failed to update story")
		return
	}
	respond.OK(c, toResponse(story))
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		h.writeError(c, err, "failed to delete story")
		return
	}
	respond.NoContent(c)
}

func (h *Handler) uploadImage(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImageSize+1<<20)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "image is required", nil)
		return
	}
	if fileHeader.Size > maxImageSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "image must be 5MB or smaller", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read image", nil)
		return
	}
	defer file.Close()

	story, err := h.Svc.AttachImage(c.Request.Context(), middleware.UserIDFromContext(c), id, fileHeader.Filename, file)
	if err != nil {
		h.writeError(c, err, "failed to store image")
		return
	}
	respond.OK(c, toResponse(story))
}

func (h *Handler) image(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	rc, contentType, err := h.Svc.OpenImage(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		h.writeError(c, err, "failed to open image")
		return
	}
	defer rc.Close()
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "private, max-age=300")
	c.Status(http.StatusOK)
	_, _ = io.Copy(c.Writer, rc)
}

func (h *Handler) randomPrompt(c *gin.Context) {
	respond.OK(c, gin.H{"prompt": RandomPrompt(writingPrompts, c.Query("exclude"), nil)})
}

func (h *Handler) writeError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotAnImage):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "story not found", nil)
	case errors.Is(err, ErrNoImage):
		respond.Error(c, http.StatusNotFound, "not_found", "story has no image", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
