package resumes

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const maxFileSize = 10 << 20 // 10MB

const msgObjectiveInput = "Please provide both a job description and your current resume objective."

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches resume routes; mw guards the endpoints that call the model.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	with := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mw...), fn)
	}

	records[Job, JobInput]{
		noun:   "job",
		list:   h.Svc.ListJobs,
		create: h.Svc.CreateJob,
		update: h.Svc.UpdateJob,
		sel:    h.Svc.SelectJob,
		del:    h.Svc.DeleteJob,
	}.register(rg, "/resume/jobs")
	records[Project, ProjectInput]{
		noun:   "project",
		list:   h.Svc.ListProjects,
		create: h.Svc.CreateProject,
		update: h.Svc.UpdateProject,
		sel:    h.Svc.SelectProject,
		del:    h.Svc.DeleteProject,
	}.register(rg, "/resume/projects")
	records[Skill, SkillInput]{
		noun:   "skill",
		list:   h.Svc.ListSkills,
		create: h.Svc.CreateSkill,
		update: h.Svc.UpdateSkill,
		sel:    h.Svc.SelectSkill,
		del:    h.Svc.DeleteSkill,
	}.register(rg, "/resume/skills")

	rg.GET("/resume/files", h.listFiles)
	rg.POST("/resume/files", h.uploadFile)
	rg.GET("/resume/files/:id", h.getFile)
	rg.PATCH("/resume/files/:id/select", h.selectFile)
	rg.DELETE("/resume/files/:id", h.deleteFile)

	rg.POST("/resume/objective", with(h.objective)...)
	rg.POST("/resume/optimize", with(h.optimize)...)
	rg.POST("/resume/pdf", h.pdf)
}

type selectRequest struct {
	Selected *bool `json:"selected"`
}

// records serves list/create/update/select/delete for one record kind.
type records[T any, In any] struct {
	noun   string
	list   func(ctx context.Context, userID string) ([]T, error)
	create func(ctx context.Context, userID string, in In) (T, error)
	update func(ctx context.Context, userID, id string, in In) (T, error)
	sel    func(ctx context.Context, userID, id string, selected bool) (T, error)
	del    func(ctx context.Context, userID, id string) error
}

func (r records[T, In]) register(rg *gin.RouterGroup, path string) {
	rg.GET(path, r.handleList)
	rg.POST(path, r.handleCreate)
	rg.PUT(path+"/:id", r.handleUpdate)
	rg.PATCH(path+"/:id/select", r.handleSelect)
	rg.DELETE(path+"/:id", r.handleDelete)
}

func (r records[T, In]) handleList(c *gin.Context) {
	items, err := r.list(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list "+r.noun+"s", nil)
		return
	}
	respond.OK(c, items)
}

func (r records[T, In]) handleCreate(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	v, err := r.create(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if err != nil {
		writeError(c, err, r.noun, "failed to create "+r.noun)
		return
	}
	respond.Created(c, v)
}

func (r records[T, In]) handleUpdate(c *gin.Context) {
	var in In
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	v, err := r.update(c.Request.Context(), middleware.UserIDFromContext(c), id, in)
	if err != nil {
		writeError(c, err, r.noun, "failed to update "+r.noun)
		return
	}
	respond.OK(c, v)
}

func (r records[T, In]) handleSelect(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Selected == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "selected is required", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	v, err := r.sel(c.Request.Context(), middleware.UserIDFromContext(c), id, *req.Selected)
	if err != nil {
		writeError(c, err, r.noun, "failed to update "+r.noun)
		return
	}
	respond.OK(c, v)
}

func (r records[T, In]) handleDelete(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := r.del(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, r.noun, "failed to delete "+r.noun)
		return
	}
	respond.NoContent(c)
}

func (h *Handler) listFiles(c *gin.Context) {
	items, err := h.Svc.ListFiles(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list files", nil)
		return
	}
	respond.OK(c, items)
}

func (h *Handler) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxFileSize+1<<20)
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	if fileHeader.Size > maxFileSize {
		respond.Error(c, http.StatusRequestEntityTooLarge, "file_too_large", "file must be 10MB or smaller", nil)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer file.Close()

	f, err := h.Svc.UploadFile(c.Request.Context(), middleware.UserIDFromContext(c), fileHeader.Filename, file)
	if err != nil {
		writeError(c, err, "file", "failed to store file")
		return
	}
	middleware.SetRecordID(c, f.ID)
	respond.Created(c, f)
}

func (h *Handler) getFile(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	f, err := h.Svc.GetFile(c.Request.Context(), middleware.UserIDFromContext(c), id)
	if err != nil {
		writeError(c, err, "file", "failed to fetch file")
		return
	}
	respond.OK(c, f)
}

func (h *Handler) selectFile(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Selected == nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "selected is required", nil)
		return
	}
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	f, err := h.Svc.SelectFile(c.Request.Context(), middleware.UserIDFromContext(c), id, *req.Selected)
	if err != nil {
		writeError(c, err, "file", "failed to update file")
		return
	}
	respond.OK(c, f)
}

func (h *Handler) deleteFile(c *gin.Context) {
	id := c.Param("id")
	middleware.SetRecordID(c, id)
	if err := h.Svc.DeleteFile(c.Request.Context(), middleware.UserIDFromContext(c), id); err != nil {
		writeError(c, err, "file", "failed to delete file")
		return
	}
	respond.NoContent(c)
}

type objectiveRequest struct {
	JobDescription   string `json:"jobDescription"`
	CurrentObjective string `json:"currentObjective"`
}

func (h *Handler) objective(c *gin.Context) {
	var req objectiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Objective(c.Request.Context(), middleware.UserIDFromContext(c), req.JobDescription, req.CurrentObjective)
	if err != nil {
		if errors.Is(err, ErrObjectiveInput) {
			respond.Error(c, http.StatusBadRequest, "validation_error", msgObjectiveInput, nil)
			return
		}
		writeError(c, err, "objective", "Failed to generate modified objective. Please try again.")
		return
	}
	respond.OK(c, gin.H{"objective": out})
}

type optimizeRequest struct {
	JobDescription string `json:"jobDescription"`
	FileID         string `json:"fileId"`
}

func (h *Handler) optimize(c *gin.Context) {
	var req optimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	out, err := h.Svc.Optimize(c.Request.Context(), middleware.UserIDFromContext(c), req.JobDescription, req.FileID)
	if err != nil {
		writeError(c, err, "file", "Failed to optimize resume. Please try again.")
		return
	}
	respond.OK(c, gin.H{"suggestions": out})
}

func (h *Handler) pdf(c *gin.Context) {
	var doc Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	var buf bytes.Buffer
	if err := h.Svc.RenderPDF(c.Request.Context(), middleware.UserIDFromContext(c), doc, &buf); err != nil {
		writeError(c, err, "resume", "failed to render resume")
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+pdfFileName(doc.PersonalInfo.Name)+`"`)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

func pdfFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	if b.Len() == 0 {
		return "resume.pdf"
	}
	return b.String() + "-resume.pdf"
}

func writeError(c *gin.Context, err error, noun, fallback string) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", noun+" not found", nil)
	case errors.Is(err, ErrLLM):
		respond.Error(c, http.StatusBadGateway, "llm_error", fallback, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}
