package quizzes

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/server/respond"
)

const (
	msgNotesRequired  = "Please provide your notes to generate a quiz."
	msgUnanswered     = "Please answer all questions before submitting."
	msgGenerateFailed = "Failed to generate quiz. Please try again."
	msgGradeFailed    = "Failed to grade quiz. Please try again."
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches quiz routes; mw runs before each handler (rate limiting).
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	with := func(fn gin.HandlerFunc) []gin.HandlerFunc {
		return append(append([]gin.HandlerFunc{}, mw...), fn)
	}
	rg.POST("/quizzes", with(h.generate)...)
	rg.POST("/quizzes/grade", with(h.grade)...)
}

type generateRequest struct {
	Notes      string `json:"notes"`
	Difficulty int    `json:"difficulty"`
}

type gradeRequest struct {
	Quiz    Quiz              `json:"quiz"`
	Answers map[string]string `json:"answers"`
}

func (h *Handler) generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	quiz, err := h.Svc.Generate(c.Request.Context(), middleware.UserIDFromContext(c), req.Notes, req.Difficulty)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotesRequired):
			respond.Error(c, http.StatusBadRequest, "validation_error", msgNotesRequired, nil)
		case errors.Is(err, ErrInvalidDifficulty):
			respond.Error(c, http.StatusBadRequest, "validation_error", ErrInvalidDifficulty.Error(), nil)
		default:
			writeLLMError(c, err, msgGenerateFailed)
		}
		return
	}
	middleware.SetRecordID(c, quiz.ID)
	respond.OK(c, quiz)
}

func (h *Handler) grade(c *gin.Context) {
	var req gradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	middleware.SetRecordID(c, req.Quiz.ID)
	grade, err := h.Svc.Grade(c.Request.Context(), middleware.UserIDFromContext(c), req.Quiz, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoQuestions) && !errors.Is(err, ErrInvalidOutput):
			respond.Error(c, http.StatusBadRequest, "validation_error", "quiz has no questions", nil)
		case errors.Is(err, ErrUnanswered):
			respond.Error(c, http.StatusBadRequest, "validation_error", msgUnanswered, nil)
		default:
			writeLLMError(c, err, msgGradeFailed)
		}
		return
	}
	respond.OK(c, grade)
}

func writeLLMError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidOutput):
		respond.Error(c, http.StatusBadGateway, "llm_output_invalid", message, nil)
	case errors.Is(err, ErrLLM):
		respond.Error(c, http.StatusBadGateway, "llm_error", message, nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", message, nil)
	}
}
