package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"career-backend/internal/activities"
	"career-backend/internal/analytics"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/coverletters"
	"career-backend/internal/goals"
	"career-backend/internal/quizzes"
	"career-backend/internal/relay"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/metrics"
	"career-backend/internal/shared/server/middleware"
	"career-backend/internal/shared/tracing"
	"career-backend/internal/stories"
	"career-backend/internal/todos"
	"career-backend/internal/users"
)

// RouterDeps carries the handlers mounted by NewRouter. Nil handlers are skipped.
type RouterDeps struct {
	Config             config.Config
	Health             *health.Service
	RelayHandler       *relay.Handler
	UserHandler        *users.Handler
	GoogleAuth         *googleauth.GoogleService
	AnalyticsHandler   *analytics.Handler
	StoryHandler       *stories.Handler
	GoalHandler        *goals.Handler
	TodoHandler        *todos.Handler
	ActivityHandler    *activities.Handler
	QuizHandler        *quizzes.Handler
	CoverLetterHandler *coverletters.Handler
	ResumeHandler      *resumes.Handler
	RateLimiter        *middleware.RateLimiter
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	if deps.Config.TracingEnabled {
		r.Use(otelgin.Middleware(tracing.ServiceName))
	}
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Auth(middleware.AuthOptions{AllowGuests: deps.Config.GuestAccess}),
	)

	limiter := deps.RateLimiter
	if limiter == nil {
		limiter = middleware.NewRateLimiter(nil)
	}
	rule := middleware.RateLimitRule{Rate: deps.Config.RelayRatePerSec, Burst: deps.Config.RelayBurst}
	rules := map[string]middleware.RateLimitRule{
		middleware.GroupRelay: rule,
		middleware.GroupLLM:   rule,
	}
	relayLimit := middleware.RateLimit(middleware.RateLimitConfig{Rules: rules, DefaultGroup: middleware.GroupRelay, Limiter: limiter})
	llmLimit := middleware.RateLimit(middleware.RateLimitConfig{Rules: rules, DefaultGroup: middleware.GroupLLM, Limiter: limiter})

	r.GET("/metrics", metrics.Handler())
	if deps.RelayHandler != nil {
		deps.RelayHandler.RegisterRoutes(r, relayLimit)
	}

	api := r.Group("/api/v1")
	healthSvc := deps.Health
	if healthSvc == nil {
		healthSvc = health.NewService(nil, false)
	}
	api.GET("/health", func(c *gin.Context) {
		st := healthSvc.Status(c.Request.Context())
		status := http.StatusOK
		if !st.OK {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, st)
	})

	if deps.GoogleAuth != nil {
		deps.GoogleAuth.RegisterRoutes(api)
	}
	if deps.UserHandler != nil {
		deps.UserHandler.RegisterRoutes(api)
	}
	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterRoutes(api)
	}
	if deps.StoryHandler != nil {
		deps.StoryHandler.RegisterRoutes(api)
	}
	if deps.GoalHandler != nil {
		deps.GoalHandler.RegisterRoutes(api)
	}
	if deps.TodoHandler != nil {
		deps.TodoHandler.RegisterRoutes(api)
	}
	if deps.ActivityHandler != nil {
		deps.ActivityHandler.RegisterRoutes(api)
	}
	if deps.QuizHandler != nil {
		deps.QuizHandler.RegisterRoutes(api, llmLimit)
	}
	if deps.CoverLetterHandler != nil {
		deps.CoverLetterHandler.RegisterRoutes(api, llmLimit)
	}
	if deps.ResumeHandler != nil {
		deps.ResumeHandler.RegisterRoutes(api, llmLimit)
	}

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":4000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
