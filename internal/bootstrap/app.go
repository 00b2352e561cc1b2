package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/activities"
	"career-backend/internal/analytics"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/coverletters"
	"career-backend/internal/goals"
	"career-backend/internal/llm"
	"career-backend/internal/llm/anthropic"
	"career-backend/internal/quizzes"
	"career-backend/internal/relay"
	"career-backend/internal/resumes"
	"career-backend/internal/services/health"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/shared/tracing"
	"career-backend/internal/stories"
	"career-backend/internal/todos"
	"career-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config  config.Config
	Router  *gin.Engine
	DB      *sql.DB
	Store   object.ObjectStore
	Tracker analytics.Tracker

	// Sender is the raw provider call used by the relay; nil when no key is configured.
	Sender relay.Sender
	// LLM is the in-process completer used by quizzes, cover letters and resume helpers.
	LLM llm.Completer

	UsersService        *users.Service
	StoriesService      *stories.Service
	GoalsService        *goals.Service
	TodosService        *todos.Service
	ActivitiesService   *activities.Service
	QuizzesService      *quizzes.Service
	CoverLettersService *coverletters.Service
	ResumesService      *resumes.Service

	shutdownTracing func(context.Context) error
}

// Option overrides a dependency before services are built.
type Option func(*App)

// WithCompleter replaces the in-process LLM completer.
func WithCompleter(c llm.Completer) Option {
	return func(a *App) { a.LLM = c }
}

// WithSender replaces the relay's provider call.
func WithSender(s relay.Sender) Option {
	return func(a *App) { a.Sender = s }
}

// WithTracker replaces the analytics tracker.
func WithTracker(t analytics.Tracker) Option {
	return func(a *App) { a.Tracker = t }
}

// WithDB supplies an already opened database and skips connecting and migrating.
func WithDB(database *sql.DB) Option {
	return func(a *App) { a.DB = database }
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config, opts ...Option) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	app := &App{Config: cfg}
	for _, opt := range opts {
		opt(app)
	}

	shutdown, err := tracing.Init(ctx, tracing.Options{
		Enabled:     cfg.TracingEnabled,
		Environment: cfg.Env,
		Endpoint:    cfg.TracingEndpoint,
		Insecure:    cfg.TracingInsecure,
		SampleRatio: cfg.TracingSampleRatio,
	})
	if err != nil {
		telemetry.Warn("bootstrap.tracing_disabled", map[string]any{"error": err})
	}
	app.shutdownTracing = shutdown

	if app.DB == nil {
		sqlDB, err := buildDB(ctx, cfg)
		if err != nil {
			return nil, err
		}
		app.DB = sqlDB
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	app.Store = store

	if app.Tracker == nil {
		app.Tracker = analytics.New(cfg.MixpanelToken)
	}

	if err := buildLLM(app); err != nil {
		return nil, err
	}

	app.Router = buildServices(app)
	return app, nil
}

// Close flushes pending analytics and spans and releases the database.
func (a *App) Close() error {
	if f, ok := a.Tracker.(interface{ Flush() }); ok {
		f.Flush()
	}
	if a.shutdownTracing != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := a.shutdownTracing(ctx); err != nil {
			telemetry.Warn("bootstrap.tracing_shutdown", map[string]any{"error": err})
		}
		cancel()
	}
	telemetry.Sync()
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if cfg.IsDevLike() {
			telemetry.Info("bootstrap.memory_repos", map[string]any{"reason": "DATABASE_URL empty"})
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		if cfg.IsDevLike() {
			telemetry.Warn("bootstrap.memory_repos", map[string]any{"reason": "database connect failed", "error": err})
			return nil, nil
		}
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		store, err := s3store.New(ctx, s3store.Options{
			Region:    cfg.AWSRegion,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			KMSKeyID:  cfg.SSEKMSKeyID,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

// buildLLM creates the provider client when a key is set. Overrides from options win.
func buildLLM(app *App) error {
	cfg := app.Config
	if strings.TrimSpace(cfg.ClaudeAPIKey) != "" && (app.Sender == nil || app.LLM == nil) {
		client, err := anthropic.NewClient(anthropic.Config{
			APIKey:    cfg.ClaudeAPIKey,
			Model:     cfg.ClaudeModel,
			MaxTokens: cfg.ClaudeMaxTokens,
			BaseURL:   cfg.ClaudeBaseURL,
			Timeout:   time.Duration(cfg.ClaudeTimeoutSeconds) * time.Second,
		})
		if err != nil {
			return err
		}
		if app.Sender == nil {
			app.Sender = client
		}
		if app.LLM == nil {
			app.LLM = client
		}
	}
	if app.LLM == nil {
		app.LLM = llm.PlaceholderCompleter{}
	}
	app.LLM = llm.Metered(app.LLM)
	return nil
}

func buildServices(app *App) *gin.Engine {
	var (
		userRepo        users.Repo
		storyRepo       stories.Repo
		goalRepo        goals.Repo
		todoRepo        todos.Repo
		activityRepo    activities.Repo
		coverLetterRepo coverletters.Repo
		resumeRepos     resumes.Repos
	)
	if app.DB != nil {
		userRepo = &users.PGRepo{DB: app.DB}
		storyRepo = &stories.PGRepo{DB: app.DB}
		goalRepo = &goals.PGRepo{DB: app.DB}
		todoRepo = &todos.PGRepo{DB: app.DB}
		activityRepo = &activities.PGRepo{DB: app.DB}
		coverLetterRepo = &coverletters.PGRepo{DB: app.DB}
		resumeRepos = resumes.NewPGRepos(app.DB)
	} else {
		userRepo = users.NewMemoryRepo()
		storyRepo = stories.NewMemoryRepo()
		goalRepo = goals.NewMemoryRepo()
		todoRepo = todos.NewMemoryRepo()
		activityRepo = activities.NewMemoryRepo()
		coverLetterRepo = coverletters.NewMemoryRepo()
		resumeRepos = resumes.NewMemoryRepos()
	}

	app.UsersService = users.NewService(userRepo, app.Config.AdminEmail)
	app.StoriesService = &stories.Service{Repo: storyRepo, Store: app.Store, Tracker: app.Tracker}
	app.GoalsService = &goals.Service{Repo: goalRepo, AdminEmail: app.Config.AdminEmail, Tracker: app.Tracker}
	app.TodosService = &todos.Service{Repo: todoRepo, Tracker: app.Tracker}
	app.ActivitiesService = &activities.Service{Repo: activityRepo, Tracker: app.Tracker}
	app.QuizzesService = &quizzes.Service{LLM: app.LLM, Tracker: app.Tracker}
	app.CoverLettersService = &coverletters.Service{
		Repo:    coverLetterRepo,
		Stories: app.StoriesService,
		LLM:     app.LLM,
		Tracker: app.Tracker,
	}
	app.ResumesService = &resumes.Service{
		Repos:   resumeRepos,
		Store:   app.Store,
		LLM:     app.LLM,
		Tracker: app.Tracker,
	}

	googleAuth := googleauth.NewGoogleService(googleauth.GoogleConfig{
		ClientID:     app.Config.GoogleClientID,
		ClientSecret: app.Config.GoogleClientSecret,
		RedirectURL:  app.Config.GoogleRedirectURL,
		UIRedirect:   app.Config.UIRedirectURL,
	}, app.UsersService)

	return server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		Health:             health.NewService(app.DB, app.Sender != nil),
		RelayHandler:       relay.NewHandler(app.Sender),
		UserHandler:        users.NewHandler(app.UsersService),
		GoogleAuth:         googleAuth,
		AnalyticsHandler:   analytics.NewHandler(app.Tracker),
		StoryHandler:       stories.NewHandler(app.StoriesService),
		GoalHandler:        goals.NewHandler(app.GoalsService),
		TodoHandler:        todos.NewHandler(app.TodosService),
		ActivityHandler:    activities.NewHandler(app.ActivitiesService),
		QuizHandler:        quizzes.NewHandler(app.QuizzesService),
		CoverLetterHandler: coverletters.NewHandler(app.CoverLettersService),
		ResumeHandler:      resumes.NewHandler(app.ResumesService),
	})
}
