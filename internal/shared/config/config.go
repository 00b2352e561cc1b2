package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"career-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port            string
	CORSAllowOrigin []string
	Env             string
	DatabaseURL     string

	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	S3Endpoint      string
	S3AccessKey     string
	S3SecretKey     string
	SSEKMSKeyID     string

	ClaudeAPIKey         string
	ClaudeModel          string
	ClaudeMaxTokens      int
	ClaudeBaseURL        string
	ClaudeTimeoutSeconds int

	RelayRatePerSec float64
	RelayBurst      int

	AdminEmail    string
	MixpanelToken string
	GuestAccess   bool

	TracingEnabled     bool
	TracingEndpoint    string
	TracingInsecure    bool
	TracingSampleRatio float64

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

const (
	DefaultClaudeModel     = "claude-3-haiku-20240307"
	DefaultClaudeMaxTokens = 1024
	DefaultClaudeBaseURL   = "https://api.anthropic.com"
)

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience; existing env wins.
	_ = godotenv.Load(existingFiles(".env", "cmd/.env")...)

	env := normalizeEnv(getEnv("ENV", "dev"))
	cfg := Config{
		Port:            getEnv("PORT", "4000"),
		CORSAllowOrigin: splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:5173")),
		Env:             env,
		DatabaseURL:     os.Getenv("DATABASE_URL"),

		ObjectStoreType: normalizeStoreType(getEnv("OBJECT_STORE", "local")),
		LocalStoreDir:   getEnv("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       getEnv("AWS_REGION", ""),
		S3Bucket:        getEnv("S3_BUCKET", ""),
		S3Prefix:        getEnv("S3_PREFIX", ""),
		S3Endpoint:      getEnv("S3_ENDPOINT", ""),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:     getEnv("S3_SECRET_KEY", ""),
		SSEKMSKeyID:     getEnv("SSE_KMS_KEY_ID", ""),

		ClaudeAPIKey:         os.Getenv("CLAUDE_API_KEY"),
		ClaudeModel:          getEnv("CLAUDE_MODEL", DefaultClaudeModel),
		ClaudeMaxTokens:      getEnvInt("CLAUDE_MAX_TOKENS", DefaultClaudeMaxTokens),
		ClaudeBaseURL:        getEnv("CLAUDE_BASE_URL", DefaultClaudeBaseURL),
		ClaudeTimeoutSeconds: getEnvInt("CLAUDE_TIMEOUT_SECONDS", 60),

		RelayRatePerSec: getEnvFloat("RELAY_RATE_PER_SEC", 1),
		RelayBurst:      getEnvInt("RELAY_BURST", 10),

		AdminEmail:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		MixpanelToken: strings.TrimSpace(os.Getenv("MIXPANEL_TOKEN")),
		GuestAccess:   getEnvBool("GUEST_ACCESS", true),

		TracingEnabled:     getEnvBool("OTEL_ENABLED", false),
		TracingEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		TracingInsecure:    getEnvBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		TracingSampleRatio: getEnvFloat("OTEL_SAMPLER_RATIO", 0.1),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  getEnv("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      getEnv("UI_REDIRECT_URL", ""),
	}

	if env == "production" {
		if cfg.DatabaseURL == "" {
			telemetry.Error("config.missing", map[string]any{"key": "DATABASE_URL", "env": env})
		}
		if cfg.ClaudeAPIKey == "" {
			telemetry.Error("config.missing", map[string]any{"key": "CLAUDE_API_KEY", "env": env})
		}
	}
	return cfg
}

// IsDevLike reports whether the environment tolerates in-memory fallbacks.
func (c Config) IsDevLike() bool {
	switch c.Env {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func existingFiles(paths ...string) []string {
	var out []string
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		// godotenv.Load with no args reads ".env"; point it at something harmless instead.
		return []string{os.DevNull}
	}
	return out
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.Atoi(raw)
	if err != nil {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return val
}

func getEnvBool(key string, def bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseBool(raw)
	if err != nil {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return val
}

func getEnvFloat(key string, def float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def
	}
	val, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		telemetry.Warn("config.invalid", map[string]any{"key": key, "value": raw, "default": def})
		return def
	}
	return val
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	case "local":
		return "local"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	default:
		return "local"
	}
}
