package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "CLAUDE_MODEL", "CLAUDE_MAX_TOKENS", "OBJECT_STORE", "GUEST_ACCESS", "OTEL_ENABLED", "RELAY_BURST"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, DefaultClaudeModel, cfg.ClaudeModel)
	assert.Equal(t, DefaultClaudeMaxTokens, cfg.ClaudeMaxTokens)
	assert.Equal(t, "local", cfg.ObjectStoreType)
	assert.Equal(t, 10, cfg.RelayBurst)
	assert.True(t, cfg.GuestAccess)
	assert.False(t, cfg.TracingEnabled)
	assert.True(t, cfg.IsDevLike())
}

func TestLoadOverridesAndInvalidValues(t *testing.T) {
	t.Setenv("ENV", "prod")
	t.Setenv("OBJECT_STORE", "S3")
	t.Setenv("CORS_ALLOW_ORIGINS", " https://a.example , ,https://b.example")
	t.Setenv("CLAUDE_MAX_TOKENS", "lots")
	t.Setenv("GUEST_ACCESS", "false")
	t.Setenv("OTEL_SAMPLER_RATIO", "0.5")

	cfg := Load()
	assert.Equal(t, "production", cfg.Env)
	assert.False(t, cfg.IsDevLike())
	assert.Equal(t, "s3", cfg.ObjectStoreType)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigin)
	assert.Equal(t, DefaultClaudeMaxTokens, cfg.ClaudeMaxTokens)
	assert.False(t, cfg.GuestAccess)
	assert.Equal(t, 0.5, cfg.TracingSampleRatio)
}
