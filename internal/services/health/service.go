package health

import (
	"context"
	"database/sql"
	"time"
)

// Status is the payload of GET /api/v1/health.
type Status struct {
	OK       bool   `json:"ok"`
	Database string `json:"database"`
	LLM      string `json:"llm"`
}

// Service encapsulates health-related checks.
type Service struct {
	DB            *sql.DB
	LLMConfigured bool
	PingTimeout   time.Duration
}

// NewService constructs a new health service. A nil db reports in-memory storage.
func NewService(db *sql.DB, llmConfigured bool) *Service {
	return &Service{DB: db, LLMConfigured: llmConfigured, PingTimeout: 2 * time.Second}
}

// Status pings the database when one is configured. OK is false only when the ping fails.
func (s *Service) Status(ctx context.Context) Status {
	st := Status{OK: true, Database: "memory", LLM: "missing"}
	if s.LLMConfigured {
		st.LLM = "configured"
	}
	if s.DB == nil {
		return st
	}
	timeout := s.PingTimeout
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := s.DB.PingContext(pingCtx); err != nil {
		st.OK = false
		st.Database = "unreachable"
		return st
	}
	st.Database = "ok"
	return st
}
