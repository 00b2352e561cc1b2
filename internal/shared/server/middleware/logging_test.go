package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func captureLines(t *testing.T, fn func()) []string {
	t.Helper()
	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()

	_ = w.Close()
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read log output: %v", err)
	}
	out := strings.TrimSpace(buf.String())
	if out == "" {
		return nil
	}
	return strings.Split(out, "\n")
}

func TestLoggingIncludesRequiredFields(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(RequestID(), Auth(AuthOptions{AllowGuests: true}), Logging())
	router.GET("/api/v1/stories/:id", func(c *gin.Context) {
		SetRecordID(c, "story-1")
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stories/story-1", nil)
	req.Header.Set("X-Guest-Id", "guest1")
	lines := captureLines(t, func() {
		router.ServeHTTP(httptest.NewRecorder(), req)
	})
	if len(lines) == 0 {
		t.Fatalf("expected log output")
	}
	last := lines[len(lines)-1]
	var payload map[string]any
	if err := json.Unmarshal([]byte(last), &payload); err != nil {
		t.Fatalf("decode log json: %v", err)
	}

	required := []string{"request_id", "user_id", "record_id", "duration_ms", "status", "route"}
	for _, key := range required {
		if _, ok := payload[key]; !ok {
			t.Fatalf("missing log field: %s", key)
		}
	}
	if payload["user_id"] != "guest:guest1" {
		t.Fatalf("unexpected user_id: %v", payload["user_id"])
	}
	if payload["record_id"] != "story-1" {
		t.Fatalf("unexpected record_id: %v", payload["record_id"])
	}
	if payload["route"] != "/api/v1/stories/:id" {
		t.Fatalf("unexpected route: %v", payload["route"])
	}
	if payload["msg"] != "request.complete" {
		t.Fatalf("unexpected msg: %v", payload["msg"])
	}
}

func TestLoggingSkipsMetricsScrapes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Logging())
	router.GET("/metrics", func(c *gin.Context) { c.Status(http.StatusOK) })

	lines := captureLines(t, func() {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))
	})
	for _, line := range lines {
		if strings.Contains(line, "request.complete") {
			t.Fatalf("expected no request log for /metrics, got %s", line)
		}
	}
}
