package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func fakeRelay(t *testing.T, gotPrompt *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/claude" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Prompt string `json:"prompt"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		*gotPrompt = body.Prompt
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"msg_1","content":[{"type":"text","text":"pong"}]}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunPrintsFirstText(t *testing.T) {
	var got string
	srv := fakeRelay(t, &got)

	var out bytes.Buffer
	if err := run(context.Background(), []string{"-relay", srv.URL, "ping", "please"}, strings.NewReader(""), &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "ping please" {
		t.Fatalf("unexpected prompt %q", got)
	}
	if out.String() != "pong\n" {
		t.Fatalf("unexpected output %q", out.String())
	}
}

func TestRunReadsStdinAndFile(t *testing.T) {
	var got string
	srv := fakeRelay(t, &got)

	path := filepath.Join(t.TempDir(), "cv.txt")
	if err := os.WriteFile(path, []byte("Jane Doe, Go developer\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	var out bytes.Buffer
	err := run(context.Background(), []string{"-relay", srv.URL, "-file", path, "-raw"}, strings.NewReader("Review this resume:"), &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got != "Review this resume:\n\nJane Doe, Go developer" {
		t.Fatalf("unexpected prompt %q", got)
	}
	if !strings.Contains(out.String(), `"id": "msg_1"`) {
		t.Fatalf("expected indented envelope, got %q", out.String())
	}
}

func TestRunRequiresPrompt(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), []string{"-relay", "http://127.0.0.1:1"}, strings.NewReader("  "), &out); err == nil {
		t.Fatalf("expected error for empty prompt")
	}
}
