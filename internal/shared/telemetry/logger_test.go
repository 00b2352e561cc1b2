package telemetry

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"strings"
	"testing"
)

func captureStdout(t *testing.T, fn func()) []string {
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
		t.Fatalf("read: %v", err)
	}
	return strings.Split(strings.TrimSpace(buf.String()), "\n")
}

func TestInfoWritesJSONLine(t *testing.T) {
	lines := captureStdout(t, func() {
		Info("relay.start", map[string]any{"port": "4000", "model": "m"})
	})
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["msg"] != "relay.start" || payload["level"] != "info" {
		t.Fatalf("unexpected payload: %v", payload)
	}
	if payload["port"] != "4000" || payload["model"] != "m" {
		t.Fatalf("missing fields: %v", payload)
	}
	if _, ok := payload["ts"]; !ok {
		t.Fatalf("missing ts")
	}
}

func TestErrorStringifiesErrors(t *testing.T) {
	lines := captureStdout(t, func() {
		Error("boom", map[string]any{"error": errors.New("bad thing")})
	})
	var payload map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload["level"] != "error" || payload["error"] != "bad thing" {
		t.Fatalf("unexpected payload: %v", payload)
	}
}
