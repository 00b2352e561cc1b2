package relay

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

type fakeSender struct {
	body   []byte
	err    error
	calls  int
	prompt string
}

func (f *fakeSender) Send(ctx context.Context, prompt string) ([]byte, error) {
	f.calls++
	f.prompt = prompt
	return f.body, f.err
}

func newRouter(s Sender) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(s).RegisterRoutes(r)
	return r
}

func post(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/claude", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRelayReturnsEnvelopeVerbatim(t *testing.T) {
	envelope := `{"id":"msg_1","content":[{"type":"text","text":"hello"}],"model":"m"}`
	sender := &fakeSender{body: []byte(envelope)}
	resp := post(newRouter(sender), `{"prompt":"Say hello"}`)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if resp.Body.String() != envelope {
		t.Fatalf("expected verbatim envelope, got %s", resp.Body.String())
	}
	if sender.calls != 1 || sender.prompt != "Say hello" {
		t.Fatalf("unexpected sender calls=%d prompt=%q", sender.calls, sender.prompt)
	}
}

func TestRelayProviderFailureIs500WithMessage(t *testing.T) {
	sender := &fakeSender{err: errors.New("claude http status 529: overloaded")}
	resp := post(newRouter(sender), `{"prompt":"x"}`)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	var payload struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.Error.Code != "provider_error" || payload.Error.Message == "" {
		t.Fatalf("unexpected error body: %+v", payload)
	}
}

func TestRelayRejectsMissingPrompt(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty object", body: `{}`},
		{name: "blank prompt", body: `{"prompt":"   "}`},
		{name: "non string", body: `{"prompt":42}`},
		{name: "not json", body: `prompt=hi`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sender := &fakeSender{body: []byte(`{}`)}
			resp := post(newRouter(sender), tt.body)
			if resp.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", resp.Code)
			}
			if sender.calls != 0 {
				t.Fatalf("provider must not be called")
			}
		})
	}
}

func TestRelayWithoutSenderIs500(t *testing.T) {
	resp := post(newRouter(nil), `{"prompt":"x"}`)
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
	if !strings.Contains(resp.Body.String(), "CLAUDE_API_KEY") {
		t.Fatalf("expected configuration message, got %s", resp.Body.String())
	}
}
