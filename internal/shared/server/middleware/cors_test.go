package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func corsRouter(origins ...string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS(origins))
	router.POST("/api/v1/resume/pdf", func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestCORSPreflight(t *testing.T) {
	router := corsRouter("http://localhost:5173/")
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/resume/pdf", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
	for header, want := range map[string]string{
		"Access-Control-Allow-Origin":      "http://localhost:5173",
		"Access-Control-Allow-Credentials": "true",
		"Access-Control-Max-Age":           "600",
	} {
		if got := resp.Header().Get(header); got != want {
			t.Fatalf("%s = %q, want %q", header, got, want)
		}
	}
	if resp.Header().Get("Access-Control-Allow-Headers") == "" {
		t.Fatalf("expected Allow-Headers header")
	}
}

func TestCORSOrigins(t *testing.T) {
	cases := []struct {
		name    string
		allowed []string
		origin  string
		want    string
	}{
		{"exact", []string{"http://localhost:5173"}, "http://localhost:5173", "http://localhost:5173"},
		{"unknown", []string{"http://localhost:5173"}, "http://evil.example", ""},
		{"wildcard subdomain", []string{"https://*.careers.example"}, "https://app.careers.example", "https://app.careers.example"},
		{"any", []string{"*"}, "http://anywhere.example", "*"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/resume/pdf", nil)
		req.Header.Set("Origin", tc.origin)
		resp := httptest.NewRecorder()
		corsRouter(tc.allowed...).ServeHTTP(resp, req)
		if got := resp.Header().Get("Access-Control-Allow-Origin"); got != tc.want {
			t.Fatalf("%s: Allow-Origin = %q, want %q", tc.name, got, tc.want)
		}
	}
}
