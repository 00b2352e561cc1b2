package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/auth"
)

func TestAuthAllowsOptionsWithoutIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(AuthOptions{AllowGuests: true}))
	router.OPTIONS("/api/v1/stories", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/stories", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.Code)
	}
}

func TestAuthRejectsMissingIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(AuthOptions{AllowGuests: true}))
	router.GET("/api/v1/todos", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestAuthSkipsRelayPath(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Auth(AuthOptions{AllowGuests: true}))
	router.POST("/api/claude", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/claude", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
}

func TestAuthBearerSetsIdentity(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("ENV", "dev")
	t.Setenv("JWT_SECRET", "mw-secret")
	token, err := auth.SignJWT(auth.Claims{Sub: "user-9", Email: "nine@example.com"})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	router := gin.New()
	router.Use(Auth(AuthOptions{AllowGuests: true}))
	var gotID, gotEmail string
	var guest bool
	router.GET("/api/v1/me", func(c *gin.Context) {
		gotID = UserIDFromContext(c)
		gotEmail = UserEmailFromContext(c)
		guest = IsGuest(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if gotID != "user-9" || gotEmail != "nine@example.com" || guest {
		t.Fatalf("unexpected identity: %q %q guest=%v", gotID, gotEmail, guest)
	}
}

func TestAuthGuestRules(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		name   string
		opts   AuthOptions
		header string
		want   int
	}{
		{"guest allowed", AuthOptions{AllowGuests: true}, "3f2a9c1e-guest", http.StatusOK},
		{"guest disabled", AuthOptions{}, "3f2a9c1e-guest", http.StatusUnauthorized},
		{"bad characters", AuthOptions{AllowGuests: true}, "a b:c", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		router := gin.New()
		router.Use(Auth(tc.opts))
		router.GET("/api/v1/todos", func(c *gin.Context) { c.Status(http.StatusOK) })

		req := httptest.NewRequest(http.MethodGet, "/api/v1/todos", nil)
		req.Header.Set("X-Guest-Id", tc.header)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != tc.want {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.want, resp.Code)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if tok, ok := bearerToken("bearer abc"); !ok || tok != "abc" {
		t.Fatalf("expected case-insensitive scheme, got %q %v", tok, ok)
	}
	for _, h := range []string{"Bearer", "Bearer   ", "Basic abc", "abc"} {
		if _, ok := bearerToken(h); ok {
			t.Fatalf("expected %q to be rejected", h)
		}
	}
}
