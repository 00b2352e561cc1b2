// Package auth implements the Google sign-in flow that issues the API's JWTs.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	sharedauth "career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/respond"
	"career-backend/internal/shared/telemetry"
	"career-backend/internal/users"
)

const (
	defaultUserInfoURL = "https://openidconnect.googleapis.com/v1/userinfo"
	loginTTL           = 5 * time.Minute
)

// ProfileSink stores the profile returned by Google after a successful login.
type ProfileSink interface {
	UpsertFromAuth(ctx context.Context, user users.User) error
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	// RedirectURL is this API's callback as registered with Google.
	RedirectURL string
	// UIRedirect receives ?token=<jwt>&next=<path> after login.
	UIRedirect string
}

// GoogleService runs the authorization code flow with PKCE.
type GoogleService struct {
	oauth       *oauth2.Config
	uiRedirect  string
	userInfoURL string
	pending     *loginStore
	profiles    ProfileSink
}

func NewGoogleService(cfg GoogleConfig, profiles ProfileSink) *GoogleService {
	return &GoogleService{
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		},
		uiRedirect:  cfg.UIRedirect,
		userInfoURL: defaultUserInfoURL,
		pending:     newLoginStore(time.Now),
		profiles:    profiles,
	}
}

func (s *GoogleService) configured() bool {
	return s.oauth.ClientID != "" && s.oauth.ClientSecret != "" && s.oauth.RedirectURL != ""
}

// RegisterRoutes mounts start and callback. Both answer 500 when Google is not configured.
func (s *GoogleService) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/auth/google/start", s.start)
	rg.GET("/auth/google/callback", s.callback)
}

func (s *GoogleService) start(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	state := uuid.NewString()
	verifier := oauth2.GenerateVerifier()
	s.pending.put(state, pendingLogin{verifier: verifier, next: safeNext(c.Query("next"))}, loginTTL)

	c.Redirect(http.StatusFound, s.oauth.AuthCodeURL(state, oauth2.S256ChallengeOption(verifier)))
}

func (s *GoogleService) callback(c *gin.Context) {
	if !s.configured() {
		respond.Error(c, http.StatusInternalServerError, "auth_not_configured", "Google auth not configured", nil)
		return
	}
	if reason := c.Query("error"); reason != "" {
		respond.Error(c, http.StatusBadRequest, "auth_denied", "Google sign-in was cancelled", gin.H{"reason": reason})
		return
	}
	state, code := c.Query("state"), c.Query("code")
	if state == "" || code == "" {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "missing state or code", nil)
		return
	}
	login, ok := s.pending.take(state)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "invalid_request", "invalid or expired state", nil)
		return
	}

	ctx := c.Request.Context()
	token, err := s.oauth.Exchange(ctx, code, oauth2.VerifierOption(login.verifier))
	if err != nil {
		telemetry.Warn("auth.exchange_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusBadRequest, "invalid_request", "failed to exchange code", nil)
		return
	}
	info, err := s.fetchUserInfo(ctx, token)
	if err != nil {
		telemetry.Warn("auth.userinfo_failed", map[string]any{"error": err})
		respond.Error(c, http.StatusBadGateway, "auth_failed", "failed to fetch user profile", nil)
		return
	}
	if info.Sub == "" {
		respond.Error(c, http.StatusBadGateway, "auth_failed", "invalid user profile", nil)
		return
	}
	if info.Email != "" && !info.EmailVerified {
		respond.Error(c, http.StatusForbidden, "email_unverified", "Google account email is not verified", nil)
		return
	}

	userID := "google:" + info.Sub
	if s.profiles != nil {
		if err := s.profiles.UpsertFromAuth(ctx, users.User{
			ID:         userID,
			Email:      info.Email,
			FullName:   info.Name,
			PictureURL: info.Picture,
		}); err != nil {
			telemetry.Warn("auth.profile_upsert_failed", map[string]any{"user_id": userID, "error": err})
		}
	}

	jwt, err := sharedauth.SignJWT(sharedauth.Claims{Sub: userID, Email: info.Email, Name: info.Name, Picture: info.Picture})
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to issue token", nil)
		return
	}
	target, err := uiRedirectURL(s.uiRedirect, jwt, login.next)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to redirect", nil)
		return
	}
	telemetry.Info("auth.login", map[string]any{"user_id": userID})
	c.Redirect(http.StatusFound, target)
}

type googleUserInfo struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

func (s *GoogleService) fetchUserInfo(ctx context.Context, token *oauth2.Token) (googleUserInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.userInfoURL, nil)
	if err != nil {
		return googleUserInfo{}, err
	}
	resp, err := s.oauth.Client(ctx, token).Do(req)
	if err != nil {
		return googleUserInfo{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return googleUserInfo{}, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return googleUserInfo{}, fmt.Errorf("decode userinfo: %w", err)
	}
	return info, nil
}

// safeNext keeps only same-site relative paths so the UI cannot be bounced elsewhere.
func safeNext(next string) string {
	next = strings.TrimSpace(next)
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.Contains(next, "\\") {
		return ""
	}
	return next
}

func uiRedirectURL(rawURL, token, next string) (string, error) {
	if rawURL == "" {
		return "", errors.New("redirect url required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("token", token)
	if next != "" {
		q.Set("next", next)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}
