package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"career-backend/internal/shared/auth"
	"career-backend/internal/shared/server/respond"
)

const (
	userIDKey      = "userId"
	userEmailKey   = "userEmail"
	userNameKey    = "userName"
	userPictureKey = "userPicture"
	isGuestKey     = "isGuest"

	guestHeader   = "X-Guest-Id"
	guestPrefix   = "guest:"
	maxGuestIDLen = 64
)

// defaultPublicPaths are served without an identity. A trailing slash matches the prefix.
var defaultPublicPaths = []string{
	"/api/v1/auth/google/",
	"/api/v1/health",
	"/api/claude",
	"/metrics",
}

type AuthOptions struct {
	// AllowGuests accepts X-Guest-Id when no bearer token is sent.
	AllowGuests bool
	PublicPaths []string
}

// Auth resolves the caller from a bearer JWT or, when allowed, a guest id header.
func Auth(opts AuthOptions) gin.HandlerFunc {
	public := opts.PublicPaths
	if public == nil {
		public = defaultPublicPaths
	}
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Status(http.StatusNoContent)
			return
		}
		if matchesPath(public, c.Request.URL.Path) {
			c.Next()
			return
		}

		if header := strings.TrimSpace(c.GetHeader("Authorization")); header != "" {
			token, ok := bearerToken(header)
			if !ok {
				unauthorized(c, "missing or invalid token")
				return
			}
			claims, err := auth.VerifyJWT(token)
			if err != nil {
				unauthorized(c, "missing or invalid token")
				return
			}
			setIdentity(c, claims)
			c.Next()
			return
		}

		if !opts.AllowGuests {
			unauthorized(c, "Missing identity")
			return
		}
		guestID := strings.TrimSpace(c.GetHeader(guestHeader))
		if guestID == "" {
			unauthorized(c, "Missing identity")
			return
		}
		if !validGuestID(guestID) {
			unauthorized(c, "invalid guest id")
			return
		}
		c.Set(userIDKey, guestPrefix+guestID)
		c.Set(isGuestKey, true)
		c.Next()
	}
}

func unauthorized(c *gin.Context, msg string) {
	respond.Error(c, http.StatusUnauthorized, "unauthorized", msg, nil)
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func setIdentity(c *gin.Context, claims auth.Claims) {
	c.Set(userIDKey, claims.Sub)
	for key, val := range map[string]string{
		userEmailKey:   claims.Email,
		userNameKey:    claims.Name,
		userPictureKey: claims.Picture,
	} {
		if val != "" {
			c.Set(key, val)
		}
	}
	c.Set(isGuestKey, false)
}

// validGuestID accepts the ids browsers mint (UUIDs and similar tokens).
func validGuestID(id string) bool {
	if len(id) > maxGuestIDLen {
		return false
	}
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return true
}

func matchesPath(patterns []string, path string) bool {
	for _, p := range patterns {
		if strings.HasSuffix(p, "/") && strings.HasPrefix(path, p) {
			return true
		}
		if path == p {
			return true
		}
	}
	return false
}

func UserIDFromContext(c *gin.Context) string      { return stringFromContext(c, userIDKey) }
func UserEmailFromContext(c *gin.Context) string   { return stringFromContext(c, userEmailKey) }
func UserNameFromContext(c *gin.Context) string    { return stringFromContext(c, userNameKey) }
func UserPictureFromContext(c *gin.Context) string { return stringFromContext(c, userPictureKey) }

// IsGuest reports whether the caller authenticated with a guest id.
func IsGuest(c *gin.Context) bool {
	if c == nil {
		return false
	}
	guest, _ := c.Value(isGuestKey).(bool)
	return guest
}

func stringFromContext(c *gin.Context, key string) string {
	if c == nil {
		return ""
	}
	return c.GetString(key)
}
