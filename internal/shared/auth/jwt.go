// Package auth signs and verifies the HS256 session tokens handed out after Google login.
package auth

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	issuer     = "career-backend"
	defaultTTL = 7 * 24 * time.Hour
	leeway     = 30 * time.Second
)

var (
	errMissingSecret = errors.New("jwt secret not configured")
	// ErrInvalidToken covers every verification failure; callers answer 401.
	ErrInvalidToken = errors.New("invalid token")
)

// Claims is the identity carried by a session token. Exp and Iat are unix seconds.
type Claims struct {
	Sub     string
	Email   string
	Name    string
	Picture string
	Exp     int64
	Iat     int64
}

type sessionClaims struct {
	Email   string `json:"email,omitempty"`
	Name    string `json:"name,omitempty"`
	Picture string `json:"picture,omitempty"`
	jwt.RegisteredClaims
}

// SignJWT issues a token for claims. Zero Iat and Exp default to now and now+JWT_TTL.
func SignJWT(claims Claims) (string, error) {
	secret, err := secretKey()
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(claims.Sub) == "" {
		return "", errors.New("sub is required")
	}
	now := time.Now().UTC()
	iat := time.Unix(claims.Iat, 0)
	if claims.Iat == 0 {
		iat = now
	}
	exp := time.Unix(claims.Exp, 0)
	if claims.Exp == 0 {
		exp = iat.Add(tokenTTL())
	}

	sc := sessionClaims{
		Email:   claims.Email,
		Name:    claims.Name,
		Picture: claims.Picture,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   claims.Sub,
			IssuedAt:  jwt.NewNumericDate(iat),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, sc).SignedString(secret)
}

// VerifyJWT checks signature, issuer and expiry and returns the identity.
func VerifyJWT(token string) (Claims, error) {
	secret, err := secretKey()
	if err != nil {
		return Claims{}, err
	}
	var sc sessionClaims
	_, err = jwt.ParseWithClaims(token, &sc,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(leeway),
	)
	if err != nil || sc.Subject == "" {
		return Claims{}, ErrInvalidToken
	}
	out := Claims{Sub: sc.Subject, Email: sc.Email, Name: sc.Name, Picture: sc.Picture}
	if sc.ExpiresAt != nil {
		out.Exp = sc.ExpiresAt.Unix()
	}
	if sc.IssuedAt != nil {
		out.Iat = sc.IssuedAt.Unix()
	}
	return out, nil
}

// tokenTTL reads JWT_TTL as a Go duration; bad or missing values use the default.
func tokenTTL() time.Duration {
	if d, err := time.ParseDuration(strings.TrimSpace(os.Getenv("JWT_TTL"))); err == nil && d > 0 {
		return d
	}
	return defaultTTL
}

// secretKey requires JWT_SECRET in production and falls back to a fixed dev key elsewhere.
func secretKey() ([]byte, error) {
	secret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if secret != "" {
		return []byte(secret), nil
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("ENV"))) {
	case "production", "prod":
		return nil, fmt.Errorf("%w: JWT_SECRET required in production", errMissingSecret)
	}
	return []byte("dev-secret"), nil
}
