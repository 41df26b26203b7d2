package auth

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ModeDevelopment leaves the API open, which is only safe on loopback
	ModeDevelopment = "development"
	// ModeJWT requires an HS256 bearer token
	ModeJWT = "jwt"
)

// AuthError represents structured authentication error responses
type AuthError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// Middleware authenticates API requests
type Middleware struct {
	mode   string
	secret []byte
	logger *slog.Logger
}

// NewMiddleware creates the authentication middleware for mode
func NewMiddleware(mode, secret string, logger *slog.Logger) (*Middleware, error) {
	if logger == nil {
		logger = slog.Default()
	}
	switch mode {
	case "", ModeDevelopment:
		return &Middleware{mode: ModeDevelopment, logger: logger}, nil
	case ModeJWT:
		if secret == "" {
			return nil, errors.New("JWT_SECRET is required when AUTH_MODE is jwt")
		}
		return &Middleware{mode: ModeJWT, secret: []byte(secret), logger: logger}, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %s", mode)
	}
}

// Mode returns the active authentication mode
func (m *Middleware) Mode() string {
	return m.mode
}

// Handler returns the Gin middleware function
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.mode == ModeDevelopment {
			c.Set("user", "anonymous")
			c.Set("auth_type", "none")
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			m.logger.Warn("missing authorization header", "client_ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusUnauthorized, AuthError{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authentication required",
				Details: "Please provide a valid Bearer token.",
			})
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, AuthError{
				Code:    "INVALID_AUTH_TYPE",
				Message: "Bearer token required",
				Details: "Authorization header must start with 'Bearer '",
			})
			return
		}

		subject, err := m.validate(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			m.logger.Warn("invalid bearer token", "client_ip", c.ClientIP(), "error", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, AuthError{
				Code:    "INVALID_TOKEN",
				Message: "Authentication failed",
				Details: "The provided Bearer token is invalid or expired",
			})
			return
		}

		c.Set("user", subject)
		c.Set("auth_type", "bearer")
		c.Next()
	}
}

func (m *Middleware) validate(raw string) (string, error) {
	if raw == "" {
		return "", errors.New("empty token")
	}
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok {
		return "", errors.New("unexpected claims type")
	}
	return claims.Subject, nil
}

// IssueToken signs a bearer token for subject valid for ttl
func IssueToken(secret, subject string, ttl time.Duration) (string, error) {
	if secret == "" {
		return "", errors.New("secret is required")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
