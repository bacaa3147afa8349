package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/postwave/composer-core/internal/config"
	"github.com/postwave/composer-core/internal/pkg/jwt"
	"github.com/postwave/composer-core/internal/pkg/response"
	"golang.org/x/crypto/bcrypt"
)

const (
	ContextKeyUserID = "user_id"
	// Service tokens issued to dashboard deployments carry this prefix so
	// they are never parsed as JWTs.
	serviceTokenPrefix = "pw_"
)

// Auth returns a middleware that enforces JWT or service token authentication.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := validateToken(cfg, extractToken(c))
		if err != nil {
			response.Unauthorized(c)
			return
		}
		c.Set(ContextKeyUserID, userID)
		c.Next()
	}
}

// OptionalAuth sets the user ID if a valid token is present, but does not
// block the request.
func OptionalAuth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID, err := validateToken(cfg, extractToken(c)); err == nil && userID != "" {
			c.Set(ContextKeyUserID, userID)
		}
		c.Next()
	}
}

func validateToken(cfg *config.AppConfig, token string) (string, error) {
	if token == "" {
		return "", errors.New("token is required")
	}

	if strings.HasPrefix(token, serviceTokenPrefix) {
		if cfg.APITokenHash == "" {
			return "", errors.New("service tokens are not configured")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(cfg.APITokenHash), []byte(token)); err != nil {
			return "", errors.New("invalid service token")
		}
		return "service", nil
	}

	claims, err := jwt.Parse(token)
	if err != nil {
		return "", err
	}
	return claims.UserID, nil
}

// CurrentUserID extracts the authenticated user ID from context.
func CurrentUserID(c *gin.Context) string {
	v, _ := c.Get(ContextKeyUserID)
	id, _ := v.(string)
	return id
}

// IsAuthenticated returns true if the request has a valid auth token.
func IsAuthenticated(c *gin.Context) bool {
	return CurrentUserID(c) != ""
}

func extractToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth != "" {
		return NormalizeToken(auth)
	}
	return NormalizeToken(c.Query("token"))
}

// NormalizeToken trims spaces and strips an optional Bearer prefix.
func NormalizeToken(raw string) string {
	token := strings.TrimSpace(raw)
	if token == "" {
		return ""
	}
	if strings.HasPrefix(strings.ToLower(token), "bearer ") {
		return strings.TrimSpace(token[7:])
	}
	return token
}
