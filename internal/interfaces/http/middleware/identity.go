package middleware

import (
	"net/http"
	"strings"

	"github.com/goldshop/backend/internal/domain/shared"
	"github.com/goldshop/backend/internal/infrastructure/auth"
	"github.com/goldshop/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
)

const (
	// IdentityKey is the gin context key holding the resolved caller identity
	IdentityKey = "identity"

	authHeaderKey = "Authorization"
	bearerPrefix  = "Bearer "
)

// IdentityConfig holds configuration for the identity middleware
type IdentityConfig struct {
	JWTService *auth.JWTService
	// SkipPaths are paths that don't require authentication
	SkipPaths []string
}

// Identity resolves the caller's JWT into a shared.Identity and stores it on
// the request context. Requests without a valid token are rejected.
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, path := range cfg.SkipPaths {
		skip[path] = struct{}{}
	}

	return func(c *gin.Context) {
		if _, ok := skip[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader(authHeaderKey)
		if !strings.HasPrefix(header, bearerPrefix) {
			abortUnauthorized(c, "Missing or malformed authorization header")
			return
		}

		identity, err := cfg.JWTService.ValidateToken(strings.TrimPrefix(header, bearerPrefix))
		if err != nil {
			abortUnauthorized(c, "Token validation failed")
			return
		}

		c.Set(IdentityKey, identity)
		c.Next()
	}
}

// GetIdentity returns the resolved caller identity from the gin context
func GetIdentity(c *gin.Context) (shared.Identity, bool) {
	value, exists := c.Get(IdentityKey)
	if !exists {
		return shared.Identity{}, false
	}
	identity, ok := value.(shared.Identity)
	return identity, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(dto.ErrCodeUnauthorized, message))
}
