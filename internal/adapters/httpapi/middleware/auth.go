package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	userPort "ripple/internal/ports/user"
)

// IdentityVerifier resolves a bearer token to a verified identity.
type IdentityVerifier interface {
	Verify(ctx context.Context, token string) (*userPort.Identity, error)
}

// Auth verifies the caller before any handler logic runs. On success the
// identity is stored in the gin context under "identity"; on failure the
// request is aborted with 401.
func Auth(verifier IdentityVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		identity, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set("identity", *identity)
		c.Next()
	}
}

// CallerIdentity fetches the identity stored by Auth.
func CallerIdentity(c *gin.Context) (userPort.Identity, bool) {
	v, exists := c.Get("identity")
	if !exists {
		return userPort.Identity{}, false
	}
	identity, ok := v.(userPort.Identity)
	return identity, ok
}
