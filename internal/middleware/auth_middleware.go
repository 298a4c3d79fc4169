package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"cabgo/pkg/identity"
)

const identityKey = "identity"

// AuthRequired verifies the bearer credential against the identity
// provider (revocation included) and puts the decoded identity into the
// request context. CORS preflights short-circuit with 204 before any
// credential handling; every other method must authenticate.
func AuthRequired(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			c.Abort()
			return
		}

		ident, err := provider.VerifyToken(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		c.Set(identityKey, ident)
		c.Next()
	}
}

// AdminRequired rejects callers whose verified identity carries neither
// the admin flag nor the admin role. Must run after AuthRequired.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		ident, ok := IdentityFromContext(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !ident.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// IdentityFromContext returns the identity set by AuthRequired.
func IdentityFromContext(c *gin.Context) (*identity.Identity, bool) {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil, false
	}

	ident, ok := value.(*identity.Identity)
	return ident, ok
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Anything but that exact shape yields an empty string.
func bearerToken(headerValue string) string {
	if headerValue == "" {
		return ""
	}

	scheme, token, found := strings.Cut(headerValue, " ")
	if !found || scheme != "Bearer" || token == "" {
		return ""
	}

	return token
}
