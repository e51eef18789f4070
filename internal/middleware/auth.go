// Package middleware provides the gin middleware shared by the API routes:
// admin session enforcement and request logging.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dmoreno/invitado/internal/auth"
)

const (
	// ClaimsKey is the gin context key holding the validated session claims.
	ClaimsKey = "auth_claims"
)

// GetClaims extracts the session claims from the request context. Returns nil
// on unauthenticated requests.
func GetClaims(c *gin.Context) *auth.Claims {
	claims, _ := c.Get(ClaimsKey)
	if claims == nil {
		return nil
	}
	return claims.(*auth.Claims)
}

// RequireAuth validates the Bearer token and aborts unauthenticated requests.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}
