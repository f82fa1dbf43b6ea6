// Package middleware provides the gin middleware chain of the Atelier API:
// bearer-token authentication and the admin role gate.
package middleware

import (
	"net/http"
	"strings"

	"github.com/atelier-moveis/atelier-backend/identity"
	"github.com/atelier-moveis/atelier-backend/logger"

	"github.com/gin-gonic/gin"
)

const userKey = "authUser"

// AuthRequired validates the Authorization bearer token against the
// identity provider and stores the resolved user in the request context.
// Provider and transport failures are deliberately indistinguishable from
// invalid tokens on the wire.
func AuthRequired(provider identity.Provider) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		if header == "" || token == "" || token == strings.TrimSpace(header) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token não enviado"})
			c.Abort()
			return
		}

		user, err := provider.UserFromToken(c.Request.Context(), token)
		if err != nil || user == nil {
			if err != nil {
				logger.Debug("token resolution failed:", err)
			}
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token inválido"})
			c.Abort()
			return
		}

		c.Set(userKey, *user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user stored by AuthRequired.
func CurrentUser(c *gin.Context) (identity.User, bool) {
	value, exists := c.Get(userKey)
	if !exists {
		return identity.User{}, false
	}
	user, ok := value.(identity.User)
	return user, ok
}
