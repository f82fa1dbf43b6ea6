package middleware

import (
	"net/http"

	"github.com/atelier-moveis/atelier-backend/database/model"
	"github.com/atelier-moveis/atelier-backend/web/service"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user's profile carries the
// admin role. AuthRequired must run earlier on the chain. Read-only: a
// missing profile is not bootstrapped here.
func AdminRequired(profiles *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado"})
			c.Abort()
			return
		}

		role, err := profiles.GetRole(user.Id)
		if err != nil || role != model.RoleAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Acesso negado"})
			c.Abort()
			return
		}
		c.Next()
	}
}
