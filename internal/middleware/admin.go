package middleware

import (
	"net/http"

	"izmarket/internal/domain"

	"github.com/gin-gonic/gin"
)

// AdminRequired checks that the authenticated user carries the admin
// role. The moderation service re-checks against the user row, so a
// deactivated admin is rejected even with a still-valid token.
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists || role.(string) != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}
