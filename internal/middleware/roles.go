package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireRoles gates a route group to the given roles. Runs after
// AuthMiddleware has put the role in the context.
func RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get(ContextUserRole)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error_code": "user_not_in_context", "message": "Authentication required."})
			return
		}

		role, _ := roleVal.(string)
		for _, allowed := range roles {
			if role == allowed {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error_code": "insufficient_role", "message": "You do not have permission to perform this action."})
	}
}
