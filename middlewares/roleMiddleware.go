package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/masaladesk/restro_backend/utils"
)

// RequireAdmin guards owner-only routes. Runs after AuthMiddleware, which
// placed the role claim in the request context.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := utils.GetRoleFromContext(c.Request.Context())
		if !ok || role != "admin" {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "admin access required"})
			c.Abort()
			return
		}
		c.Next()
	}
}
