package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/masaladesk/restro_backend/config"
	"github.com/masaladesk/restro_backend/utils"
)

// AuthMiddleware validates the bearer token and rejects sessions revoked by
// logout. Claims are copied into the request context for the models layer.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.Request.Header.Get("Authorization")

		const bearer = "Bearer "
		if !strings.HasPrefix(auth, bearer) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			c.Abort()
			return
		}
		token := auth[len(bearer):]

		validate, err := utils.JwtValidate(token)
		if err != nil || !validate.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
			c.Abort()
			return
		}

		// sessions live in redis; a missing key means the token was revoked
		if config.GetRedisDB() != nil {
			if _, found, err := config.GetRedisValue("Token:" + token); err != nil || !found {
				c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "unauthorized"})
				c.Abort()
				return
			}
		}

		claims, _ := validate.Claims.(*utils.JwtCustomClaim)

		ctx := c.Request.Context()
		ctx = utils.SetTokenInContext(ctx, token)
		if claims != nil {
			ctx = utils.SetUserIdInContext(ctx, claims.ID)
			ctx = utils.SetRoleInContext(ctx, claims.Role)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
