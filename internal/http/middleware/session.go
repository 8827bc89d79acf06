package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medivisit/backend/internal/models"
)

const userContextKey = "currentUser"

// SessionSource exposes the persisted currentUser marker. Presence means
// logged in; the value is trusted as stored, there is no token expiry.
type SessionSource interface {
	Session() *models.User
}

func Session(src SessionSource) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := src.Session()
		if user == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{
					"code":    "UNAUTHORIZED",
					"message": "Login required",
				},
			})
			return
		}
		c.Set(userContextKey, *user)
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": gin.H{
					"code":    "FORBIDDEN",
					"message": "Admin privileges required",
				},
			})
			return
		}
		c.Next()
	}
}

// CurrentUser returns the session user set by the Session middleware.
func CurrentUser(c *gin.Context) (models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return models.User{}, false
	}
	user, ok := v.(models.User)
	return user, ok
}
