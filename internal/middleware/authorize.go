package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireUser gates routes that need an authenticated identity. Anonymous
// requests get 401; the session middleware itself never rejects.
func RequireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
			return
		}
		c.Next()
	}
}

// RequireAdmin gates admin routes: 401 for anonymous, 403 for
// authenticated non-admins.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication_required"})
			return
		}
		if !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission_denied"})
			return
		}
		c.Next()
	}
}
