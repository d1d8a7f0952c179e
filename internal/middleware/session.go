package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"inkwell/api/internal/models"
)

const contextUserKey = "current_user"

// SessionResolver maps a transport token to an identity; the boolean is
// false for anonymous. Satisfied by service.SessionService.
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (models.User, bool)
}

// Session resolves the session cookie into the current user and attaches
// it to the request context. It never rejects: missing, malformed or
// invalid cookies leave the request anonymous, and route gates decide
// whether that matters.
func Session(cookieName string, sessions SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
			if user, ok := sessions.Resolve(c.Request.Context(), cookie); ok {
				c.Set(contextUserKey, user)
			}
		}
		c.Next()
	}
}

// CurrentUser retrieves the identity the Session middleware attached;
// the boolean is false for anonymous requests.
func CurrentUser(c *gin.Context) (models.User, bool) {
	value, exists := c.Get(contextUserKey)
	if !exists {
		return models.User{}, false
	}
	user, ok := value.(models.User)
	return user, ok
}
