package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"inkwell/api/internal/models"
)

type stubResolver struct {
	valid string
	user  models.User
}

func (s *stubResolver) Resolve(_ context.Context, token string) (models.User, bool) {
	if token == s.valid {
		return s.user, true
	}
	return models.User{}, false
}

func newSessionRouter(resolver SessionResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Session("test_session", resolver))
	router.GET("/whoami", func(c *gin.Context) {
		if user, ok := CurrentUser(c); ok {
			c.JSON(http.StatusOK, gin.H{"id": user.ID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": ""})
	})
	return router
}

func TestSessionAttachesUser(t *testing.T) {
	resolver := &stubResolver{valid: "good-token", user: models.User{ID: "u1"}}
	router := newSessionRouter(resolver)

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: "test_session", Value: "good-token"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if body := rec.Body.String(); body != `{"id":"u1"}` {
		t.Fatalf("body = %s", body)
	}
}

func TestSessionInvalidCookieProceedsAnonymous(t *testing.T) {
	resolver := &stubResolver{valid: "good-token", user: models.User{ID: "u1"}}
	router := newSessionRouter(resolver)

	for name, cookie := range map[string]*http.Cookie{
		"absent":  nil,
		"invalid": {Name: "test_session", Value: "bad-token"},
	} {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if cookie != nil {
			req.AddCookie(cookie)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, want 200", name, rec.Code)
		}
		if body := rec.Body.String(); body != `{"id":""}` {
			t.Fatalf("%s: body = %s", name, body)
		}
	}
}
