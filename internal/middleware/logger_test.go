package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

func TestLoggerSkipsHealthProbes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(Logger(log))
	router.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/v1/posts", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if buf.Len() != 0 {
		t.Fatalf("health probe was logged: %s", buf.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/posts", nil))
	line := buf.String()
	if !strings.Contains(line, `"path":"/v1/posts"`) || !strings.Contains(line, `"status":200`) {
		t.Fatalf("unexpected log line: %s", line)
	}
}

func TestRecoveryConvertsPanicTo500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := zerolog.New(&buf)

	router := gin.New()
	router.Use(Recovery(log))
	router.GET("/boom", func(c *gin.Context) { panic("kaboom") })

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); body != `{"error":"internal_server_error"}` {
		t.Fatalf("body = %s", body)
	}
	if !strings.Contains(buf.String(), `"path":"/boom"`) {
		t.Fatalf("panic log missing path: %s", buf.String())
	}
}
