package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/mishabitos-api/internal/logger"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger.InitWriter(&buf, slog.LevelDebug)

	var seen string
	router := gin.New()
	router.Use(RequestLogger(), Metrics())
	router.GET("/habits/:id", func(c *gin.Context) {
		seen = logger.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNotFound)
	})

	t.Run("Propagates the caller's request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/habits/h1", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()

		router.ServeHTTP(w, req)

		assert.Equal(t, "req-42", seen)
		assert.Equal(t, "req-42", w.Header().Get(RequestIDHeader))
		assert.Contains(t, buf.String(), "request_id=req-42")
		assert.Contains(t, buf.String(), "status=404")
		assert.Contains(t, buf.String(), "level=WARN")
	})

	t.Run("Generates one when absent", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/habits/h2", nil))

		assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})
}
