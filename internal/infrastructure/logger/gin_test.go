package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func serveWithMiddleware(t *testing.T, status int, handlers ...gin.HandlerFunc) *observer.ObservedLogs {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(handlers...)
	router.Use(GinMiddleware(zap.New(core)))
	router.GET("/units", func(c *gin.Context) {
		c.Status(status)
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/units", nil)
	router.ServeHTTP(w, req)
	require.Equal(t, status, w.Code)
	return recorded
}

func accessLine(t *testing.T, recorded *observer.ObservedLogs) observer.LoggedEntry {
	t.Helper()
	entries := recorded.FilterMessage("request completed").All()
	require.Len(t, entries, 1)
	return entries[0]
}

func TestGinMiddlewareLevels(t *testing.T) {
	cases := []struct {
		status int
		level  zapcore.Level
	}{
		{http.StatusOK, zapcore.InfoLevel},
		{http.StatusUnprocessableEntity, zapcore.WarnLevel},
		{http.StatusInternalServerError, zapcore.ErrorLevel},
	}

	for _, tc := range cases {
		entry := accessLine(t, serveWithMiddleware(t, tc.status))
		assert.Equal(t, tc.level, entry.Level, "status %d", tc.status)

		fields := entry.ContextMap()
		assert.Equal(t, int64(tc.status), fields["status"])
		assert.Equal(t, "/units", fields["path"])
	}
}

func TestGinMiddlewareCarriesRequestID(t *testing.T) {
	recorded := serveWithMiddleware(t, http.StatusOK, func(c *gin.Context) {
		c.Set(ctxKeyRequestID, "req-9f2c")
		c.Next()
	})

	entry := accessLine(t, recorded)
	assert.Equal(t, "req-9f2c", entry.ContextMap()["request_id"])
}

func TestGetGinLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("returns the scoped logger set by the middleware", func(t *testing.T) {
		core, recorded := observer.New(zapcore.InfoLevel)
		router := gin.New()
		router.Use(GinMiddleware(zap.New(core)))
		router.GET("/units", func(c *gin.Context) {
			GetGinLogger(c).Info("listing refreshed")
			c.Status(http.StatusOK)
		})

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/units", nil)
		router.ServeHTTP(w, req)

		entries := recorded.FilterMessage("listing refreshed").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "/units", entries[0].ContextMap()["path"])
	})

	t.Run("falls back to a no-op logger", func(t *testing.T) {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		assert.NotNil(t, GetGinLogger(c))
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, recorded := observer.New(zapcore.InfoLevel)
	router := gin.New()
	router.Use(Recovery(zap.New(core)))
	router.GET("/boom", func(c *gin.Context) {
		panic("unreachable unit state")
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	entries := recorded.FilterMessage("panic recovered").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "unreachable unit state", entries[0].ContextMap()["panic"])
}
