package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/andydunstall/ringcast/pkg/log"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(handlers...)
	router.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})
	router.GET("/error", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})
	return router
}

func TestMetrics(t *testing.T) {
	metrics := NewMetrics("test")
	router := newTestRouter(metrics.Handler())

	for _, path := range []string{"/ok", "/ok", "/error"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(
		metrics.RequestsTotal.WithLabelValues("200", http.MethodGet),
	))
	assert.Equal(t, 1.0, testutil.ToFloat64(
		metrics.RequestsTotal.WithLabelValues("500", http.MethodGet),
	))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.RequestsInFlight))
}

func TestLogger(t *testing.T) {
	router := newTestRouter(NewLogger(log.NewNopLogger()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
}
