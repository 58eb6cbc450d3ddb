package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareCountsMatchedRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/books/:id", func(c *gin.Context) { c.Status(http.StatusTeapot) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/books/42", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/books/:id", "418"))
	assert.Equal(t, 1.0, got)
}

func TestObserveHelpers(t *testing.T) {
	m := New()
	m.ObserveAuth("login", "success")
	m.ObserveBookInsert(true)
	m.ObserveBookInsert(false)
	m.ObserveBookInsert(false)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.AuthAttemptsTotal.WithLabelValues("login", "success")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.BookInsertsTotal.WithLabelValues("duplicate")))

	var nilMetrics *Metrics
	nilMetrics.ObserveAuth("login", "failure")
	nilMetrics.ObserveBookInsert(true)
}

func TestHandlerServesRegistry(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	m.ObserveAuth("register", "conflict")

	r := gin.New()
	r.GET("/metrics", m.Handler())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `shelf_auth_attempts_total{operation="register",outcome="conflict"} 1`))
}
