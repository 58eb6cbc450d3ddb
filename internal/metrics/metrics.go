package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the Prometheus collectors exported at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	AuthAttemptsTotal   *prometheus.CounterVec
	BookInsertsTotal    *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shelf_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
		AuthAttemptsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_auth_attempts_total",
				Help: "Authentication attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		BookInsertsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shelf_book_inserts_total",
				Help: "Conditional book inserts by outcome",
			},
			[]string{"outcome"},
		),
	}

	m.registry.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.AuthAttemptsTotal,
		m.BookInsertsTotal,
	)
	return m
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveAuth(operation, outcome string) {
	if m == nil {
		return
	}
	m.AuthAttemptsTotal.WithLabelValues(operation, outcome).Inc()
}

func (m *Metrics) ObserveBookInsert(inserted bool) {
	if m == nil {
		return
	}
	outcome := "duplicate"
	if inserted {
		outcome = "inserted"
	}
	m.BookInsertsTotal.WithLabelValues(outcome).Inc()
}

// Middleware records request count and latency labelled by the matched route.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
		m.HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

func (m *Metrics) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
}
