package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "order_api_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	orderOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_order_operations_total",
			Help: "Total number of order operations",
		},
		[]string{"operation", "status"},
	)

	authOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_auth_operations_total",
			Help: "Total number of register and login operations",
		},
		[]string{"operation", "status"},
	)

	authFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_api_auth_failures_total",
			Help: "Requests rejected by the authentication gate",
		},
		[]string{"status"},
	)
)

// PrometheusMiddleware records request count and latency per route.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		httpRequestsTotal.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Inc()

		httpRequestDuration.WithLabelValues(
			c.Request.Method,
			path,
			status,
		).Observe(duration)
	}
}

// RecordOrderOperation counts an order operation by outcome.
func RecordOrderOperation(operation string, success bool) {
	orderOperations.WithLabelValues(operation, outcome(success)).Inc()
}

// RecordAuthOperation counts a register or login attempt by outcome.
func RecordAuthOperation(operation string, success bool) {
	authOperations.WithLabelValues(operation, outcome(success)).Inc()
}

func outcome(success bool) string {
	if success {
		return "success"
	}
	return "error"
}

// RecordAuthFailure counts a request rejected by AuthMiddleware.
func RecordAuthFailure(status int) {
	authFailures.WithLabelValues(strconv.Itoa(status)).Inc()
}
