package middlewares

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "kawaiicalc"

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by route and status",
		},
		[]string{"method", "path", "status"},
	)

	// Клавиатура жмёт кнопки часто и быстро, бакеты мельче стандартных.
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Number of HTTP requests currently being processed",
		},
	)
)

// PrometheusMetrics считает запросы, их длительность и число запросов в работе. Сам /metrics не учитывается.
func PrometheusMetrics(c *gin.Context) {
	if c.Request.URL.Path == "/metrics" {
		c.Next()
		return
	}

	httpRequestsInFlight.Inc()
	defer httpRequestsInFlight.Dec()
	start := time.Now()

	c.Next()

	duration := time.Since(start).Seconds()
	status := strconv.Itoa(c.Writer.Status())
	path := c.FullPath()
	if path == "" {
		path = "unknown"
	}

	httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(duration)
}
