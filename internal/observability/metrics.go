package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "Total HTTP requests processed, by method, route and status code.",
	}, []string{"method", "route", "status"})

	httpRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "carbontrack",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency, by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	emissionsCreatedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "carbontrack",
		Subsystem: "records",
		Name:      "emissions_created_total",
		Help:      "Emission records created, by category.",
	}, []string{"category"})
)

func init() {
	prometheus.MustRegister(httpRequestsTotal, httpRequestDuration, emissionsCreatedTotal)
}

// RecordEmissionCreated bumps the per-category creation counter.
func RecordEmissionCreated(category string) {
	emissionsCreatedTotal.WithLabelValues(category).Inc()
}

// HTTPMetrics instruments every request with a counter and latency histogram.
func HTTPMetrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
