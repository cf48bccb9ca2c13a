package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "teamsite", Name: "http_requests_total", Help: "HTTP requests by route and status."},
		[]string{"method", "route", "status"},
	)
	HTTPDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Namespace: "teamsite", Name: "http_request_duration_seconds", Help: "HTTP request latency by route.", Buckets: prometheus.DefBuckets},
		[]string{"method", "route"},
	)
	LoginAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "teamsite", Name: "login_attempts_total", Help: "Login attempts by result."},
		[]string{"result"},
	)
	ContentCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "teamsite", Name: "content_created_total", Help: "Content add operations by kind and result status."},
		[]string{"kind", "status"},
	)
	UploadsStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "teamsite", Name: "uploads_stored_total", Help: "Uploaded files stored by backend."},
		[]string{"backend"},
	)
	UploadBytes = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "teamsite", Name: "upload_bytes_total", Help: "Bytes written for uploaded files by backend."},
		[]string{"backend"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(HTTPRequests)
	reg.MustRegister(HTTPDuration)
	reg.MustRegister(LoginAttempts)
	reg.MustRegister(ContentCreated)
	reg.MustRegister(UploadsStored)
	reg.MustRegister(UploadBytes)
}

// Middleware records request count and latency labelled by the matched route
// pattern, so path parameters don't explode label cardinality.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
