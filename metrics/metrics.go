// Package metrics provides Prometheus metrics for the blob store.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blobstore_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blobstore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Object storage metrics
	objectOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blobstore_object_operations_total",
			Help: "Total number of object storage operations",
		},
		[]string{"operation", "status"},
	)

	objectOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "blobstore_object_operation_duration_seconds",
			Help:    "Object storage operation duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	objectBytesUploaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "blobstore_object_bytes_uploaded_total",
			Help: "Total bytes declared by successful uploads",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordHTTPRequest records an HTTP request metric.
func RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// RecordObjectOperation records a put or delete against the storage
// backend.
func RecordObjectOperation(operation string, duration time.Duration, success bool) {
	status := "success"
	if !success {
		status = "error"
	}
	objectOperationsTotal.WithLabelValues(operation, status).Inc()
	objectOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordObjectUpload adds the content length of a successful upload.
func RecordObjectUpload(bytes int64) {
	if bytes > 0 {
		objectBytesUploaded.Add(float64(bytes))
	}
}
