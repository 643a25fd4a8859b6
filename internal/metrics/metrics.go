// Package metrics defines Prometheus metrics for the listings API.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "househunters_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "househunters_http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "househunters_errors_total",
			Help: "Total errors by type",
		},
		[]string{"type"},
	)

	LoginsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "househunters_admin_logins_total",
			Help: "Admin login attempts by result",
		},
		[]string{"result"},
	)

	ImagesUploaded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "househunters_images_uploaded_total",
			Help: "Property image uploads by result",
		},
		[]string{"result"},
	)

	BrochuresGenerated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "househunters_brochures_generated_total",
			Help: "Property brochure PDFs rendered",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RequestDuration, RequestsTotal, ErrorsTotal,
		LoginsTotal, ImagesUploaded, BrochuresGenerated,
	)
}
