// Package metrics exposes Prometheus instrumentation for the API.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illineats_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "illineats_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	RecommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illineats_recommendations_served_total",
			Help: "Recommendation lists served, by source",
		},
		[]string{"source"}, // "cache", "computed"
	)

	RecommendationPoolSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "illineats_recommendation_pool_size",
			Help:    "Number of candidate foods considered per recommendation request",
			Buckets: []float64{0, 5, 10, 20, 50, 100, 200, 500},
		},
	)

	ServingStatusLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illineats_serving_status_total",
			Help: "Serving status resolutions returned to clients",
		},
		[]string{"status"},
	)

	ImportedRecords = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illineats_import_records_total",
			Help: "Menu records processed by bulk import",
		},
		[]string{"result"}, // "food_created", "entry_created", "entry_skipped"
	)

	ImageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "illineats_image_uploads_total",
			Help: "Food image uploads by outcome",
		},
		[]string{"result"},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Middleware records every request against its route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		RecordAPIRequest(c.Request.Method, endpoint, c.Writer.Status(), time.Since(start))
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
