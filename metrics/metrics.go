// Package metrics declares the RescuEdge Prometheus collectors and the
// handler that exposes them on /metrics/prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rescuedge_http_requests_total",
			Help: "Total number of HTTP requests by route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rescuedge_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	CorridorsInitialized = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rescuedge_corridors_initialized_total",
			Help: "Total number of corridors initialized for accident scenes",
		},
	)

	NearestHospitalQueries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rescuedge_nearest_hospital_queries_total",
			Help: "Nearest-hospital lookups by outcome (found, empty)",
		},
		[]string{"result"},
	)

	BedUpdates = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "rescuedge_hospital_bed_updates_total",
			Help: "Total number of hospital bed availability updates",
		},
	)

	HospitalsRegistered = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "rescuedge_hospitals_registered",
			Help: "Number of hospitals currently in the registry",
		},
	)

	AlertsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rescuedge_alerts_sent_total",
			Help: "Emergency SMS alerts by outcome (sent, failed)",
		},
		[]string{"status"},
	)
)

// Handler serves the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}

// GinMiddleware records request counts and latency per matched route.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveNearest records the outcome of a nearest-hospital lookup.
func ObserveNearest(results int) {
	if results == 0 {
		NearestHospitalQueries.WithLabelValues("empty").Inc()
		return
	}
	NearestHospitalQueries.WithLabelValues("found").Inc()
}
