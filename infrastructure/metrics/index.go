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
	// PaymentInitiations counts initiation attempts by provider and outcome.
	PaymentInitiations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_initiations_total",
			Help: "Total number of payment initiations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	// PaymentPersistenceGaps counts payments that exist at a provider but
	// could not be written locally.
	PaymentPersistenceGaps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_persistence_gaps_total",
			Help: "Payments created at a provider that failed to persist locally",
		},
		[]string{"provider"},
	)

	PaymentReconciliations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_reconciliations_total",
			Help: "Total number of reconciliations by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payment_provider_latency_seconds",
			Help:    "Latency of payment provider operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider", "operation"},
	)

	EnrollmentAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrollment_attempts_total",
			Help: "Enrollment attempts by outcome",
		},
		[]string{"outcome"},
	)

	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by method, route and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Handler serves the default registry.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

// RequestMiddleware records every request against its route template, so
// path parameters do not explode the label set.
func RequestMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		HTTPRequests.WithLabelValues(ctx.Request.Method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(ctx.Request.Method, route).Observe(time.Since(start).Seconds())
	}
}
