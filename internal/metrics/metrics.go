package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishabitos_http_requests_total",
			Help: "Total number of HTTP requests by route, method, and status",
		},
		[]string{"route", "method", "status_code"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mishabitos_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method", "status_code"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishabitos_auth_events_total",
			Help: "Total authentication events by type and result",
		},
		[]string{"event_type", "result"},
	)

	statsJobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mishabitos_stats_jobs_total",
			Help: "Stats snapshot jobs by outcome",
		},
		[]string{"result"},
	)

	rateLimitedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mishabitos_rate_limited_requests_total",
			Help: "Requests rejected by the rate limiter",
		},
	)
)

func ObserveHTTP(route, method, status string, seconds float64) {
	httpRequestsTotal.WithLabelValues(route, method, status).Inc()
	httpRequestDuration.WithLabelValues(route, method, status).Observe(seconds)
}

func RecordAuthEvent(eventType, result string) {
	authEventsTotal.WithLabelValues(eventType, result).Inc()
}

// RecordStatsJob counts worker outcomes: "ok", "error" or "dropped".
func RecordStatsJob(result string) {
	statsJobsTotal.WithLabelValues(result).Inc()
}

func RecordRateLimited() {
	rateLimitedTotal.Inc()
}
