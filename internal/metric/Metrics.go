package metric

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// 1. Store admin API calls
	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order",
		Subsystem: "upstream",
		Name:      "requests_total",
		Help:      "Calls to the store admin API by operation and outcome",
	}, []string{"operation", "status"}) // ok / unavailable / HTTP status code

	UpstreamDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "order",
		Subsystem: "upstream",
		Name:      "request_duration_seconds",
		Help:      "Latency of store admin API calls",
		Buckets:   prometheus.DefBuckets,
	}, []string{"operation"})

	// 2. Lookup outcomes
	LookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "order",
		Subsystem: "lookup",
		Name:      "results_total",
		Help:      "Customer order lookups by result",
	}, []string{"result"}) // found / not_found / invalid / error

	// 3. Admission control
	RateLimitedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "order",
		Subsystem: "ratelimit",
		Name:      "rejected_total",
		Help:      "Requests rejected by the rate limiter",
	})

	RateLimitClients = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "order",
		Subsystem: "ratelimit",
		Name:      "clients_count",
		Help:      "Client keys currently tracked by the in-memory limiter",
	})

	// 4. HTTP requests
	RequestMetrics = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace:  "order",
		Subsystem:  "http",
		Name:       "request",
		Help:       "HTTP request latency by status",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"status"})
)

func ObserveRequest(t time.Duration, status int) {
	RequestMetrics.WithLabelValues(strconv.Itoa(status)).Observe(t.Seconds())
}
