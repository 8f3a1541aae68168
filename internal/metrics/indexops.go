package metrics

import "github.com/prometheus/client_golang/prometheus"

// Semantic index backend Prometheus metrics.
var (
	IndexRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "index_requests_total",
			Help:      "Total number of index backend requests",
		},
		[]string{"driver", "op", "status"},
	)

	IndexRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docdex",
			Name:      "index_request_duration_seconds",
			Help:      "Index backend request duration in seconds",
			Buckets:   []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"driver", "op"},
	)

	IndexRecordsUpserted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "index_records_upserted_total",
			Help:      "Total records committed to the index",
		},
		[]string{"driver"},
	)
)

var indexMetricsRegistered bool

// RegisterIndexMetrics registers Prometheus index metrics. Must be called once from main.
func RegisterIndexMetrics() {
	if indexMetricsRegistered {
		return
	}
	prometheus.MustRegister(IndexRequestsTotal)
	prometheus.MustRegister(IndexRequestDuration)
	prometheus.MustRegister(IndexRecordsUpserted)
	indexMetricsRegistered = true
}

// ObserveIndexOp records one backend call outcome.
func ObserveIndexOp(driver, op string, seconds float64, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	IndexRequestsTotal.WithLabelValues(driver, op, status).Inc()
	if err == nil {
		IndexRequestDuration.WithLabelValues(driver, op).Observe(seconds)
	}
}
