package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// EmbeddingRequestsTotal counts embedding API calls by provider, model and status.
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "embedding_requests_total",
			Help:      "Total embedding API requests",
		},
		[]string{"provider", "model", "status"},
	)

	// EmbeddingRequestDuration tracks embedding API latency.
	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "docdex",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding API request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"provider", "model"},
	)

	// EmbeddingTokensTotal counts tokens consumed by embedding requests.
	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "docdex",
			Name:      "embedding_tokens_total",
			Help:      "Total tokens consumed by embedding requests",
		},
		[]string{"provider", "model", "kind"},
	)
)

// RegisterEmbeddingMetrics registers embedding metrics with the default registry.
// Call once from main before serving.
func RegisterEmbeddingMetrics() {
	prometheus.MustRegister(
		EmbeddingRequestsTotal,
		EmbeddingRequestDuration,
		EmbeddingTokensTotal,
	)
}
