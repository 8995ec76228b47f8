package utils

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MetricHttpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "http_requests_total",
		Help:      "Number of HTTP requests by route, method and status code",
	}, []string{"route", "method", "status"})

	MetricHttpLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests by route and method",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method"})

	MetricCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "cache_lookups_total",
		Help:      "Read-through cache lookups by namespace and result (hit, miss, error)",
	}, []string{"namespace", "result"})

	MetricRateLimited = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "rate_limited_requests_total",
		Help:      "Requests rejected by the rate limiter",
	})

	MetricOrdersPlaced = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "orders_placed_total",
		Help:      "Orders created from a cart checkout",
	})

	MetricKnowledgeDocumentsIndexed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Name:      "knowledge_documents_indexed_total",
		Help:      "Documents written to the vector store by type",
	}, []string{"type"})
)
