// Package metrics defines the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "zhja"

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by method, route and status code.",
	}, []string{"method", "path", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path"})

	// Translation pipeline
	TranslationRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translation_requests_total",
		Help:      "Translations served, by source (cache or gateway provider).",
	}, []string{"source"})

	TranslationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translation_cache_hits_total",
		Help:      "Translation cache lookups that found an entry.",
	})

	TranslationCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "translation_cache_misses_total",
		Help:      "Translation cache lookups that found nothing (including store failures).",
	})

	// Gateway
	GatewayLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_latency_seconds",
		Help:      "Latency of translation backend calls.",
		Buckets:   []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"provider"})

	GatewayErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_errors_total",
		Help:      "Failed translation backend calls by provider and kind.",
	}, []string{"provider", "kind"})

	GatewayFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_fallbacks_total",
		Help:      "Model replies that were not valid JSON and got a fallback result.",
	}, []string{"provider"})

	GatewayBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gateway_breaker_state",
		Help:      "Circuit breaker state per provider (0 closed, 1 half-open, 2 open).",
	}, []string{"provider"})

	// Store and statistics
	StoreErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Key-value store failures by operation.",
	}, []string{"op"})

	StatsUpdateErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stats_update_errors_total",
		Help:      "Daily statistics updates that were dropped.",
	})

	TodayRequests = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "today_requests",
		Help:      "Requests counted in today's statistics record.",
	})

	TodayCacheRate = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "today_cache_rate_percent",
		Help:      "Today's cache hit rate in percent.",
	})

	TodayCategoryRequests = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "today_category_requests",
		Help:      "Today's word requests per vocabulary category.",
	}, []string{"category"})

	CacheEntriesTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_entries",
		Help:      "Translation cache entries in the store.",
	})

	CacheStoredHitsTotal = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "cache_stored_hits",
		Help:      "Sum of hit counts over all stored cache entries.",
	})
)
