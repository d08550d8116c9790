package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripplanner_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Pipeline metrics
	QueriesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_queries_processed_total",
			Help: "Total number of travel questions processed",
		},
		[]string{"kind", "status"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_cache_lookups_total",
			Help: "Listing store cache gate outcomes",
		},
		[]string{"result"},
	)

	// Scraper metrics
	ScrapesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_scrapes_total",
			Help: "Total number of live scrapes",
		},
		[]string{"kind", "status"},
	)

	ScrapeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tripplanner_scrape_duration_seconds",
			Help:    "Duration of live scrapes in seconds",
			Buckets: []float64{1, 5, 10, 20, 30, 60, 120},
		},
		[]string{"kind"},
	)

	// Storage metrics
	ListingsStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_listings_stored_total",
			Help: "Total number of listings written to the store",
		},
		[]string{"kind"},
	)

	// Embedding metrics
	EmbeddingGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_embedding_generations_total",
			Help: "Total number of embedding generations",
		},
		[]string{"status"},
	)

	EmbeddingGenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tripplanner_embedding_generation_duration_seconds",
			Help:    "Duration of embedding generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// LLM metrics
	LLMCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_llm_calls_total",
			Help: "Total number of local LLM invocations",
		},
		[]string{"status"},
	)

	LLMCallDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "tripplanner_llm_call_duration_seconds",
			Help:    "Duration of local LLM invocations in seconds",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300},
		},
	)

	// Trip metrics
	TripsSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tripplanner_trips_submitted_total",
			Help: "Total number of trip submissions",
		},
		[]string{"status"},
	)
)
