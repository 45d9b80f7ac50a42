// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "barkeep"

// Outcome label values.
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
	OutcomeEmpty   = "empty"
)

var (
	// HTTP
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_requests_total",
			Help:      "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "api_request_duration_seconds",
			Help:      "API request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "api_active_requests",
			Help:      "Current number of in-flight API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "api_rate_limit_hits_total",
			Help:      "Total number of requests rejected by the rate limiter",
		},
		[]string{"endpoint"},
	)

	// Recommendations
	RecommendRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommend_requests_total",
			Help:      "Recommendation requests by mode (personal, starter) and outcome",
		},
		[]string{"mode", "outcome"},
	)

	RecommendDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_duration_seconds",
			Help:      "Time spent profiling, scoring and ranking one request",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
		[]string{"mode"},
	)

	RecommendResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "recommend_results",
			Help:      "Number of bottles returned per recommendation request",
			Buckets:   []float64{0, 1, 3, 5, 10, 20, 50},
		},
	)

	AnalysesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analyses_total",
			Help:      "Collection analyses by outcome",
		},
		[]string{"outcome"},
	)

	AnalysisCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "analysis_cache_lookups_total",
			Help:      "Analysis cache lookups by result (hit, miss)",
		},
		[]string{"result"},
	)

	// Catalog
	CatalogBottles = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_bottles",
			Help:      "Bottles in the active catalog snapshot",
		},
	)

	CatalogRefreshTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_refresh_total",
			Help:      "Catalog loads by source and outcome",
		},
		[]string{"source", "outcome"},
	)

	CatalogRefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "catalog_refresh_duration_seconds",
			Help:      "Catalog load duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
		[]string{"source"},
	)

	CatalogLastRefresh = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "catalog_last_refresh_timestamp_seconds",
			Help:      "Unix time of the last successful catalog load",
		},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "duckdb_query_duration_seconds",
			Help:      "Duration of DuckDB catalog queries in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duckdb_query_errors_total",
			Help:      "Total number of failed DuckDB catalog queries",
		},
		[]string{"operation", "table"},
	)

	// Storage and upstream
	StoreOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_operation_duration_seconds",
			Help:      "Badger store operation duration in seconds",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		},
		[]string{"operation"},
	)

	StoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_errors_total",
			Help:      "Failed Badger store operations",
		},
		[]string{"operation"},
	)

	BarFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bar_fetch_total",
			Help:      "Bar fetches from the upstream bar API by outcome",
		},
		[]string{"outcome"},
	)

	BarFetchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "bar_fetch_duration_seconds",
			Help:      "Upstream bar API request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "circuit_breaker_state",
			Help:      "Circuit breaker state: 0 closed, 1 half-open, 2 open",
		},
		[]string{"name"},
	)
)

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest moves the in-flight gauge up or down.
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
		return
	}
	APIActiveRequests.Dec()
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecommendation records one engine call. mode is "personal" or
// "starter"; an error-free call returning nothing counts as empty.
func RecordRecommendation(mode string, returned int, duration time.Duration, err error) {
	result := outcome(err)
	if err == nil && returned == 0 {
		result = OutcomeEmpty
	}
	RecommendRequests.WithLabelValues(mode, result).Inc()
	RecommendDuration.WithLabelValues(mode).Observe(duration.Seconds())
	if err == nil {
		RecommendResults.Observe(float64(returned))
	}
}

// RecordAnalysis counts one collection analysis.
func RecordAnalysis(err error) {
	AnalysesTotal.WithLabelValues(outcome(err)).Inc()
}

// RecordAnalysisCache counts one analysis cache lookup.
func RecordAnalysisCache(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	AnalysisCacheLookups.WithLabelValues(result).Inc()
}

// RecordCatalogRefresh records a catalog load. The bottle gauge and refresh
// timestamp only move on success.
func RecordCatalogRefresh(source string, bottles int, duration time.Duration, err error) {
	CatalogRefreshTotal.WithLabelValues(source, outcome(err)).Inc()
	CatalogRefreshDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		return
	}
	CatalogBottles.Set(float64(bottles))
	CatalogLastRefresh.SetToCurrentTime()
}

// RecordDBQuery records a DuckDB query.
func RecordDBQuery(operation, table string, duration time.Duration, err error) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
	if err != nil {
		DBQueryErrors.WithLabelValues(operation, table).Inc()
	}
}

// RecordStoreOperation records a Badger operation such as "put_bar".
func RecordStoreOperation(operation string, duration time.Duration, err error) {
	StoreOperationDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if err != nil {
		StoreErrors.WithLabelValues(operation).Inc()
	}
}

// RecordBarFetch records an upstream bar API call. Rejections by an open
// circuit breaker use the outcome "rejected".
func RecordBarFetch(result string, duration time.Duration) {
	BarFetchTotal.WithLabelValues(result).Inc()
	if result != "rejected" {
		BarFetchDuration.Observe(duration.Seconds())
	}
}

// SetCircuitBreakerState publishes a breaker state (0 closed, 1 half-open,
// 2 open).
func SetCircuitBreakerState(name string, state int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(state))
}
