// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// The instruments are process-wide, so tests compare before and after
// values on label sets no other test touches.

func TestRecordAPIRequest(t *testing.T) {
	t.Parallel()

	counter := APIRequestsTotal.WithLabelValues("GET", "/test/api", "200")
	before := testutil.ToFloat64(counter)

	RecordAPIRequest("GET", "/test/api", "200", 20*time.Millisecond)
	RecordAPIRequest("GET", "/test/api", "200", 40*time.Millisecond)

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("requests delta = %v, want 2", got)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	t.Parallel()

	TrackActiveRequest(true)
	TrackActiveRequest(true)
	TrackActiveRequest(false)
	TrackActiveRequest(false)
	// other tests in the package never touch the gauge
	if got := testutil.ToFloat64(APIActiveRequests); got != 0 {
		t.Errorf("active requests = %v, want 0", got)
	}
}

func TestRecordRecommendation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mode     string
		returned int
		err      error
		outcome  string
	}{
		{name: "served", mode: "test-personal", returned: 5, outcome: OutcomeSuccess},
		{name: "nothing to recommend", mode: "test-personal", returned: 0, outcome: OutcomeEmpty},
		{name: "failed", mode: "test-starter", err: errors.New("bad k"), outcome: OutcomeError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := RecommendRequests.WithLabelValues(tt.mode, tt.outcome)
			before := testutil.ToFloat64(c)
			RecordRecommendation(tt.mode, tt.returned, time.Millisecond, tt.err)
			if got := testutil.ToFloat64(c) - before; got != 1 {
				t.Errorf("%s/%s delta = %v, want 1", tt.mode, tt.outcome, got)
			}
		})
	}
}

func TestRecordCatalogRefresh(t *testing.T) {
	t.Parallel()

	ok := CatalogRefreshTotal.WithLabelValues("test-file", OutcomeSuccess)
	failed := CatalogRefreshTotal.WithLabelValues("test-file", OutcomeError)
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	RecordCatalogRefresh("test-file", 321, time.Second, nil)
	if got := testutil.ToFloat64(CatalogBottles); got != 321 {
		t.Errorf("catalog bottles = %v, want 321", got)
	}
	if testutil.ToFloat64(CatalogLastRefresh) <= 0 {
		t.Error("last refresh timestamp not set")
	}

	RecordCatalogRefresh("test-file", 0, time.Second, errors.New("parse error"))
	if got := testutil.ToFloat64(CatalogBottles); got != 321 {
		t.Errorf("catalog bottles after failure = %v, want 321 kept", got)
	}

	if testutil.ToFloat64(ok)-okBefore != 1 || testutil.ToFloat64(failed)-failedBefore != 1 {
		t.Error("refresh counters did not move by one each")
	}
}

func TestRecordDBQueryAndStore(t *testing.T) {
	t.Parallel()

	dbErrs := DBQueryErrors.WithLabelValues("select", "test_bottles")
	before := testutil.ToFloat64(dbErrs)
	RecordDBQuery("select", "test_bottles", time.Millisecond, nil)
	RecordDBQuery("select", "test_bottles", time.Millisecond, errors.New("no such table"))
	if got := testutil.ToFloat64(dbErrs) - before; got != 1 {
		t.Errorf("db errors delta = %v, want 1", got)
	}

	storeErrs := StoreErrors.WithLabelValues("test_put")
	before = testutil.ToFloat64(storeErrs)
	RecordStoreOperation("test_put", time.Microsecond, nil)
	RecordStoreOperation("test_put", time.Microsecond, errors.New("conflict"))
	if got := testutil.ToFloat64(storeErrs) - before; got != 1 {
		t.Errorf("store errors delta = %v, want 1", got)
	}
}

func TestBarFetchAndBreaker(t *testing.T) {
	t.Parallel()

	rejected := BarFetchTotal.WithLabelValues("rejected")
	before := testutil.ToFloat64(rejected)
	RecordBarFetch("rejected", 0)
	if got := testutil.ToFloat64(rejected) - before; got != 1 {
		t.Errorf("rejected delta = %v, want 1", got)
	}

	SetCircuitBreakerState("test-breaker", 2)
	if got := testutil.ToFloat64(CircuitBreakerState.WithLabelValues("test-breaker")); got != 2 {
		t.Errorf("breaker state = %v, want 2", got)
	}
}

func TestRecordRateLimitHit(t *testing.T) {
	t.Parallel()

	c := APIRateLimitHits.WithLabelValues("/test/limited")
	before := testutil.ToFloat64(c)
	RecordRateLimitHit("/test/limited")
	if got := testutil.ToFloat64(c) - before; got != 1 {
		t.Errorf("rate limit delta = %v, want 1", got)
	}
}

func TestRecordAnalysisCache(t *testing.T) {
	t.Parallel()

	hits := AnalysisCacheLookups.WithLabelValues("hit")
	misses := AnalysisCacheLookups.WithLabelValues("miss")
	hitsBefore, missesBefore := testutil.ToFloat64(hits), testutil.ToFloat64(misses)

	RecordAnalysisCache(false)
	RecordAnalysisCache(true)
	RecordAnalysisCache(true)

	if got := testutil.ToFloat64(hits) - hitsBefore; got != 2 {
		t.Errorf("hits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(misses) - missesBefore; got != 1 {
		t.Errorf("misses delta = %v, want 1", got)
	}
}
