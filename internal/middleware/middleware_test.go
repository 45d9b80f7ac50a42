// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package middleware

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{name: "generated when absent", incoming: ""},
		{name: "upstream id kept", incoming: "proxy-abc-123", keep: true},
		{name: "oversized id replaced", incoming: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var inContext string
			h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				inContext = logging.RequestIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != inContext {
				t.Errorf("header %q != context %q", got, inContext)
			}
			if tt.keep {
				if got != tt.incoming {
					t.Errorf("request id = %q, want %q", got, tt.incoming)
				}
				return
			}
			if _, err := uuid.Parse(got); err != nil {
				t.Errorf("generated id %q is not a UUID", got)
			}
		})
	}
}

func TestPrometheusMetricsUsesRoutePattern(t *testing.T) {
	t.Parallel()

	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/test-metrics/users/{username}/bar", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	counter := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/test-metrics/users/{username}/bar", "418")
	before := testutil.ToFloat64(counter)

	for _, user := range []string{"alice", "bob", "carol"} {
		req := httptest.NewRequest(http.MethodGet, "/test-metrics/users/"+user+"/bar", nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	if got := testutil.ToFloat64(counter) - before; got != 3 {
		t.Errorf("pattern counter delta = %v, want 3", got)
	}
}

func TestRoutePatternWithoutRouter(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	if got := routePattern(req); got != unmatchedRoute {
		t.Errorf("routePattern() = %q, want %q", got, unmatchedRoute)
	}
}

func TestCompression(t *testing.T) {
	t.Parallel()

	body := strings.Repeat(`{"bottle":"glenfarclas-15"}`, 100)
	h := Compression(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}))

	t.Run("gzip accepted", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bottles", nil)
		req.Header.Set("Accept-Encoding", "gzip, deflate")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Fatalf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
		}
		zr, err := gzip.NewReader(rec.Body)
		if err != nil {
			t.Fatalf("gzip.NewReader() error = %v", err)
		}
		plain, err := io.ReadAll(zr)
		if err != nil {
			t.Fatalf("ReadAll() error = %v", err)
		}
		if string(plain) != body {
			t.Error("decompressed body differs")
		}
	})

	t.Run("identity", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/api/v1/bottles", nil)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "" || rec.Body.String() != body {
			t.Error("response should pass through uncompressed")
		}
	})

	t.Run("metrics endpoint untouched", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Header().Get("Content-Encoding") != "" {
			t.Error("metrics response should not be wrapped")
		}
	})
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		delay   time.Duration
		slow    time.Duration
		wantMsg string
	}{
		{name: "server error", status: http.StatusBadGateway, wantMsg: "request failed"},
		{name: "slow request", status: http.StatusOK, delay: 20 * time.Millisecond, slow: time.Millisecond, wantMsg: "slow request"},
		{name: "fast success stays at debug", status: http.StatusOK, slow: time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				time.Sleep(tt.delay)
				w.WriteHeader(tt.status)
			})
			withLogger := func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					ctx := logging.ContextWithLogger(r.Context(), logging.NewTestLogger(&buf))
					next.ServeHTTP(w, r.WithContext(ctx))
				})
			}
			h := withLogger(AccessLog(tt.slow)(inner))

			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/recommendations", nil))

			out := buf.String()
			if tt.wantMsg == "" {
				// global level is info; debug lines are dropped
				if out != "" {
					t.Errorf("unexpected log output %q", out)
				}
				return
			}
			if !strings.Contains(out, tt.wantMsg) || !strings.Contains(out, `"level":"warn"`) {
				t.Errorf("log output %q, want warn %q", out, tt.wantMsg)
			}
		})
	}
}
