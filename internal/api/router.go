// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/middleware"
)

// RouterConfig holds what the router needs besides the handler.
type RouterConfig struct {
	Middleware *ChiMiddlewareConfig
	Auth       *auth.Middleware

	// SlowRequest is the access-log warn threshold.
	SlowRequest time.Duration
}

// NewRouter wires the middleware stack and every endpoint.
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	mw := NewChiMiddleware(cfg.Middleware)
	authn := cfg.Auth
	if authn == nil {
		authn = auth.NewMiddleware(auth.ModeNone, nil)
	}
	h.access = authn

	r := chi.NewRouter()

	// Global middleware, applied in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(mw.CORS())
	r.Use(middleware.AccessLog(cfg.SlowRequest))
	r.Use(middleware.Compression)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusNotFound, &APIError{Code: CodeNotFound, Message: "Route not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, r, http.StatusMethodNotAllowed, &APIError{Code: "METHOD_NOT_ALLOWED", Message: "Method not allowed"})
	})

	r.Handle("/metrics", promhttp.Handler())

	// Health stays reachable without a token and outside the rate limit.
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(middleware.PrometheusMetrics)
		r.Get("/", h.Health)
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mw.RateLimit())
		r.Use(middleware.PrometheusMetrics)
		r.Use(authn.Authenticate)

		r.Route("/bottles", func(r chi.Router) {
			r.Get("/", h.ListBottles)
			r.Get("/facets", h.BottleFacets)
			r.Get("/{bottleID}", h.GetBottle)
		})

		r.Post("/recommendations", h.Recommend)

		r.Route("/users/{username}", func(r chi.Router) {
			r.Use(authn.RequireUser("username"))

			r.Get("/bar", h.GetBar)
			r.Put("/bar", h.PutBar)
			r.Delete("/bar", h.DeleteBar)
			r.Post("/bar/sync", h.SyncBar)
			r.Get("/analysis", h.Analysis)
			r.Get("/recommendations/history", h.RecommendationHistory)
		})
	})

	return r
}
