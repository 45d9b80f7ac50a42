// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package middleware holds the HTTP middleware shared by the API router.
//
// Each middleware has the func(http.Handler) http.Handler shape so it can
// be passed straight to chi's Use:
//
//	r.Use(middleware.RequestID)
//	r.Use(middleware.AccessLog(time.Second))
//	r.Use(middleware.PrometheusMetrics)
//	r.Use(middleware.Compression)
//
// RequestID must run first so later middleware and handlers log with the
// request id.
package middleware
