// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package middleware

import (
	"net/http"
	"time"

	"github.com/tomtom215/barkeep/internal/logging"
)

// AccessLog logs one line per request at debug level, raised to warn for
// server errors and for requests slower than slow. A zero slow disables
// the slow request warning.
func AccessLog(slow time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := newStatusRecorder(w)
			next.ServeHTTP(rec, r)
			elapsed := time.Since(start)

			l := logging.Ctx(r.Context())
			event := l.Debug()
			msg := "request served"
			switch {
			case rec.status >= http.StatusInternalServerError:
				event = l.Warn()
				msg = "request failed"
			case slow > 0 && elapsed > slow:
				event = l.Warn()
				msg = "slow request"
			}

			event.
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Str("route", routePattern(r)).
				Int("status", rec.status).
				Int("bytes", rec.bytes).
				Dur("duration", elapsed).
				Msg(msg)
		})
	}
}
