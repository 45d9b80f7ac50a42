// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package logging is the zerolog setup shared by every Barkeep component.
//
// A single global logger is configured once from main via Init. Components
// derive their own child logger with Component and pass it down by value:
//
//	logging.Init(logging.Config{Level: "debug", Format: "console"})
//	log := logging.Component("catalog")
//	log.Info().Int("bottles", n).Msg("catalog loaded")
//
// Request-scoped code logs through Ctx, which attaches the request id set by
// the HTTP middleware:
//
//	logging.Ctx(r.Context()).Warn().Str("username", u).Msg("bar sync failed")
//
// # Configuration
//
// The logging section of the application config maps onto Config:
//
//	logging:
//	  level: info      # trace, debug, info, warn, error
//	  format: json     # json or console
//	  caller: false
//
// # slog Bridge
//
// The supervisor library logs through log/slog. NewSlogLogger returns an
// slog.Logger whose records end up in zerolog, so service restarts and
// panics appear in the same stream as everything else.
package logging
