// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/barkeep/internal/api"
	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/authz"
	"github.com/tomtom215/barkeep/internal/barclient"
	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/logging"
)

// initialLoadTimeout bounds the catalog load before the server starts.
const initialLoadTimeout = 2 * time.Minute

// newCatalogSource builds the configured source. The returned func
// releases it and is never nil.
func newCatalogSource(ctx context.Context, cfg *config.CatalogConfig) (catalog.Source, func(), error) {
	switch cfg.Source {
	case "duckdb":
		src, err := catalog.NewDuckDBSource(ctx, cfg.DuckDBPath, cfg.DuckDBTable, cfg.DuckDBInit)
		if err != nil {
			return nil, func() {}, err
		}
		logging.Info().
			Str("path", cfg.DuckDBPath).
			Str("table", cfg.DuckDBTable).
			Msg("DuckDB catalog source opened")
		return src, func() {
			if err := src.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing DuckDB catalog")
			}
		}, nil
	default:
		return catalog.NewFileSource(cfg.Path), func() {}, nil
	}
}

// loadCatalog performs the first catalog load. With periodic refresh
// configured a failure is only logged: the API answers 503 until the
// refresh service succeeds.
func loadCatalog(ctx context.Context, source catalog.Source, cfg *config.CatalogConfig) (*catalog.Store, error) {
	st := catalog.NewStore(source, logging.Component("catalog"))

	loadCtx, cancel := context.WithTimeout(ctx, initialLoadTimeout)
	defer cancel()

	if err := st.Refresh(loadCtx); err != nil {
		if cfg.RefreshInterval <= 0 {
			return nil, fmt.Errorf("initial catalog load: %w", err)
		}
		logging.Warn().Err(err).
			Dur("retry_in", cfg.RefreshInterval).
			Msg("Initial catalog load failed, serving without a catalog until refresh succeeds")
		return st, nil
	}

	snap := st.Current()
	logging.Info().
		Str("source", snap.Source).
		Int("bottles", snap.Catalog.Len()).
		Msg("Catalog loaded")
	return st, nil
}

// newBarFetcher returns nil when bar sync is disabled.
func newBarFetcher(cfg *config.BarAPIConfig) api.BarFetcher {
	if !cfg.Enabled {
		logging.Info().Msg("Bar API sync disabled")
		return nil
	}

	logging.Info().Str("base_url", cfg.BaseURL).Float64("rate_limit", cfg.RateLimit).Msg("Bar API sync enabled")
	return barclient.New(barclient.Config{
		BaseURL:   cfg.BaseURL,
		APIKey:    cfg.APIKey,
		Timeout:   cfg.Timeout,
		RateLimit: cfg.RateLimit,
		Burst:     cfg.Burst,
	}, logging.Component("barclient"))
}

func newAuthMiddleware(cfg *config.SecurityConfig) (*auth.Middleware, error) {
	if cfg.AuthMode != auth.ModeJWT {
		return auth.NewMiddleware(auth.ModeNone, nil), nil
	}

	manager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return nil, fmt.Errorf("jwt manager: %w", err)
	}
	enforcer, err := authz.NewEnforcer(cfg.PolicyPath, logging.Component("authz"))
	if err != nil {
		return nil, fmt.Errorf("authorization policy: %w", err)
	}
	logging.Info().Str("issuer", cfg.JWTIssuer).Msg("JWT authentication enabled")
	return auth.NewMiddleware(auth.ModeJWT, manager).WithAuthorizer(enforcer), nil
}

func warnInsecureSettings(cfg *config.Config) {
	if cfg.Security.AuthMode == auth.ModeNone {
		logging.Warn().Msg("============================================================")
		logging.Warn().Msg("  SECURITY WARNING: Authentication is DISABLED (AUTH_MODE=none)")
		logging.Warn().Msg("  Any caller can read and replace any user's bar.")
		logging.Warn().Msg("  Use AUTH_MODE=jwt outside local development.")
		logging.Warn().Msg("============================================================")
	}
	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	for _, origin := range cfg.Security.CORSOrigins {
		if origin == "*" && cfg.Security.AuthMode == auth.ModeJWT {
			logging.Warn().Msg("CORS allows any origin while JWT auth is enabled; set CORS_ORIGINS explicitly")
			break
		}
	}
}
