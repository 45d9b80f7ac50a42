// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// CatalogRefresher reloads the catalog. Implemented by *catalog.Store.
type CatalogRefresher interface {
	Refresh(ctx context.Context) error
}

// CatalogServiceConfig configures the refresh loop.
type CatalogServiceConfig struct {
	// Interval between refreshes. Zero disables periodic refresh; the
	// service then idles until shutdown.
	Interval time.Duration

	// RefreshOnStart reloads immediately when the service starts.
	RefreshOnStart bool

	// Timeout bounds a single refresh.
	Timeout time.Duration
}

// CatalogService periodically refreshes the catalog. Refresh failures are
// logged and retried on the next tick; the previous snapshot stays live.
type CatalogService struct {
	refresher CatalogRefresher
	config    CatalogServiceConfig
	logger    zerolog.Logger
}

// NewCatalogService creates the service.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCatalogService(refresher CatalogRefresher, cfg CatalogServiceConfig, logger zerolog.Logger) *CatalogService {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 2 * time.Minute
	}
	return &CatalogService{
		refresher: refresher,
		config:    cfg,
		logger:    logger.With().Str("service", "catalog-refresh").Logger(),
	}
}

// Serve implements suture.Service.
func (s *CatalogService) Serve(ctx context.Context) error {
	s.logger.Info().
		Bool("refresh_on_start", s.config.RefreshOnStart).
		Dur("interval", s.config.Interval).
		Msg("catalog refresh service starting")

	if s.config.RefreshOnStart {
		s.refresh(ctx)
	}

	if s.config.Interval <= 0 {
		<-ctx.Done()
		return ctx.Err()
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("catalog refresh service shutting down")
			return ctx.Err()
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

func (s *CatalogService) refresh(ctx context.Context) {
	refreshCtx, cancel := context.WithTimeout(ctx, s.config.Timeout)
	defer cancel()

	if err := s.refresher.Refresh(refreshCtx); err != nil {
		s.logger.Warn().Err(err).Msg("catalog refresh failed, keeping previous snapshot")
	}
}

// String implements fmt.Stringer for suture logs.
func (s *CatalogService) String() string {
	return "catalog-refresh"
}
