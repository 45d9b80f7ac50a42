// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/barkeep/internal/api"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
	"github.com/tomtom215/barkeep/internal/supervisor"
	"github.com/tomtom215/barkeep/internal/supervisor/services"
)

func main() {
	issueFor := flag.String("issue-token", "", "Print a JWT for this username and exit")
	role := flag.String("role", "user", "Role for -issue-token: user or admin")
	ttl := flag.Duration("ttl", 24*time.Hour, "Lifetime for -issue-token")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Caller = cfg.Logging.Caller
	logging.Init(logCfg)

	if *issueFor != "" {
		token, err := issueToken(&cfg.Security, *issueFor, *role, *ttl)
		if err != nil {
			logging.Fatal().Err(err).Msg("Failed to issue token")
		}
		fmt.Println(token)
		return
	}

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server stopped with error")
	}
}

func run(cfg *config.Config) error {
	logging.Info().
		Str("catalog_source", cfg.Catalog.Source).
		Str("store_path", cfg.Store.Path).
		Str("auth_mode", cfg.Security.AuthMode).
		Bool("bar_api", cfg.BarAPI.Enabled).
		Msg("Starting Barkeep")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := newCatalogSource(ctx, &cfg.Catalog)
	if err != nil {
		return fmt.Errorf("catalog source: %w", err)
	}
	defer closeSource()

	catalogStore, err := loadCatalog(ctx, source, &cfg.Catalog)
	if err != nil {
		return err
	}

	st, err := store.Open(store.Options{
		Path:         cfg.Store.Path,
		InMemory:     cfg.Store.InMemory,
		HistoryLimit: cfg.Store.HistoryLimit,
	}, logging.Component("store"))
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() {
		if err := st.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing store")
		}
	}()

	engine, err := recommend.NewEngine(cfg.Recommend.EngineConfig(), logging.Component("recommend"))
	if err != nil {
		return fmt.Errorf("recommend engine: %w", err)
	}

	authMiddleware, err := newAuthMiddleware(&cfg.Security)
	if err != nil {
		return err
	}
	warnInsecureSettings(cfg)

	handler := api.NewHandler(catalogStore, st, engine, newBarFetcher(&cfg.BarAPI), api.Limits{
		DefaultK:    cfg.Recommend.DefaultK,
		MaxK:        cfg.Recommend.MaxK,
		DefaultPage: 50,
		MaxPage:     500,
	})
	router := api.NewRouter(handler, api.RouterConfig{
		Middleware: &api.ChiMiddlewareConfig{
			CORSAllowedOrigins: cfg.Security.CORSOrigins,
			CORSMaxAge:         86400,
			RateLimitRequests:  cfg.Security.RateLimitReqs,
			RateLimitWindow:    cfg.Security.RateLimitWindow,
			RateLimitDisabled:  cfg.Security.RateLimitDisabled,
		},
		Auth:        authMiddleware,
		SlowRequest: cfg.Server.SlowRequest,
	})

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       2 * cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logging.NewSlogLogger(logging.Component("supervisor")), supervisor.DefaultTreeConfig())
	tree.AddDataService(services.NewCatalogService(catalogStore, services.CatalogServiceConfig{
		Interval:       cfg.Catalog.RefreshInterval,
		RefreshOnStart: catalogStore.Current() == nil,
	}, logging.Component("catalog")))
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	logging.Info().Msg("Starting supervisor tree...")
	errCh := tree.ServeBackground(ctx)

	var serveErr error
	select {
	case <-ctx.Done():
		logging.Info().Msg("Shutdown signal received, stopping services")
		serveErr = <-errCh
	case serveErr = <-errCh:
	}
	if serveErr != nil && !errors.Is(serveErr, context.Canceled) {
		logging.Error().Err(serveErr).Msg("Supervisor tree error")
	}

	if unstopped, err := tree.UnstoppedServiceReport(); err == nil && len(unstopped) > 0 {
		for _, svc := range unstopped {
			logging.Warn().Str("service", svc.Name).Msg("Service did not stop in time")
		}
	}

	logging.Info().Msg("Barkeep stopped")
	return nil
}
