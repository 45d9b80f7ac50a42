// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/barclient"
	"github.com/tomtom215/barkeep/internal/cache"
	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
)

// CatalogProvider exposes the current catalog snapshot.
type CatalogProvider interface {
	Catalog() (*recommend.Catalog, error)
	Current() *catalog.Snapshot
}

// BarStore persists bars and recommendation history.
type BarStore interface {
	GetBar(ctx context.Context, username string) (*store.Bar, error)
	PutBar(ctx context.Context, bar *store.Bar) error
	DeleteBar(ctx context.Context, username string) error
	AppendHistory(ctx context.Context, username, mode, requestID string, recs []recommend.Recommendation) ([]store.HistoryEntry, error)
	History(ctx context.Context, username string, limit int) ([]store.HistoryEntry, error)
}

// BarFetcher pulls a user's bar from the upstream bar API.
type BarFetcher interface {
	FetchBar(ctx context.Context, username string) (*barclient.UserBar, error)
}

// AccessChecker decides whether the caller of r may act on owner's data.
// *auth.Middleware implements it.
type AccessChecker interface {
	Authorize(r *http.Request, owner string) (bool, error)
}

// Limits bounds request parameters.
type Limits struct {
	// DefaultK applies when a recommendation request omits k.
	DefaultK int
	// MaxK is the largest k accepted.
	MaxK int
	// DefaultPage and MaxPage bound bottle listings and history.
	DefaultPage int
	MaxPage     int
}

// DefaultLimits returns conservative defaults.
func DefaultLimits() Limits {
	return Limits{DefaultK: 5, MaxK: 50, DefaultPage: 50, MaxPage: 500}
}

const (
	analysisCacheSize = 256
	analysisCacheTTL  = 10 * time.Minute
)

// Handler serves the API endpoints.
type Handler struct {
	catalog  CatalogProvider
	store    BarStore
	engine   *recommend.Engine
	bars     BarFetcher
	limits   Limits
	analyses *cache.Cache[*recommend.AnalysisSummary]
	access   AccessChecker

	// ratingScale is the highest accepted bottle rating.
	ratingScale float64
}

// NewHandler creates a handler. bars may be nil when bar sync is disabled.
func NewHandler(cat CatalogProvider, st BarStore, engine *recommend.Engine, bars BarFetcher, limits Limits) *Handler {
	defaults := DefaultLimits()
	if limits.DefaultK <= 0 {
		limits.DefaultK = defaults.DefaultK
	}
	if limits.MaxK <= 0 {
		limits.MaxK = defaults.MaxK
	}
	if limits.DefaultPage <= 0 {
		limits.DefaultPage = defaults.DefaultPage
	}
	if limits.MaxPage <= 0 {
		limits.MaxPage = defaults.MaxPage
	}

	return &Handler{
		catalog:  cat,
		store:    st,
		engine:   engine,
		bars:     bars,
		limits:   limits,
		analyses: cache.New[*recommend.AnalysisSummary](analysisCacheSize, analysisCacheTTL),
		access:   auth.NewMiddleware(auth.ModeNone, nil),

		ratingScale: engine.Config().Profile.RatingScale,
	}
}

// loadBar returns the stored bar, or an empty one when the user has none.
func (h *Handler) loadBar(ctx context.Context, username string) (*store.Bar, error) {
	bar, err := h.store.GetBar(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return &store.Bar{
			Username: username,
			Bottles:  []recommend.OwnedEntry{},
			Wishlist: []string{},
		}, nil
	}
	return bar, err
}
