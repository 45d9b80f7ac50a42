// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/barkeep/internal/cache"
	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/metrics"
)

// analysisKey identifies one analysis result. A bar update or a catalog
// refresh changes the key.
type analysisKey struct {
	Username       string    `json:"u"`
	BarUpdatedAt   time.Time `json:"b"`
	CatalogVersion uint64    `json:"c"`
}

// Analysis summarises the user's stored bar against the current catalog.
func (h *Handler) Analysis(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	bar, err := h.store.GetBar(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	snap := h.catalog.Current()
	if snap == nil {
		metrics.RecordAnalysis(catalog.ErrNotLoaded)
		respondServiceError(w, r, catalog.ErrNotLoaded)
		return
	}

	key := cache.GenerateKey("analysis", analysisKey{
		Username:       username,
		BarUpdatedAt:   bar.UpdatedAt,
		CatalogVersion: snap.Version,
	})
	summary, hit := h.analyses.Get(key)
	metrics.RecordAnalysisCache(hit)
	if !hit {
		summary = h.engine.Analyze(r.Context(), nil, bar.Bottles, snap.Catalog)
		h.analyses.Set(key, summary)
	}

	metrics.RecordAnalysis(nil)
	respondData(w, r, http.StatusOK, summary)
}
