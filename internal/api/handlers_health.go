// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the body of GET /api/v1/health.
type HealthStatus struct {
	Status        string        `json:"status"`
	Catalog       CatalogHealth `json:"catalog"`
	BarSync       bool          `json:"bar_sync_enabled"`
	AnalysisCache CacheHealth   `json:"analysis_cache"`
	GeneratedAt   time.Time     `json:"generated_at"`
}

// CacheHealth reports analysis cache activity since startup.
type CacheHealth struct {
	Entries   int     `json:"entries"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate_percent"`
}

// CatalogHealth describes the loaded catalog snapshot.
type CatalogHealth struct {
	Loaded   bool       `json:"loaded"`
	Source   string     `json:"source,omitempty"`
	Bottles  int        `json:"bottles"`
	Version  uint64     `json:"version"`
	LoadedAt *time.Time `json:"loaded_at,omitempty"`
}

// Health reports overall status. It always answers 200; "degraded" means
// no catalog is loaded yet.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, h.healthStatus())
}

// HealthLive answers 200 while the process is serving.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondData(w, r, http.StatusOK, map[string]string{"status": "alive"})
}

// HealthReady answers 503 until a catalog snapshot is available.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := h.healthStatus()
	if !status.Catalog.Loaded {
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    CodeCatalogUnavailable,
			Message: "Catalog not loaded yet",
		})
		return
	}
	respondData(w, r, http.StatusOK, map[string]string{"status": "ready"})
}

func (h *Handler) healthStatus() HealthStatus {
	stats := h.analyses.Stats()
	status := HealthStatus{
		Status:  "healthy",
		BarSync: h.bars != nil,
		AnalysisCache: CacheHealth{
			Entries:   stats.Keys,
			Hits:      stats.Hits,
			Misses:    stats.Misses,
			Evictions: stats.Evictions,
			HitRate:   stats.HitRate(),
		},
		GeneratedAt: time.Now().UTC(),
	}

	snap := h.catalog.Current()
	if snap == nil {
		status.Status = "degraded"
		return status
	}
	loadedAt := snap.LoadedAt
	status.Catalog = CatalogHealth{
		Loaded:   true,
		Source:   snap.Source,
		Bottles:  snap.Catalog.Len(),
		Version:  snap.Version,
		LoadedAt: &loadedAt,
	}
	return status
}
