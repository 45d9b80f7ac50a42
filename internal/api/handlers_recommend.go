// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
)

// Recommendation modes, used in metrics and history.
const (
	ModePersonal = "personal"
	ModeStarter  = "starter"
)

// RecommendationRequest is the body of POST /api/v1/recommendations.
type RecommendationRequest struct {
	Username string `json:"username" validate:"required,slug"`

	// K defaults to the configured DefaultK.
	K *int `json:"k,omitempty" validate:"omitempty,gte=1"`

	// Exclude skips further bottle ids on top of owned and wishlist ones.
	Exclude []string `json:"exclude,omitempty" validate:"max=1000,dive,required,max=128"`

	// Emphasize upweights flavor dimensions by name.
	Emphasize []recommend.FlavorDimension `json:"emphasize,omitempty" validate:"max=8"`

	// FillGaps adds the bar's gap dimensions to Emphasize.
	FillGaps bool `json:"fill_gaps,omitempty"`

	// Starter ignores the stored bar's profile. Owned bottles are still
	// skipped.
	Starter bool `json:"starter,omitempty"`
}

// RecommendationResponse is the data of a recommendation response.
type RecommendationResponse struct {
	Username        string                      `json:"username"`
	Mode            string                      `json:"mode"`
	Emphasized      []recommend.FlavorDimension `json:"emphasized"`
	Recommendations []recommend.Recommendation  `json:"recommendations"`
}

// Recommend ranks catalog bottles for the user's stored bar. A user
// without a bar, or an empty one, gets starter recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	var req RecommendationRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	allowed, err := h.access.Authorize(r, req.Username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if !allowed {
		respondError(w, r, http.StatusForbidden, &APIError{
			Code:    CodeForbidden,
			Message: "access to another user's data is not allowed",
		})
		return
	}

	k := h.limits.DefaultK
	if req.K != nil {
		k = *req.K
	}
	if k > h.limits.MaxK {
		badRequest(w, r, "k must be at most %d", h.limits.MaxK)
		return
	}

	start := time.Now()
	resp, err := h.recommend(r.Context(), &req, k)
	metrics.RecordRecommendation(resp.Mode, len(resp.Recommendations), time.Since(start), err)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	requestID := logging.RequestIDFromContext(r.Context())
	if _, err := h.store.AppendHistory(r.Context(), req.Username, resp.Mode, requestID, resp.Recommendations); err != nil {
		logging.Ctx(r.Context()).Warn().Err(err).Str("bar_user", req.Username).Msg("failed to record recommendation history")
	}

	respondData(w, r, http.StatusOK, resp)
}

func (h *Handler) recommend(ctx context.Context, req *RecommendationRequest, k int) (RecommendationResponse, error) {
	resp := RecommendationResponse{
		Username:        req.Username,
		Mode:            ModePersonal,
		Emphasized:      []recommend.FlavorDimension{},
		Recommendations: []recommend.Recommendation{},
	}

	cat, err := h.catalog.Catalog()
	if err != nil {
		return resp, err
	}
	bar, err := h.loadBar(ctx, req.Username)
	if err != nil {
		return resp, err
	}

	exclude := bar.WishlistIDs()
	for _, id := range req.Exclude {
		exclude[id] = struct{}{}
	}

	engineReq := recommend.Request{
		Catalog: cat,
		Owned:   recommend.OwnedIDs(bar.Bottles),
		Exclude: exclude,
		K:       k,
	}

	starter := req.Starter || len(bar.Bottles) == 0
	if starter {
		resp.Mode = ModeStarter
	} else {
		engineReq.Profile = h.engine.BuildProfile(ctx, bar.Bottles, cat)
	}

	emphasize := req.Emphasize
	if req.FillGaps && engineReq.Profile != nil {
		summary := h.engine.Analyze(ctx, engineReq.Profile, bar.Bottles, cat)
		emphasize = append(append([]recommend.FlavorDimension{}, emphasize...), summary.Gaps...)
	}
	engineReq.Emphasize = uniqueDimensions(emphasize)
	resp.Emphasized = engineReq.Emphasize

	var recs []recommend.Recommendation
	if starter {
		recs, err = h.engine.Starter(ctx, engineReq)
	} else {
		recs, err = h.engine.Recommend(ctx, engineReq)
	}
	if err != nil {
		return resp, err
	}
	resp.Recommendations = recs
	return resp, nil
}

func uniqueDimensions(dims []recommend.FlavorDimension) []recommend.FlavorDimension {
	out := make([]recommend.FlavorDimension, 0, len(dims))
	seen := make(map[recommend.FlavorDimension]struct{}, len(dims))
	for _, d := range dims {
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
	}
	return out
}

// RecommendationHistory returns the user's past recommendations, newest
// first.
func (h *Handler) RecommendationHistory(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, r, "%v", err)
		return
	}
	n := h.limits.DefaultPage
	if limit != nil {
		n = *limit
	}
	if n < 1 || n > h.limits.MaxPage {
		badRequest(w, r, "limit must be between 1 and %d", h.limits.MaxPage)
		return
	}

	entries, err := h.store.History(r.Context(), username, n)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, historyResponse{Username: username, Entries: entries})
}

type historyResponse struct {
	Username string               `json:"username"`
	Entries  []store.HistoryEntry `json:"entries"`
}
