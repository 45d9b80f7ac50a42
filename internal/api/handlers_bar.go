// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/barkeep/internal/logging"
	"github.com/tomtom215/barkeep/internal/recommend"
	"github.com/tomtom215/barkeep/internal/store"
	"github.com/tomtom215/barkeep/internal/validation"
)

// BarEntryRequest is one owned bottle in a bar update.
type BarEntryRequest struct {
	BottleID string   `json:"bottle_id" validate:"required,max=128"`
	Rating   *float64 `json:"rating,omitempty" validate:"omitempty,gte=0"`
}

// BarRequest replaces a user's bar.
type BarRequest struct {
	Bottles  []BarEntryRequest `json:"bottles" validate:"max=5000,dive"`
	Wishlist []string          `json:"wishlist" validate:"max=5000,dive,required,max=128"`
}

func (req *BarRequest) entries() []recommend.OwnedEntry {
	out := make([]recommend.OwnedEntry, len(req.Bottles))
	for i, e := range req.Bottles {
		out[i] = recommend.OwnedEntry{BottleID: e.BottleID, Rating: e.Rating}
	}
	return out
}

// usernameParam reads and checks the {username} route parameter.
func usernameParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	username := chi.URLParam(r, "username")
	if !validation.IsSlug(username) {
		badRequest(w, r, "username must be 1-64 letters, digits, '.', '_' or '-'")
		return "", false
	}
	return username, true
}

// GetBar returns the stored bar.
func (h *Handler) GetBar(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	bar, err := h.store.GetBar(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, bar)
}

// PutBar replaces the bar and wishlist. Bottle ids unknown to the catalog
// are kept; the profile builder ignores them.
func (h *Handler) PutBar(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	var req BarRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	for i, e := range req.Bottles {
		if e.Rating != nil && *e.Rating > h.ratingScale {
			badRequest(w, r, "bottles[%d].rating must be between 0 and %g", i, h.ratingScale)
			return
		}
	}

	bar := &store.Bar{
		Username: username,
		Bottles:  req.entries(),
		Wishlist: req.Wishlist,
		Source:   store.BarSourceManual,
	}
	if err := h.store.PutBar(r.Context(), bar); err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("bar_user", username).
		Int("bottles", len(bar.Bottles)).
		Int("wishlist", len(bar.Wishlist)).
		Msg("bar updated")
	respondData(w, r, http.StatusOK, bar)
}

// DeleteBar removes the bar and its recommendation history.
func (h *Handler) DeleteBar(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}

	if err := h.store.DeleteBar(r.Context(), username); err != nil {
		respondServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SyncBar pulls the user's bar from the bar API and stores it.
func (h *Handler) SyncBar(w http.ResponseWriter, r *http.Request) {
	username, ok := usernameParam(w, r)
	if !ok {
		return
	}
	if h.bars == nil {
		respondError(w, r, http.StatusServiceUnavailable, &APIError{
			Code:    CodeUpstreamUnavailable,
			Message: "Bar sync is not enabled",
		})
		return
	}

	upstream, err := h.bars.FetchBar(r.Context(), username)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	bar := &store.Bar{
		Username: username,
		Bottles:  upstream.Bottles,
		Wishlist: upstream.Wishlist,
		Source:   store.BarSourceSync,
	}
	if err := h.store.PutBar(r.Context(), bar); err != nil {
		respondServiceError(w, r, err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Str("bar_user", username).
		Int("bottles", len(bar.Bottles)).
		Int("wishlist", len(bar.Wishlist)).
		Msg("bar synced from bar API")
	respondData(w, r, http.StatusOK, bar)
}
