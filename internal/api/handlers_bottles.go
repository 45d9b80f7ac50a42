// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/barkeep/internal/catalog"
	"github.com/tomtom215/barkeep/internal/validation"
)

// BottleListRequest holds the query parameters of GET /api/v1/bottles.
type BottleListRequest struct {
	Region   string   `validate:"max=64"`
	Style    string   `validate:"max=64"`
	MinPrice *float64 `validate:"omitempty,gte=0"`
	MaxPrice *float64 `validate:"omitempty,gte=0"`
	MinAge   *int     `validate:"omitempty,gte=0,lte=100"`
	Limit    int      `validate:"gte=1"`
	Offset   int      `validate:"gte=0"`
}

func (h *Handler) parseBottleList(r *http.Request) (*BottleListRequest, error) {
	q := r.URL.Query()
	req := &BottleListRequest{
		Region: q.Get("region"),
		Style:  q.Get("style"),
		Limit:  h.limits.DefaultPage,
	}

	var err error
	if req.MinPrice, err = queryFloat(r, "min_price"); err != nil {
		return nil, err
	}
	if req.MaxPrice, err = queryFloat(r, "max_price"); err != nil {
		return nil, err
	}
	if req.MinAge, err = queryInt(r, "min_age"); err != nil {
		return nil, err
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		return nil, err
	}
	if limit != nil {
		req.Limit = *limit
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		return nil, err
	}
	if offset != nil {
		req.Offset = *offset
	}
	return req, nil
}

// ListBottles returns a filtered page of the catalog.
func (h *Handler) ListBottles(w http.ResponseWriter, r *http.Request) {
	req, err := h.parseBottleList(r)
	if err != nil {
		badRequest(w, r, "%v", err)
		return
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		respondValidation(w, r, verr)
		return
	}
	if req.Limit > h.limits.MaxPage {
		badRequest(w, r, "limit must be at most %d", h.limits.MaxPage)
		return
	}
	if req.MinPrice != nil && req.MaxPrice != nil && *req.MinPrice > *req.MaxPrice {
		badRequest(w, r, "min_price must not exceed max_price")
		return
	}

	cat, err := h.catalog.Catalog()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	page := catalog.Query(cat, catalog.Criteria{
		Region:   req.Region,
		Style:    req.Style,
		MinPrice: req.MinPrice,
		MaxPrice: req.MaxPrice,
		MinAge:   req.MinAge,
		Limit:    req.Limit,
		Offset:   req.Offset,
	})
	respondData(w, r, http.StatusOK, page)
}

// GetBottle returns one bottle by id.
func (h *Handler) GetBottle(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.Catalog()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	id := chi.URLParam(r, "bottleID")
	bottle, ok := cat.Lookup(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, &APIError{
			Code:    CodeNotFound,
			Message: "Bottle not found",
			Details: map[string]any{"bottle_id": id},
		})
		return
	}
	respondData(w, r, http.StatusOK, bottle)
}

// BottleFacets returns the distinct regions and styles and the price range.
func (h *Handler) BottleFacets(w http.ResponseWriter, r *http.Request) {
	cat, err := h.catalog.Catalog()
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	respondData(w, r, http.StatusOK, catalog.FacetsOf(cat))
}
