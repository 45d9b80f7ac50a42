// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package catalog

import (
	"strings"

	"github.com/tomtom215/barkeep/internal/recommend"
)

// Criteria filters a catalog listing. Zero values match everything; region
// and style compare case-insensitively.
type Criteria struct {
	Region   string
	Style    string
	MinPrice *float64
	MaxPrice *float64
	MinAge   *int

	// Limit caps the page size; zero returns every match.
	Limit  int
	Offset int
}

// Page is one slice of a filtered listing.
type Page struct {
	Bottles []recommend.Bottle `json:"bottles"`
	Total   int                `json:"total"`
	Limit   int                `json:"limit"`
	Offset  int                `json:"offset"`
}

// Facets describes the catalog for building filter controls.
type Facets struct {
	Bottles  int      `json:"bottles"`
	Regions  []string `json:"regions"`
	Styles   []string `json:"styles"`
	PriceMin float64  `json:"price_min"`
	PriceMax float64  `json:"price_max"`
}

// Matches reports whether b satisfies the criteria. Bottles without an age
// statement never satisfy MinAge.
func (c *Criteria) Matches(b *recommend.Bottle) bool {
	if c.Region != "" && !strings.EqualFold(b.Region, c.Region) {
		return false
	}
	if c.Style != "" && !strings.EqualFold(b.Style, c.Style) {
		return false
	}
	if c.MinPrice != nil && b.Price < *c.MinPrice {
		return false
	}
	if c.MaxPrice != nil && b.Price > *c.MaxPrice {
		return false
	}
	if c.MinAge != nil && (!b.HasAge() || *b.Age < *c.MinAge) {
		return false
	}
	return true
}

// Query returns the bottles matching c in catalog order.
func Query(cat *recommend.Catalog, c Criteria) Page {
	page := Page{Bottles: []recommend.Bottle{}, Limit: c.Limit, Offset: c.Offset}

	for _, b := range cat.Bottles() {
		if !c.Matches(&b) {
			continue
		}
		if page.Total >= c.Offset && (c.Limit <= 0 || len(page.Bottles) < c.Limit) {
			page.Bottles = append(page.Bottles, b)
		}
		page.Total++
	}
	return page
}

// FacetsOf summarises cat.
func FacetsOf(cat *recommend.Catalog) Facets {
	lowest, highest := cat.PriceRange()
	return Facets{
		Bottles:  cat.Len(),
		Regions:  cat.Regions(),
		Styles:   cat.Styles(),
		PriceMin: lowest,
		PriceMax: highest,
	}
}
