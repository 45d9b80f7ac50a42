// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"sort"
)

// FilterCandidates returns the catalog bottles eligible for scoring, in
// catalog order. Excluded ids are always dropped. When the profile has at
// least MinPriceSamples prices, bottles above typical + K*spread are dropped
// too, unless that would leave fewer than MinCandidates; the ceiling is then
// raised to the smallest price admitting MinCandidates bottles.
func FilterCandidates(catalog *Catalog, profile *Profile, exclude map[string]struct{}, cfg FilterConfig) []Bottle {
	if catalog.Len() == 0 {
		return nil
	}

	unowned := make([]Bottle, 0, catalog.Len())
	for i := range catalog.bottles {
		if _, skip := exclude[catalog.bottles[i].ID]; skip {
			continue
		}
		unowned = append(unowned, catalog.bottles[i])
	}

	if profile.IsEmpty() || profile.Price.Samples < cfg.MinPriceSamples {
		return unowned
	}

	ceiling := priceCeiling(unowned, profile.Price, cfg)

	out := make([]Bottle, 0, len(unowned))
	for i := range unowned {
		if unowned[i].Price <= ceiling {
			out = append(out, unowned[i])
		}
	}
	return out
}

// priceCeiling returns the effective ceiling after relaxation.
func priceCeiling(unowned []Bottle, price PriceRange, cfg FilterConfig) float64 {
	ceiling := price.Typical + cfg.PriceSpreadK*price.Spread

	if cfg.MinCandidates <= 0 {
		return ceiling
	}
	if len(unowned) <= cfg.MinCandidates {
		// the floor can only be met by the whole unowned catalog
		return maxPrice(unowned)
	}

	prices := make([]float64, len(unowned))
	for i := range unowned {
		prices[i] = unowned[i].Price
	}
	sort.Float64s(prices)

	if floorPrice := prices[cfg.MinCandidates-1]; floorPrice > ceiling {
		return floorPrice
	}
	return ceiling
}

func maxPrice(bottles []Bottle) float64 {
	m := 0.0
	for i := range bottles {
		if bottles[i].Price > m {
			m = bottles[i].Price
		}
	}
	return m
}
