// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"sort"
)

// candidate is a scored bottle moving through ranking.
type candidate struct {
	bottle    Bottle
	score     float64
	breakdown Breakdown
}

// scoreAll scores every bottle with s.
func scoreAll(s *Scorer, bottles []Bottle) []candidate {
	out := make([]candidate, len(bottles))
	for i := range bottles {
		score, bd := s.Score(&bottles[i])
		out[i] = candidate{bottle: bottles[i], score: score, breakdown: bd}
	}
	return out
}

// rankCandidates sorts by score descending, then rarity ascending, price
// ascending and id ascending. The order is total, so the result does not
// depend on the input order.
func rankCandidates(cs []candidate) {
	sort.Slice(cs, func(i, j int) bool {
		return rankedBefore(&cs[i], &cs[j])
	})
}

func rankedBefore(a, b *candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.bottle.Rarity != b.bottle.Rarity {
		return a.bottle.Rarity < b.bottle.Rarity
	}
	if a.bottle.Price != b.bottle.Price {
		return a.bottle.Price < b.bottle.Price
	}
	return a.bottle.ID < b.bottle.ID
}
