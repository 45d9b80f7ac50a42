// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

const (
	maxReasons = 2

	// strongFlavorFit is the flavor sub-score from which a candidate is said
	// to match the profile rather than broaden it.
	strongFlavorFit = 0.85

	// similarPriceFit is the price sub-score from which prices are "similar".
	similarPriceFit = 0.8

	// similarAgeYears is the age gap treated as "similar".
	similarAgeYears = 3

	// sharedFlavorWeight is the normalized weight both sides need for a
	// dimension to count as shared.
	sharedFlavorWeight = 0.15

	// novelFlavorMargin is how much a candidate dimension must exceed the
	// profile weight to count as new.
	novelFlavorMargin = 0.2

	fallbackReason = "Complements your current collection"
)

// subScore identifies one scorer dimension.
type subScore int

const (
	subFlavor subScore = iota
	subAffinity
	subPrice
	subAge
	subRarity
)

type contribution struct {
	dim   subScore
	value float64
}

// Explain renders reasons for bottle b from the breakdown that scored it.
// The two largest weighted contributions that rest on real data are
// rendered; neutral fallbacks are never claimed as reasons.
func (s *Scorer) Explain(b *Bottle, bd Breakdown) []string {
	if s.profile.IsEmpty() {
		return []string{fmt.Sprintf("Starts your collection with a pick from %s", b.Region)}
	}

	contributions := make([]contribution, 0, 5)
	add := func(dim subScore, weight, value float64, neutral bool) {
		if neutral || value <= 0 || weight <= 0 {
			return
		}
		contributions = append(contributions, contribution{dim: dim, value: weight * value})
	}
	add(subFlavor, s.weights.Flavor, bd.Flavor, bd.FlavorNeutral)
	add(subAffinity, s.weights.Affinity, bd.Affinity, false)
	add(subPrice, s.weights.Price, bd.Price, bd.PriceNeutral)
	add(subAge, s.weights.Age, bd.Age, bd.AgeNeutral)
	add(subRarity, s.weights.Rarity, bd.Rarity, bd.RarityNeutral)

	sort.SliceStable(contributions, func(i, j int) bool {
		return contributions[i].value > contributions[j].value
	})
	if len(contributions) > maxReasons {
		contributions = contributions[:maxReasons]
	}

	reasons := make([]string, 0, len(contributions))
	for _, c := range contributions {
		reasons = append(reasons, s.render(c.dim, b, bd))
	}
	if len(reasons) == 0 {
		reasons = append(reasons, fallbackReason)
	}
	return reasons
}

// render produces the reason string for one sub-score.
func (s *Scorer) render(dim subScore, b *Bottle, bd Breakdown) string {
	switch dim {
	case subFlavor:
		return s.flavorReason(b, bd.Flavor)
	case subAffinity:
		return affinityReason(b, bd.Kind)
	case subPrice:
		return s.priceReason(b, bd.Price)
	case subAge:
		return s.ageReason(b)
	case subRarity:
		return s.rarityReason(b)
	default:
		return fallbackReason
	}
}

func (s *Scorer) flavorReason(b *Bottle, fit float64) string {
	cand := b.Flavor.Normalized()
	if fit >= strongFlavorFit {
		var shared []string
		for _, d := range cand.Dominant(3) {
			if cand[d] >= sharedFlavorWeight && s.flavor[d] >= sharedFlavorWeight {
				shared = append(shared, d.String())
			}
		}
		if len(shared) == 0 {
			return "Matches your flavor profile"
		}
		return fmt.Sprintf("Matches your flavor profile with %s notes", joinWords(shared))
	}

	var novel []string
	for _, d := range cand.Dominant(NumFlavorDimensions) {
		if cand[d]-s.flavor[d] >= novelFlavorMargin {
			novel = append(novel, d.String())
		}
		if len(novel) == 2 {
			break
		}
	}
	if len(novel) == 0 {
		top := cand.Dominant(1)
		if len(top) == 0 {
			return fallbackReason
		}
		novel = []string{top[0].String()}
	}
	return fmt.Sprintf("Broadens your palate with %s notes", joinWords(novel))
}

func affinityReason(b *Bottle, kind AffinityKind) string {
	switch kind {
	case AffinityRegion:
		return fmt.Sprintf("Matches your preference for %s whiskies", b.Region)
	case AffinityDistillery:
		return fmt.Sprintf("From %s, a distillery already in your bar", b.Distillery)
	default:
		return fmt.Sprintf("Diversifies your collection with a bottle from %s", b.Region)
	}
}

func (s *Scorer) priceReason(b *Bottle, fit float64) string {
	switch {
	case fit >= similarPriceFit:
		return "Similar price point to your collection"
	case b.Price < s.profile.Price.Typical:
		return "Great value compared to your collection"
	default:
		return "Premium option above your usual price"
	}
}

func (s *Scorer) ageReason(b *Bottle) string {
	age := *b.Age
	diff := float64(age) - s.profile.Age.Mean
	switch {
	case math.Abs(diff) <= similarAgeYears:
		return fmt.Sprintf("Age statement of %d years, similar to your collection", age)
	case diff > 0:
		return fmt.Sprintf("More mature expression at %d years", age)
	default:
		return fmt.Sprintf("Younger expression at %d years", age)
	}
}

func (s *Scorer) rarityReason(b *Bottle) string {
	d := (b.Rarity - s.profile.Rarity.Mean) / s.raritySpan
	switch {
	case d > s.cfg.RarityStretch:
		return "A rare find well beyond your usual bottles"
	case d > 0.05:
		return "A step up in rarity from your collection"
	case d < -0.05:
		return "Easier to find than most of your bar"
	default:
		return "Rarity in line with your collection"
	}
}

// joinWords joins words as "a", "a and b" or "a, b and c".
func joinWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	default:
		return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
	}
}
