// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"math"
)

// Scorer computes the fit of candidate bottles against one profile. It is
// built once per call and holds no mutable state.
type Scorer struct {
	weights    ScoreWeights
	cfg        ScoringConfig
	profile    *Profile
	flavor     FlavorVector
	raritySpan float64
}

// NewScorer prepares a scorer for profile against catalog. Emphasized
// dimensions are boosted in the profile flavor vector before similarity.
func NewScorer(profile *Profile, catalog *Catalog, cfg *Config, emphasize []FlavorDimension) *Scorer {
	if profile == nil {
		profile = &Profile{}
	}
	return &Scorer{
		weights:    cfg.Weights.Normalize(),
		cfg:        cfg.Scoring,
		profile:    profile,
		flavor:     emphasizedFlavor(profile.Flavor, emphasize, cfg.Scoring.EmphasisBoost),
		raritySpan: catalog.RaritySpan(),
	}
}

// emphasizedFlavor adds boost to each emphasized dimension and renormalizes.
func emphasizedFlavor(base FlavorVector, emphasize []FlavorDimension, boost float64) FlavorVector {
	if len(emphasize) == 0 || boost <= 0 {
		return base
	}
	v := base
	for _, d := range emphasize {
		if d.Valid() {
			v[d] += boost
		}
	}
	return v.Normalized()
}

// Score returns the weighted total in [0, 1] and its breakdown.
func (s *Scorer) Score(b *Bottle) (float64, Breakdown) {
	var bd Breakdown

	bd.Flavor, bd.FlavorNeutral = s.flavorFit(b)
	bd.Affinity, bd.Kind = s.affinity(b)
	bd.Price, bd.PriceNeutral = s.priceFit(b)
	bd.Age, bd.AgeNeutral = s.ageFit(b)
	bd.Rarity, bd.RarityNeutral = s.rarityFit(b)

	total := s.weights.Flavor*bd.Flavor +
		s.weights.Affinity*bd.Affinity +
		s.weights.Price*bd.Price +
		s.weights.Age*bd.Age +
		s.weights.Rarity*bd.Rarity

	return clamp(total, 0, 1), bd
}

// flavorFit rescales the cosine similarity from [-1, 1] to [0, 1].
func (s *Scorer) flavorFit(b *Bottle) (float64, bool) {
	if s.flavor.IsZero() {
		return s.cfg.FlavorFloor, true
	}
	return clamp((s.flavor.Cosine(b.Flavor)+1)/2, 0, 1), false
}

// affinity uses the stronger of the region and distillery frequencies. An
// unseen region and distillery gets the exploration floor.
func (s *Scorer) affinity(b *Bottle) (float64, AffinityKind) {
	if s.profile.IsEmpty() {
		return s.cfg.AffinityFloor, AffinityComplement
	}
	rf := s.profile.Regions[b.Region]
	df := s.profile.Distilleries[b.Distillery]
	switch {
	case rf == 0 && df == 0:
		return s.cfg.AffinityFloor, AffinityComplement
	case df > rf:
		return clamp(df, 0, 1), AffinityDistillery
	default:
		return clamp(rf, 0, 1), AffinityRegion
	}
}

// priceFit is 1 minus the price distance relative to the typical price.
func (s *Scorer) priceFit(b *Bottle) (float64, bool) {
	p := s.profile.Price
	if p.Samples == 0 {
		return s.cfg.Neutral, true
	}
	scale := math.Max(p.Typical, s.cfg.MinPriceScale)
	return clamp(1-math.Abs(b.Price-p.Typical)/scale, 0, 1), false
}

// ageFit is 1 minus the age distance relative to MaxAgeDifference.
func (s *Scorer) ageFit(b *Bottle) (float64, bool) {
	if b.Age == nil || s.profile.Age.Samples == 0 {
		return s.cfg.Neutral, true
	}
	diff := math.Abs(float64(*b.Age) - s.profile.Age.Mean)
	return clamp(1-diff/s.cfg.MaxAgeDifference, 0, 1), false
}

// rarityFit rewards candidates up to RarityStretch rarer than the appetite
// and decays faster beyond it.
func (s *Scorer) rarityFit(b *Bottle) (float64, bool) {
	if s.profile.Rarity.Samples == 0 {
		return s.cfg.Neutral, true
	}
	d := (b.Rarity - s.profile.Rarity.Mean) / s.raritySpan
	switch {
	case d <= 0:
		return clamp(1+d, 0, 1), false
	case d <= s.cfg.RarityStretch:
		return 1, false
	default:
		return clamp(1-(d-s.cfg.RarityStretch)*s.cfg.RarityFarPenalty, 0, 1), false
	}
}
