// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"fmt"
	"math"
)

// Config holds all tunables of the engine.
type Config struct {
	// Weights are the scorer sub-score weights.
	Weights ScoreWeights

	// Profile controls how owned entries are weighted.
	Profile ProfileConfig

	// Filter controls candidate pre-filtering.
	Filter FilterConfig

	// Scoring holds the floors and scales used by the sub-scores.
	Scoring ScoringConfig

	// Diversity controls the region re-ranking pass.
	Diversity DiversityConfig

	// Analyzer controls gap detection and summary sizes.
	Analyzer AnalyzerConfig
}

// ScoreWeights are the relative weights of the sub-scores. They are
// normalized to sum 1 before use.
type ScoreWeights struct {
	// Flavor weights the cosine flavor similarity. Default: 0.4.
	Flavor float64

	// Affinity weights the region/distillery affinity. Default: 0.2.
	Affinity float64

	// Price weights the price fit. Default: 0.2.
	Price float64

	// Age weights the age fit. Default: 0.1.
	Age float64

	// Rarity weights the rarity fit. Default: 0.1.
	Rarity float64
}

// Sum returns the total weight.
func (w ScoreWeights) Sum() float64 {
	return w.Flavor + w.Affinity + w.Price + w.Age + w.Rarity
}

// Normalize returns weights scaled to sum 1. Zero weights are returned unchanged.
func (w ScoreWeights) Normalize() ScoreWeights {
	s := w.Sum()
	if s <= 0 {
		return w
	}
	return ScoreWeights{
		Flavor:   w.Flavor / s,
		Affinity: w.Affinity / s,
		Price:    w.Price / s,
		Age:      w.Age / s,
		Rarity:   w.Rarity / s,
	}
}

// ProfileConfig controls entry weighting in the profile builder.
type ProfileConfig struct {
	// RatingScale is the top of the rating scale; weight = rating / RatingScale.
	// Default: 5.
	RatingScale float64

	// MinEntryWeight keeps a bottle rated 0 contributing to the profile.
	// Default: 0.1.
	MinEntryWeight float64
}

// FilterConfig controls the candidate filter.
type FilterConfig struct {
	// PriceSpreadK sets the price ceiling at typical + K * spread. Default: 2.
	PriceSpreadK float64

	// MinPriceSamples is the number of priced owned bottles required before
	// the ceiling applies. Default: 3.
	MinPriceSamples int

	// MinCandidates is the floor below which the ceiling is relaxed.
	// Default: 10.
	MinCandidates int
}

// ScoringConfig holds sub-score floors and scales.
type ScoringConfig struct {
	// FlavorFloor is the flavor sub-score used when the profile has no flavor
	// signal. Default: 0.5.
	FlavorFloor float64

	// AffinityFloor is the affinity sub-score for an unseen region and
	// distillery. Default: 0.1.
	AffinityFloor float64

	// Neutral is the sub-score used when price, age or rarity data is
	// missing. Default: 0.5.
	Neutral float64

	// MinPriceScale is the smallest divisor for price distance, guarding
	// profiles of free or near-free bottles. Default: 1.
	MinPriceScale float64

	// MaxAgeDifference is the age gap in years at which age fit reaches 0.
	// Default: 15.
	MaxAgeDifference float64

	// RarityStretch is how far above the rarity appetite (as a fraction of the
	// catalog rarity span) a candidate still scores a full rarity fit.
	// Default: 0.15.
	RarityStretch float64

	// RarityFarPenalty is the slope of the rarity fit beyond the stretch.
	// Default: 2.
	RarityFarPenalty float64

	// EmphasisBoost is added to each emphasized flavor dimension of the
	// profile before normalization. Default: 0.25.
	EmphasisBoost float64
}

// DiversityConfig controls the greedy region re-ranking pass.
type DiversityConfig struct {
	// Enabled toggles the pass. Default: true.
	Enabled bool

	// RegionCap is the maximum number of bottles from one region among the
	// selected results. Default: 2.
	RegionCap int

	// DistilleryCap limits bottles per distillery. 0 disables. Default: 0.
	DistilleryCap int

	// MinRetentionScore is the lowest score a candidate may have to be
	// promoted over a capped entry. Default: 0.
	MinRetentionScore float64

	// MaxRankDrop bounds how many places a capped entry may be pushed below
	// its original rank. 0 means unbounded. Default: 0.
	MaxRankDrop int
}

// AnalyzerConfig controls the collection analyzer.
type AnalyzerConfig struct {
	// GapProfileMax is the profile weight below which a dimension may be a gap.
	// Default: 0.05.
	GapProfileMax float64

	// GapCatalogMin is the catalog mean weight above which a dimension may be
	// a gap. Default: 0.08.
	GapCatalogMin float64

	// TopN is the number of regions, distilleries and styles listed.
	// Default: 3.
	TopN int

	// MaxCharacteristics bounds the characteristic labels. Default: 5.
	MaxCharacteristics int
}

// DefaultConfig returns the production defaults.
func DefaultConfig() *Config {
	return &Config{
		Weights: ScoreWeights{
			Flavor:   0.4,
			Affinity: 0.2,
			Price:    0.2,
			Age:      0.1,
			Rarity:   0.1,
		},
		Profile: ProfileConfig{
			RatingScale:    5,
			MinEntryWeight: 0.1,
		},
		Filter: FilterConfig{
			PriceSpreadK:    2,
			MinPriceSamples: 3,
			MinCandidates:   10,
		},
		Scoring: ScoringConfig{
			FlavorFloor:      0.5,
			AffinityFloor:    0.1,
			Neutral:          0.5,
			MinPriceScale:    1,
			MaxAgeDifference: 15,
			RarityStretch:    0.15,
			RarityFarPenalty: 2,
			EmphasisBoost:    0.25,
		},
		Diversity: DiversityConfig{
			Enabled:           true,
			RegionCap:         2,
			DistilleryCap:     0,
			MinRetentionScore: 0,
			MaxRankDrop:       0,
		},
		Analyzer: AnalyzerConfig{
			GapProfileMax:      0.05,
			GapCatalogMin:      0.08,
			TopN:               3,
			MaxCharacteristics: 5,
		},
	}
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	w := c.Weights
	for name, v := range map[string]float64{
		"flavor": w.Flavor, "affinity": w.Affinity, "price": w.Price, "age": w.Age, "rarity": w.Rarity,
	} {
		if v < 0 || math.IsNaN(v) {
			return fmt.Errorf("weights.%s must be >= 0, got %f", name, v)
		}
	}
	if w.Sum() <= 0 {
		return fmt.Errorf("weights must have a positive sum")
	}

	if c.Profile.RatingScale <= 0 {
		return fmt.Errorf("profile.rating_scale must be positive, got %f", c.Profile.RatingScale)
	}
	if c.Profile.MinEntryWeight <= 0 || c.Profile.MinEntryWeight > 1 {
		return fmt.Errorf("profile.min_entry_weight must be in (0, 1], got %f", c.Profile.MinEntryWeight)
	}

	if c.Filter.PriceSpreadK < 0 {
		return fmt.Errorf("filter.price_spread_k must be >= 0, got %f", c.Filter.PriceSpreadK)
	}
	if c.Filter.MinPriceSamples < 0 {
		return fmt.Errorf("filter.min_price_samples must be >= 0, got %d", c.Filter.MinPriceSamples)
	}
	if c.Filter.MinCandidates < 0 {
		return fmt.Errorf("filter.min_candidates must be >= 0, got %d", c.Filter.MinCandidates)
	}

	s := c.Scoring
	for name, v := range map[string]float64{
		"flavor_floor": s.FlavorFloor, "affinity_floor": s.AffinityFloor, "neutral": s.Neutral,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("scoring.%s must be in [0, 1], got %f", name, v)
		}
	}
	if s.MinPriceScale <= 0 {
		return fmt.Errorf("scoring.min_price_scale must be positive, got %f", s.MinPriceScale)
	}
	if s.MaxAgeDifference <= 0 {
		return fmt.Errorf("scoring.max_age_difference must be positive, got %f", s.MaxAgeDifference)
	}
	if s.RarityStretch < 0 || s.RarityFarPenalty < 0 || s.EmphasisBoost < 0 {
		return fmt.Errorf("scoring rarity_stretch, rarity_far_penalty and emphasis_boost must be >= 0")
	}

	if c.Diversity.RegionCap < 1 {
		return fmt.Errorf("diversity.region_cap must be >= 1, got %d", c.Diversity.RegionCap)
	}
	if c.Diversity.DistilleryCap < 0 {
		return fmt.Errorf("diversity.distillery_cap must be >= 0, got %d", c.Diversity.DistilleryCap)
	}
	if c.Diversity.MaxRankDrop < 0 {
		return fmt.Errorf("diversity.max_rank_drop must be >= 0, got %d", c.Diversity.MaxRankDrop)
	}

	if c.Analyzer.TopN < 1 {
		return fmt.Errorf("analyzer.top_n must be >= 1, got %d", c.Analyzer.TopN)
	}
	if c.Analyzer.MaxCharacteristics < 0 {
		return fmt.Errorf("analyzer.max_characteristics must be >= 0, got %d", c.Analyzer.MaxCharacteristics)
	}

	return nil
}

// Clone returns a copy of the config.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}
