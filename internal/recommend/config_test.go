// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"math"
	"strings"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if !approxEqual(cfg.Weights.Sum(), 1) {
		t.Errorf("default weights sum = %f, want 1", cfg.Weights.Sum())
	}
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "negative weight", mutate: func(c *Config) { c.Weights.Price = -0.1 }, wantErr: "weights.price"},
		{name: "NaN weight", mutate: func(c *Config) { c.Weights.Age = math.NaN() }, wantErr: "weights.age"},
		{name: "zero weights", mutate: func(c *Config) { c.Weights = ScoreWeights{} }, wantErr: "positive sum"},
		{name: "zero rating scale", mutate: func(c *Config) { c.Profile.RatingScale = 0 }, wantErr: "profile.rating_scale"},
		{name: "zero entry weight", mutate: func(c *Config) { c.Profile.MinEntryWeight = 0 }, wantErr: "profile.min_entry_weight"},
		{name: "negative spread k", mutate: func(c *Config) { c.Filter.PriceSpreadK = -1 }, wantErr: "filter.price_spread_k"},
		{name: "negative candidate floor", mutate: func(c *Config) { c.Filter.MinCandidates = -1 }, wantErr: "filter.min_candidates"},
		{name: "floor above one", mutate: func(c *Config) { c.Scoring.AffinityFloor = 1.5 }, wantErr: "scoring.affinity_floor"},
		{name: "zero price scale", mutate: func(c *Config) { c.Scoring.MinPriceScale = 0 }, wantErr: "scoring.min_price_scale"},
		{name: "zero age difference", mutate: func(c *Config) { c.Scoring.MaxAgeDifference = 0 }, wantErr: "scoring.max_age_difference"},
		{name: "negative boost", mutate: func(c *Config) { c.Scoring.EmphasisBoost = -1 }, wantErr: "emphasis_boost"},
		{name: "zero region cap", mutate: func(c *Config) { c.Diversity.RegionCap = 0 }, wantErr: "diversity.region_cap"},
		{name: "negative rank drop", mutate: func(c *Config) { c.Diversity.MaxRankDrop = -1 }, wantErr: "diversity.max_rank_drop"},
		{name: "zero top n", mutate: func(c *Config) { c.Analyzer.TopN = 0 }, wantErr: "analyzer.top_n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() error = nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %q, want mention of %q", err, tt.wantErr)
			}
		})
	}
}

func TestScoreWeightsNormalize(t *testing.T) {
	t.Parallel()

	w := ScoreWeights{Flavor: 2, Affinity: 1, Price: 1}.Normalize()
	if !approxEqual(w.Flavor, 0.5) || !approxEqual(w.Affinity, 0.25) || !approxEqual(w.Sum(), 1) {
		t.Errorf("Normalize() = %+v", w)
	}
	if zero := (ScoreWeights{}).Normalize(); zero != (ScoreWeights{}) {
		t.Errorf("Normalize() of zero weights = %+v", zero)
	}
}
