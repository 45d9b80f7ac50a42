// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"testing"
)

func cand(id, region, distillery string, score float64) candidate {
	return candidate{
		bottle: Bottle{ID: id, Region: region, Distillery: distillery},
		score:  score,
	}
}

func candidateIDs(cs []candidate) []string {
	out := make([]string, len(cs))
	for i := range cs {
		out[i] = cs[i].bottle.ID
	}
	return out
}

// rankedPool is already in rank order: three Speyside bottles ahead of two
// Islay bottles.
func rankedPool() []candidate {
	return []candidate{
		cand("S1", "Speyside", "Glen X", 0.9),
		cand("S2", "Speyside", "Glen X", 0.8),
		cand("S3", "Speyside", "Glen Y", 0.7),
		cand("I1", "Islay", "Port Z", 0.6),
		cand("I2", "Islay", "Port Z", 0.5),
	}
}

func TestDiversify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		pool []candidate
		m    int
		cfg  DiversityConfig
		want []string
	}{
		{
			name: "region cap promotes other regions",
			pool: rankedPool(),
			m:    4,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2},
			want: []string{"S1", "S2", "I1", "I2"},
		},
		{
			name: "rank drop bound lets the head back in",
			pool: rankedPool(),
			m:    4,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2, MaxRankDrop: 1},
			want: []string{"S1", "S2", "I1", "S3"},
		},
		{
			name: "retention score blocks weak promotions",
			pool: rankedPool(),
			m:    4,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2, MinRetentionScore: 0.65},
			want: []string{"S1", "S2", "S3", "I1"},
		},
		{
			name: "single region pool still fills",
			pool: rankedPool()[:3],
			m:    3,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2},
			want: []string{"S1", "S2", "S3"},
		},
		{
			name: "distillery cap",
			pool: rankedPool(),
			m:    2,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 5, DistilleryCap: 1},
			want: []string{"S1", "S3"},
		},
		{
			name: "disabled keeps rank order",
			pool: rankedPool(),
			m:    4,
			cfg:  DiversityConfig{Enabled: false, RegionCap: 1},
			want: []string{"S1", "S2", "S3", "I1"},
		},
		{
			name: "result size larger than pool",
			pool: rankedPool(),
			m:    10,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2},
			want: []string{"S1", "S2", "I1", "I2", "S3"},
		},
		{
			name: "empty pool",
			pool: nil,
			m:    3,
			cfg:  DiversityConfig{Enabled: true, RegionCap: 2},
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := candidateIDs(diversify(tt.pool, tt.m, tt.cfg))
			if !equalIDs(got, tt.want) {
				t.Errorf("diversify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDiversify_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	pool := rankedPool()
	before := candidateIDs(pool)
	_ = diversify(pool, 4, DiversityConfig{Enabled: true, RegionCap: 1})
	if after := candidateIDs(pool); !equalIDs(after, before) {
		t.Errorf("input reordered: %v, want %v", after, before)
	}
}

func TestExceedsRankDrop(t *testing.T) {
	t.Parallel()

	tests := []struct {
		origRank, pos, maxDrop int
		want                   bool
	}{
		{origRank: 2, pos: 2, maxDrop: 0, want: false},
		{origRank: 2, pos: 9, maxDrop: 0, want: false},
		{origRank: 2, pos: 2, maxDrop: 1, want: false},
		{origRank: 2, pos: 3, maxDrop: 1, want: true},
		{origRank: 0, pos: 2, maxDrop: 3, want: false},
		{origRank: 0, pos: 3, maxDrop: 3, want: true},
		{origRank: 0, pos: 4, maxDrop: 3, want: true},
	}

	for _, tt := range tests {
		if got := exceedsRankDrop(tt.origRank, tt.pos, tt.maxDrop); got != tt.want {
			t.Errorf("exceedsRankDrop(%d, %d, %d) = %v, want %v", tt.origRank, tt.pos, tt.maxDrop, got, tt.want)
		}
	}
}

func TestRankCandidates_TieBreaks(t *testing.T) {
	t.Parallel()

	cs := []candidate{
		{bottle: Bottle{ID: "d", Rarity: 0.5, Price: 40}, score: 0.7},
		{bottle: Bottle{ID: "c", Rarity: 0.5, Price: 40}, score: 0.7},
		{bottle: Bottle{ID: "b", Rarity: 0.5, Price: 30}, score: 0.7},
		{bottle: Bottle{ID: "a", Rarity: 0.2, Price: 90}, score: 0.7},
		{bottle: Bottle{ID: "z", Rarity: 0.9, Price: 99}, score: 0.8},
	}
	rankCandidates(cs)

	want := []string{"z", "a", "b", "c", "d"}
	if got := candidateIDs(cs); !equalIDs(got, want) {
		t.Errorf("rankCandidates() = %v, want %v", got, want)
	}
}
