// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"testing"
)

func TestScorer_Scenario(t *testing.T) {
	t.Parallel()

	cat := scenarioCatalog(t)
	cfg := DefaultConfig()
	p := BuildProfile(owned("A"), cat, cfg.Profile)
	s := NewScorer(p, cat, cfg, nil)

	b, _ := cat.Lookup("B")
	c, _ := cat.Lookup("C")

	scoreB, bdB := s.Score(&b)
	scoreC, bdC := s.Score(&c)

	if scoreB <= scoreC {
		t.Fatalf("score(B) = %f should exceed score(C) = %f", scoreB, scoreC)
	}
	if bdB.Flavor <= bdC.Flavor {
		t.Errorf("flavor(B) = %f should exceed flavor(C) = %f", bdB.Flavor, bdC.Flavor)
	}
	if bdB.Price <= bdC.Price {
		t.Errorf("price(B) = %f should exceed price(C) = %f", bdB.Price, bdC.Price)
	}
	if !approxEqual(bdB.Price, 0.9) {
		t.Errorf("price(B) = %f, want 0.9", bdB.Price)
	}
	if bdC.Price != 0 {
		t.Errorf("price(C) = %f, want 0 for a tenfold price", bdC.Price)
	}
	if bdB.Kind != AffinityRegion || !approxEqual(bdB.Affinity, 1) {
		t.Errorf("affinity(B) = %f %v, want 1 region", bdB.Affinity, bdB.Kind)
	}
	if bdC.Kind != AffinityComplement || bdC.Affinity != cfg.Scoring.AffinityFloor {
		t.Errorf("affinity(C) = %f %v, want floor complement", bdC.Affinity, bdC.Kind)
	}
	if !bdB.AgeNeutral || bdB.Age != cfg.Scoring.Neutral {
		t.Errorf("age(B) = %f neutral=%v, want neutral 0.5", bdB.Age, bdB.AgeNeutral)
	}

	for _, score := range []float64{scoreB, scoreC} {
		if score < 0 || score > 1 {
			t.Errorf("score %f outside [0, 1]", score)
		}
	}
}

func TestScorer_EmptyProfileBaseline(t *testing.T) {
	t.Parallel()

	cat := scenarioCatalog(t)
	cfg := DefaultConfig()
	s := NewScorer(&Profile{}, cat, cfg, nil)

	// 0.4*0.5 + 0.2*0.1 + 0.2*0.5 + 0.1*0.5 + 0.1*0.5
	const want = 0.42
	for _, b := range cat.Bottles() {
		b := b
		got, bd := s.Score(&b)
		if !approxEqual(got, want) {
			t.Errorf("empty profile score(%s) = %f, want %f", b.ID, got, want)
		}
		if !bd.FlavorNeutral || !bd.PriceNeutral || !bd.AgeNeutral || !bd.RarityNeutral {
			t.Errorf("empty profile breakdown for %s should be neutral: %+v", b.ID, bd)
		}
		if bd.Kind != AffinityComplement {
			t.Errorf("empty profile affinity kind = %v, want complement", bd.Kind)
		}
	}
}

func TestScorer_DistilleryAffinity(t *testing.T) {
	t.Parallel()

	cat := scenarioCatalog(t)
	p := &Profile{
		Entries:      2,
		Regions:      map[string]float64{"Speyside": 0.5, "Highland": 0.5},
		Distilleries: map[string]float64{"Lagavulin": 1},
	}
	s := NewScorer(p, cat, DefaultConfig(), nil)

	got, kind := s.affinity(&Bottle{Region: "Islay", Distillery: "Lagavulin"})
	if kind != AffinityDistillery || got != 1 {
		t.Errorf("affinity = %f %v, want 1 distillery", got, kind)
	}
	got, kind = s.affinity(&Bottle{Region: "Speyside", Distillery: "Other"})
	if kind != AffinityRegion || got != 0.5 {
		t.Errorf("affinity = %f %v, want 0.5 region", got, kind)
	}
}

func TestScorer_AgeFit(t *testing.T) {
	t.Parallel()

	s := &Scorer{
		cfg:     DefaultConfig().Scoring,
		profile: &Profile{Entries: 1, Age: Stat{Mean: 12, Samples: 1}},
	}

	tests := []struct {
		name        string
		age         *int
		want        float64
		wantNeutral bool
	}{
		{name: "exact", age: ptr(12), want: 1},
		{name: "six years older", age: ptr(18), want: 0.6},
		{name: "twelve years younger", age: ptr(0), want: 0.2},
		{name: "thirty years apart", age: ptr(42), want: 0},
		{name: "no age statement", age: nil, want: 0.5, wantNeutral: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, neutral := s.ageFit(&Bottle{Age: tt.age})
			if !approxEqual(got, tt.want) || neutral != tt.wantNeutral {
				t.Errorf("ageFit() = %f, %v, want %f, %v", got, neutral, tt.want, tt.wantNeutral)
			}
		})
	}
}

func TestScorer_RarityFit(t *testing.T) {
	t.Parallel()

	s := &Scorer{
		cfg:        DefaultConfig().Scoring,
		profile:    &Profile{Entries: 1, Rarity: Stat{Mean: 0.5, Samples: 1}},
		raritySpan: 1,
	}

	tests := []struct {
		name   string
		rarity float64
		want   float64
	}{
		{name: "matches appetite", rarity: 0.5, want: 1},
		{name: "less rare", rarity: 0.3, want: 0.8},
		{name: "mild stretch is rewarded", rarity: 0.6, want: 1},
		{name: "edge of stretch", rarity: 0.65, want: 1},
		{name: "far rarer decays faster", rarity: 0.85, want: 0.6},
		{name: "wildly rarer", rarity: 2, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, neutral := s.rarityFit(&Bottle{Rarity: tt.rarity})
			if neutral {
				t.Fatal("rarityFit() neutral with rarity samples")
			}
			if !approxEqual(got, tt.want) {
				t.Errorf("rarityFit(%f) = %f, want %f", tt.rarity, got, tt.want)
			}
		})
	}

	noSamples := &Scorer{cfg: DefaultConfig().Scoring, profile: &Profile{}, raritySpan: 1}
	if got, neutral := noSamples.rarityFit(&Bottle{Rarity: 0.9}); got != 0.5 || !neutral {
		t.Errorf("rarityFit() without samples = %f, %v, want 0.5 neutral", got, neutral)
	}
}

func TestScorer_PriceFitNeutralWithoutSamples(t *testing.T) {
	t.Parallel()

	s := &Scorer{cfg: DefaultConfig().Scoring, profile: &Profile{Entries: 1}}
	if got, neutral := s.priceFit(&Bottle{Price: 999}); got != 0.5 || !neutral {
		t.Errorf("priceFit() = %f, %v, want 0.5 neutral", got, neutral)
	}
}

func TestScorer_Emphasis(t *testing.T) {
	t.Parallel()

	cat := mustCatalog(t,
		record("sweet", "Speyside", 50, map[string]float64{"sweet": 0.9}),
		record("briny", "Islay", 50, map[string]float64{"briny": 0.9, "sweet": 0.2}),
	)
	cfg := DefaultConfig()
	p := BuildProfile(owned("sweet"), cat, cfg.Profile)
	briny, _ := cat.Lookup("briny")

	plain := NewScorer(p, cat, cfg, nil)
	boosted := NewScorer(p, cat, cfg, []FlavorDimension{FlavorBriny})

	_, before := plain.Score(&briny)
	_, after := boosted.Score(&briny)
	if after.Flavor <= before.Flavor {
		t.Errorf("emphasized flavor = %f, want above %f", after.Flavor, before.Flavor)
	}
	if !approxEqual(boosted.flavor.Sum(), 1) {
		t.Errorf("emphasized profile flavor sum = %f, want 1", boosted.flavor.Sum())
	}
	if plain.flavor != p.Flavor {
		t.Error("scorer without emphasis should use the profile flavor as is")
	}
}
