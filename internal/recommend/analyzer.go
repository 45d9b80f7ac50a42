// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"fmt"
	"math"
	"sort"
)

// Share is a named relative frequency.
type Share struct {
	Name  string  `json:"name"`
	Share float64 `json:"share"`
}

// FlavorStat aggregates one flavor dimension over the owned bottles.
type FlavorStat struct {
	Dimension FlavorDimension `json:"dimension"`

	// Weight is the normalized profile weight.
	Weight float64 `json:"weight"`

	// Mean, Min and Max are raw intensities over the resolved bottles.
	Mean float64 `json:"mean"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// PriceBuckets counts owned bottles against the catalog price tertiles.
type PriceBuckets struct {
	Budget  int `json:"budget"`
	Mid     int `json:"mid"`
	Premium int `json:"premium"`

	// BudgetMax and MidMax are the catalog 33rd and 67th percentile prices.
	BudgetMax float64 `json:"budget_max"`
	MidMax    float64 `json:"mid_max"`
}

// AnalysisSummary describes a bar independently of any recommendation.
type AnalysisSummary struct {
	Bottles         int               `json:"bottles"`
	Unresolved      []string          `json:"unresolved"`
	Flavor          []FlavorStat      `json:"flavor"`
	TopRegions      []Share           `json:"top_regions"`
	TopDistilleries []Share           `json:"top_distilleries"`
	TopStyles       []Share           `json:"top_styles"`
	PriceBuckets    PriceBuckets      `json:"price_buckets"`
	Price           PriceRange        `json:"price"`
	Age             Stat              `json:"age"`
	Rarity          Stat              `json:"rarity"`
	Gaps            []FlavorDimension `json:"gaps"`
	Characteristics []string          `json:"characteristics"`
}

// Analyze summarises a bar. The profile should be the one built from owned
// against catalog; it supplies the weighted statistics, while owned supplies
// per-bottle aggregates and the price buckets. An empty catalog yields no
// gap dimensions.
func Analyze(profile *Profile, owned []OwnedEntry, catalog *Catalog, cfg AnalyzerConfig) *AnalysisSummary {
	if profile == nil {
		profile = &Profile{}
	}

	sum := &AnalysisSummary{
		Unresolved:      make([]string, 0),
		TopRegions:      topShares(profile.Regions, cfg.TopN),
		TopDistilleries: topShares(profile.Distilleries, cfg.TopN),
		TopStyles:       topShares(profile.Styles, cfg.TopN),
		Price:           profile.Price,
		Age:             profile.Age,
		Rarity:          profile.Rarity,
		Gaps:            gapDimensions(profile, catalog, cfg),
	}

	low, high, haveTertiles := catalog.PriceTertiles()
	sum.PriceBuckets.BudgetMax = low
	sum.PriceBuckets.MidMax = high

	var (
		total FlavorVector
		mins  FlavorVector
		maxs  FlavorVector
	)
	for d := range mins {
		mins[d] = math.Inf(1)
	}

	for _, entry := range owned {
		b, ok := catalog.Lookup(entry.BottleID)
		if !ok {
			sum.Unresolved = append(sum.Unresolved, entry.BottleID)
			continue
		}
		sum.Bottles++

		for d, x := range b.Flavor {
			total[d] += x
			mins[d] = math.Min(mins[d], x)
			maxs[d] = math.Max(maxs[d], x)
		}

		if haveTertiles {
			switch {
			case b.Price <= low:
				sum.PriceBuckets.Budget++
			case b.Price <= high:
				sum.PriceBuckets.Mid++
			default:
				sum.PriceBuckets.Premium++
			}
		}
	}

	sum.Flavor = make([]FlavorStat, 0, NumFlavorDimensions)
	for _, d := range FlavorDimensions() {
		fs := FlavorStat{Dimension: d, Weight: profile.Flavor[d]}
		if sum.Bottles > 0 {
			fs.Mean = total[d] / float64(sum.Bottles)
			fs.Min = mins[d]
			fs.Max = maxs[d]
		}
		sum.Flavor = append(sum.Flavor, fs)
	}

	sum.Characteristics = characteristics(profile, cfg.MaxCharacteristics)
	return sum
}

// gapDimensions lists dimensions the bar underweights while the catalog
// carries them prominently.
func gapDimensions(profile *Profile, catalog *Catalog, cfg AnalyzerConfig) []FlavorDimension {
	gaps := make([]FlavorDimension, 0)
	if catalog.Len() == 0 {
		return gaps
	}
	mean := catalog.MeanFlavor()
	for _, d := range FlavorDimensions() {
		if profile.Flavor[d] < cfg.GapProfileMax && mean[d] > cfg.GapCatalogMin {
			gaps = append(gaps, d)
		}
	}
	return gaps
}

// topShares returns the n largest shares, largest first, ties by name.
func topShares(m map[string]float64, n int) []Share {
	out := make([]Share, 0, len(m))
	for name, share := range m {
		out = append(out, Share{Name: name, Share: share})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Share != out[j].Share {
			return out[i].Share > out[j].Share
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > n {
		out = out[:n]
	}
	return out
}

// characteristics renders short labels: two regions, two styles and three
// flavors, capped at limit.
func characteristics(profile *Profile, limit int) []string {
	labels := make([]string, 0, limit)
	push := func(s string) {
		if len(labels) < limit {
			labels = append(labels, s)
		}
	}
	for _, s := range topShares(profile.Regions, 2) {
		push(fmt.Sprintf("%s whiskies", s.Name))
	}
	for _, s := range topShares(profile.Styles, 2) {
		push(fmt.Sprintf("%s style", s.Name))
	}
	for _, d := range profile.Flavor.Dominant(3) {
		push(fmt.Sprintf("%s flavors", d))
	}
	return labels
}
