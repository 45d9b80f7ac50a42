// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"math"
)

// weightedSample is one observation with its entry weight.
type weightedSample struct {
	value  float64
	weight float64
}

// BuildProfile aggregates owned entries into a preference profile. Entries
// whose bottle is not in the catalog are skipped, so the result equals the
// profile of the resolvable entries alone. A bar with nothing resolvable
// yields the zero profile.
func BuildProfile(owned []OwnedEntry, catalog *Catalog, cfg ProfileConfig) *Profile {
	p := &Profile{
		Regions:      make(map[string]float64),
		Distilleries: make(map[string]float64),
		Styles:       make(map[string]float64),
	}

	var (
		flavor      FlavorVector
		totalWeight float64
		styleWeight float64
		prices      []weightedSample
		ages        []weightedSample
		rarities    []weightedSample
		lowest      = math.Inf(1)
		highest     = math.Inf(-1)
	)

	for _, entry := range owned {
		b, ok := catalog.Lookup(entry.BottleID)
		if !ok {
			continue
		}

		w := entryWeight(entry, cfg)
		p.Entries++
		totalWeight += w

		for d, x := range b.Flavor {
			flavor[d] += w * x
		}
		p.Regions[b.Region] += w
		p.Distilleries[b.Distillery] += w
		if b.Style != "" {
			p.Styles[b.Style] += w
			styleWeight += w
		}

		prices = append(prices, weightedSample{value: b.Price, weight: w})
		lowest = math.Min(lowest, b.Price)
		highest = math.Max(highest, b.Price)

		if b.Age != nil {
			ages = append(ages, weightedSample{value: float64(*b.Age), weight: w})
		}
		rarities = append(rarities, weightedSample{value: b.Rarity, weight: w})
	}

	if p.Entries == 0 {
		return p
	}

	p.Flavor = flavor.Normalized()
	normalizeShares(p.Regions, totalWeight)
	normalizeShares(p.Distilleries, totalWeight)
	normalizeShares(p.Styles, styleWeight)

	mean, spread := weightedMeanStd(prices)
	p.Price = PriceRange{
		Low:     lowest,
		Typical: mean,
		High:    highest,
		Spread:  spread,
		Samples: len(prices),
	}
	p.Age = statOf(ages)
	p.Rarity = statOf(rarities)

	return p
}

// entryWeight maps an optional rating to the entry weight.
func entryWeight(e OwnedEntry, cfg ProfileConfig) float64 {
	if e.Rating == nil {
		return 1.0
	}
	scale := cfg.RatingScale
	if scale <= 0 {
		scale = 5
	}
	w := clamp(*e.Rating/scale, 0, 1)
	if math.IsNaN(w) {
		return 1.0
	}
	return math.Max(w, cfg.MinEntryWeight)
}

// normalizeShares divides every value by total so the map sums to 1.
func normalizeShares(m map[string]float64, total float64) {
	if total <= 0 {
		for k := range m {
			delete(m, k)
		}
		return
	}
	for k, v := range m {
		m[k] = v / total
	}
}

func statOf(samples []weightedSample) Stat {
	if len(samples) == 0 {
		return Stat{}
	}
	mean, spread := weightedMeanStd(samples)
	return Stat{Mean: mean, Spread: spread, Samples: len(samples)}
}

// weightedMeanStd returns the weighted mean and population standard deviation.
func weightedMeanStd(samples []weightedSample) (mean, std float64) {
	var sw, sx float64
	for _, s := range samples {
		sw += s.weight
		sx += s.weight * s.value
	}
	if sw <= 0 {
		return 0, 0
	}
	mean = sx / sw

	var sv float64
	for _, s := range samples {
		d := s.value - mean
		sv += s.weight * d * d
	}
	return mean, math.Sqrt(sv / sw)
}
