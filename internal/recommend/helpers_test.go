// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
)

const tolerance = 1e-6

func ptr[T any](v T) *T {
	return &v
}

type recordOption func(*BottleRecord)

func withAge(years int) recordOption {
	return func(r *BottleRecord) { r.Age = ptr(years) }
}

func withRarity(rarity float64) recordOption {
	return func(r *BottleRecord) { r.Rarity = ptr(rarity) }
}

func withDistillery(name string) recordOption {
	return func(r *BottleRecord) { r.Distillery = name }
}

func withStyle(style string) recordOption {
	return func(r *BottleRecord) { r.Style = style }
}

// record builds a valid catalog record. Each bottle gets its own distillery
// unless overridden, so distillery affinity stays out of the way.
func record(id, region string, price float64, flavor map[string]float64, opts ...recordOption) BottleRecord {
	r := BottleRecord{
		ID:         id,
		Name:       "Bottle " + id,
		Distillery: "Distillery " + id,
		Region:     region,
		Flavor:     flavor,
		Price:      ptr(price),
		Rarity:     ptr(0.5),
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func mustCatalog(t *testing.T, records ...BottleRecord) *Catalog {
	t.Helper()
	c, err := NewCatalog(records)
	if err != nil {
		t.Fatalf("NewCatalog() error = %v", err)
	}
	return c
}

func newTestEngine(t *testing.T, mutate func(*Config)) *Engine {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}
	e, err := NewEngine(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return e
}

func owned(ids ...string) []OwnedEntry {
	entries := make([]OwnedEntry, len(ids))
	for i, id := range ids {
		entries[i] = OwnedEntry{BottleID: id}
	}
	return entries
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) <= tolerance
}

// scenarioCatalog is the Speyside/Islay catalog used across tests:
// A is owned, B is a close Speyside match and C an expensive Islay.
func scenarioCatalog(t *testing.T) *Catalog {
	t.Helper()
	return mustCatalog(t,
		record("A", "Speyside", 50, map[string]float64{"smoky": 0.1, "sweet": 0.8}),
		record("B", "Speyside", 55, map[string]float64{"smoky": 0.15, "sweet": 0.75}),
		record("C", "Islay", 500, map[string]float64{"smoky": 0.9, "sweet": 0.1}),
	)
}

func ids(recs []Recommendation) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.Bottle.ID
	}
	return out
}
