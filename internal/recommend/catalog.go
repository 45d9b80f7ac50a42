// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"math"
	"sort"
	"strings"

	"github.com/tomtom215/barkeep/internal/validation"
)

// BottleRecord is the loader-facing shape of a catalog entry. Required
// numeric fields are pointers so that "missing" and "zero" stay distinct.
type BottleRecord struct {
	ID         string             `json:"id" validate:"required"`
	Name       string             `json:"name" validate:"required"`
	Distillery string             `json:"distillery" validate:"required"`
	Region     string             `json:"region" validate:"required"`
	Style      string             `json:"style,omitempty"`
	Country    string             `json:"country,omitempty"`
	Flavor     map[string]float64 `json:"flavor_profile" validate:"required,min=1"`
	Price      *float64           `json:"price" validate:"required,gte=0"`
	Age        *int               `json:"age,omitempty" validate:"omitempty,gte=0"`
	ABV        *float64           `json:"abv,omitempty" validate:"omitempty,gte=0,lte=100"`
	Rarity     *float64           `json:"rarity" validate:"required,gte=0"`
}

// Catalog is an immutable snapshot of bottles with lookup by id and
// precomputed catalog-wide statistics.
type Catalog struct {
	bottles []Bottle
	index   map[string]int

	priceLow   float64 // 33rd percentile
	priceHigh  float64 // 67th percentile
	priceMin   float64
	priceMax   float64
	rarityMin  float64
	rarityMax  float64
	meanFlavor FlavorVector
}

// NewCatalog validates records and builds a snapshot. The first malformed
// record aborts construction with a *DataIntegrityError.
func NewCatalog(records []BottleRecord) (*Catalog, error) {
	c := &Catalog{
		bottles: make([]Bottle, 0, len(records)),
		index:   make(map[string]int, len(records)),
	}

	for i := range records {
		b, err := bottleFromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		if _, dup := c.index[b.ID]; dup {
			return nil, &DataIntegrityError{BottleID: b.ID, Field: "id", Reason: "duplicate bottle id"}
		}
		c.index[b.ID] = len(c.bottles)
		c.bottles = append(c.bottles, b)
	}

	c.computeStats()
	return c, nil
}

// bottleFromRecord checks one record and converts it to a Bottle.
func bottleFromRecord(rec *BottleRecord) (Bottle, error) {
	if verr := validation.ValidateStruct(rec); verr != nil {
		field, reason := "record", verr.Error()
		if errs := verr.Errors(); len(errs) > 0 {
			field = strings.ToLower(errs[0].Field())
			reason = errs[0].Error()
		}
		return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: field, Reason: reason}
	}

	names := make([]string, 0, len(rec.Flavor))
	for name := range rec.Flavor {
		names = append(names, name)
	}
	sort.Strings(names)

	var flavor FlavorVector
	for _, name := range names {
		d, err := ParseFlavorDimension(name)
		if err != nil {
			return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: "flavor." + name, Reason: "unknown flavor dimension"}
		}
		x := rec.Flavor[name]
		if math.IsNaN(x) || x < 0 || x > 1 {
			return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: "flavor." + name, Reason: "intensity must be in [0, 1]"}
		}
		flavor[d] = x
	}
	if flavor.Sum() <= 0 {
		return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: "flavor", Reason: "flavor profile has no positive intensity"}
	}
	if math.IsNaN(*rec.Price) || math.IsInf(*rec.Price, 0) {
		return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: "price", Reason: "price must be finite"}
	}
	if math.IsNaN(*rec.Rarity) || math.IsInf(*rec.Rarity, 0) {
		return Bottle{}, &DataIntegrityError{BottleID: rec.ID, Field: "rarity", Reason: "rarity must be finite"}
	}

	b := Bottle{
		ID:         rec.ID,
		Name:       rec.Name,
		Distillery: rec.Distillery,
		Region:     rec.Region,
		Style:      rec.Style,
		Country:    rec.Country,
		Flavor:     flavor,
		Price:      *rec.Price,
		Rarity:     *rec.Rarity,
	}
	if rec.Age != nil {
		age := *rec.Age
		b.Age = &age
	}
	if rec.ABV != nil {
		abv := *rec.ABV
		b.ABV = &abv
	}
	return b, nil
}

// computeStats fills the catalog-wide statistics.
func (c *Catalog) computeStats() {
	if len(c.bottles) == 0 {
		return
	}

	prices := make([]float64, len(c.bottles))
	c.rarityMin, c.rarityMax = math.Inf(1), math.Inf(-1)
	var flavorSum FlavorVector
	for i := range c.bottles {
		b := &c.bottles[i]
		prices[i] = b.Price
		c.rarityMin = math.Min(c.rarityMin, b.Rarity)
		c.rarityMax = math.Max(c.rarityMax, b.Rarity)
		n := b.Flavor.Normalized()
		for d := range flavorSum {
			flavorSum[d] += n[d]
		}
	}
	sort.Float64s(prices)
	c.priceMin = prices[0]
	c.priceMax = prices[len(prices)-1]
	c.priceLow = quantile(prices, 1.0/3.0)
	c.priceHigh = quantile(prices, 2.0/3.0)

	for d := range flavorSum {
		c.meanFlavor[d] = flavorSum[d] / float64(len(c.bottles))
	}
}

// quantile returns the q-quantile of sorted values by linear interpolation.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}

// Len returns the number of bottles.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.bottles)
}

// Lookup returns the bottle with the given id.
func (c *Catalog) Lookup(id string) (Bottle, bool) {
	if c == nil {
		return Bottle{}, false
	}
	i, ok := c.index[id]
	if !ok {
		return Bottle{}, false
	}
	return c.bottles[i], true
}

// Bottles returns a copy of all bottles in catalog order.
func (c *Catalog) Bottles() []Bottle {
	if c == nil {
		return nil
	}
	out := make([]Bottle, len(c.bottles))
	copy(out, c.bottles)
	return out
}

// PriceTertiles returns the 33rd and 67th percentile prices. ok is false for
// an empty catalog.
func (c *Catalog) PriceTertiles() (low, high float64, ok bool) {
	if c.Len() == 0 {
		return 0, 0, false
	}
	return c.priceLow, c.priceHigh, true
}

// PriceRange returns the lowest and highest catalog price.
func (c *Catalog) PriceRange() (lowest, highest float64) {
	if c.Len() == 0 {
		return 0, 0
	}
	return c.priceMin, c.priceMax
}

// MeanFlavor returns the mean of the normalized flavor vectors of all bottles.
func (c *Catalog) MeanFlavor() FlavorVector {
	if c == nil {
		return FlavorVector{}
	}
	return c.meanFlavor
}

// RaritySpan returns max minus min rarity, or 1 when the catalog has no
// spread, so it can be used as a divisor.
func (c *Catalog) RaritySpan() float64 {
	if c.Len() == 0 {
		return 1
	}
	span := c.rarityMax - c.rarityMin
	if span <= 0 {
		return 1
	}
	return span
}

// Regions returns the distinct regions in sorted order.
func (c *Catalog) Regions() []string {
	return c.distinct(func(b *Bottle) string { return b.Region })
}

// Styles returns the distinct non-empty styles in sorted order.
func (c *Catalog) Styles() []string {
	return c.distinct(func(b *Bottle) string { return b.Style })
}

func (c *Catalog) distinct(key func(*Bottle) string) []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for i := range c.bottles {
		k := key(&c.bottles[i])
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
