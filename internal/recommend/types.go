// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/goccy/go-json"
)

// FlavorDimension is one axis of the fixed flavor vocabulary shared by the
// catalog boundary and the scorer.
type FlavorDimension int

// Flavor dimensions. The order is the index into FlavorVector.
const (
	FlavorSweet FlavorDimension = iota
	FlavorSmoky
	FlavorFruity
	FlavorSpicy
	FlavorFloral
	FlavorWoody
	FlavorMalty
	FlavorNutty
	FlavorBriny
	FlavorHerbal
)

// NumFlavorDimensions is the length of every FlavorVector.
const NumFlavorDimensions = 10

var flavorNames = [NumFlavorDimensions]string{
	"sweet", "smoky", "fruity", "spicy", "floral",
	"woody", "malty", "nutty", "briny", "herbal",
}

// String returns the lowercase name used in catalog files and API payloads.
func (d FlavorDimension) String() string {
	if d < 0 || int(d) >= NumFlavorDimensions {
		return fmt.Sprintf("flavor(%d)", int(d))
	}
	return flavorNames[d]
}

// Valid reports whether d is a member of the vocabulary.
func (d FlavorDimension) Valid() bool {
	return d >= 0 && int(d) < NumFlavorDimensions
}

// ParseFlavorDimension maps a name (case-insensitive) to its dimension.
func ParseFlavorDimension(name string) (FlavorDimension, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for i, candidate := range flavorNames {
		if candidate == n {
			return FlavorDimension(i), nil
		}
	}
	return 0, fmt.Errorf("unknown flavor dimension %q", name)
}

// MarshalText encodes the dimension by name.
func (d FlavorDimension) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid flavor dimension %d", int(d))
	}
	return []byte(flavorNames[d]), nil
}

// UnmarshalText decodes a dimension name.
func (d *FlavorDimension) UnmarshalText(text []byte) error {
	parsed, err := ParseFlavorDimension(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// FlavorDimensions returns every dimension in index order.
func FlavorDimensions() []FlavorDimension {
	dims := make([]FlavorDimension, NumFlavorDimensions)
	for i := range dims {
		dims[i] = FlavorDimension(i)
	}
	return dims
}

// FlavorVector is a dense intensity vector indexed by FlavorDimension.
type FlavorVector [NumFlavorDimensions]float64

// Sum returns the total intensity.
func (v FlavorVector) Sum() float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}

// IsZero reports whether every component is zero.
func (v FlavorVector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// Normalized returns v scaled to sum 1. A zero vector stays zero.
func (v FlavorVector) Normalized() FlavorVector {
	s := v.Sum()
	if s <= 0 {
		return FlavorVector{}
	}
	var out FlavorVector
	for i, x := range v {
		out[i] = x / s
	}
	return out
}

// Cosine returns the cosine similarity of v and o, or 0 when either is zero.
func (v FlavorVector) Cosine(o FlavorVector) float64 {
	var dot, nv, no float64
	for i := range v {
		dot += v[i] * o[i]
		nv += v[i] * v[i]
		no += o[i] * o[i]
	}
	if nv == 0 || no == 0 {
		return 0
	}
	c := dot / (math.Sqrt(nv) * math.Sqrt(no))
	return clamp(c, -1, 1)
}

// Dominant returns up to n dimensions with positive intensity, strongest
// first. Ties keep index order.
func (v FlavorVector) Dominant(n int) []FlavorDimension {
	dims := make([]FlavorDimension, 0, NumFlavorDimensions)
	for i, x := range v {
		if x > 0 {
			dims = append(dims, FlavorDimension(i))
		}
	}
	// insertion sort keeps index order on ties and the slice is tiny
	for i := 1; i < len(dims); i++ {
		for j := i; j > 0 && v[dims[j]] > v[dims[j-1]]; j-- {
			dims[j], dims[j-1] = dims[j-1], dims[j]
		}
	}
	if len(dims) > n {
		dims = dims[:n]
	}
	return dims
}

// MarshalJSON encodes the vector as a name-keyed object so payloads stay
// readable and stable if the vocabulary grows.
func (v FlavorVector) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for i, x := range v {
		if x == 0 {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		fmt.Fprintf(&b, "%q:%g", flavorNames[i], x)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes a name-keyed object. Unknown names are rejected.
func (v *FlavorVector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	out, err := FlavorVectorFromMap(m)
	if err != nil {
		return err
	}
	*v = out
	return nil
}

// FlavorVectorFromMap converts an open name-keyed map into a dense vector.
// It rejects unknown names; range checks are left to the catalog.
func FlavorVectorFromMap(m map[string]float64) (FlavorVector, error) {
	var v FlavorVector
	for name, x := range m {
		d, err := ParseFlavorDimension(name)
		if err != nil {
			return FlavorVector{}, err
		}
		v[d] = x
	}
	return v, nil
}

// Bottle is an immutable catalog record.
type Bottle struct {
	// ID is the catalog-unique bottle identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name"`

	// Distillery that produced the bottle.
	Distillery string `json:"distillery"`

	// Region of origin (e.g. "Speyside", "Islay").
	Region string `json:"region"`

	// Style is an optional category such as "Single Malt" or "Bourbon".
	Style string `json:"style,omitempty"`

	// Country is optional and display-only.
	Country string `json:"country,omitempty"`

	// Flavor holds intensities in [0, 1].
	Flavor FlavorVector `json:"flavor"`

	// Price in a single currency-agnostic unit.
	Price float64 `json:"price"`

	// Age is the age statement in years; nil when the bottle carries none.
	Age *int `json:"age,omitempty"`

	// ABV is optional and display-only.
	ABV *float64 `json:"abv,omitempty"`

	// Rarity is continuous; higher is scarcer.
	Rarity float64 `json:"rarity"`
}

// HasAge reports whether the bottle carries an age statement.
func (b *Bottle) HasAge() bool {
	return b.Age != nil
}

// OwnedEntry is one bottle in a user's bar.
type OwnedEntry struct {
	// BottleID references a catalog bottle. Unknown ids are skipped.
	BottleID string `json:"bottle_id" validate:"required"`

	// Rating is an optional user rating from 0 to ProfileConfig.RatingScale.
	// Nil means unrated.
	Rating *float64 `json:"rating,omitempty" validate:"omitempty,gte=0"`
}

// OwnedIDs returns the set of bottle ids referenced by entries.
func OwnedIDs(entries []OwnedEntry) map[string]struct{} {
	ids := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		ids[e.BottleID] = struct{}{}
	}
	return ids
}

// PriceRange summarises the prices of a bar.
type PriceRange struct {
	Low     float64 `json:"low"`
	Typical float64 `json:"typical"`
	High    float64 `json:"high"`
	Spread  float64 `json:"spread"`
	Samples int     `json:"samples"`
}

// Stat is a weighted mean and standard deviation with its sample count.
type Stat struct {
	Mean    float64 `json:"mean"`
	Spread  float64 `json:"spread"`
	Samples int     `json:"samples"`
}

// Profile is the weighted preference summary of a bar. All weight maps and
// the flavor vector sum to 1, or are empty/zero when nothing resolved.
type Profile struct {
	// Flavor is the normalized flavor weight vector.
	Flavor FlavorVector `json:"flavor"`

	// Regions maps region to relative frequency.
	Regions map[string]float64 `json:"regions"`

	// Distilleries maps distillery to relative frequency.
	Distilleries map[string]float64 `json:"distilleries"`

	// Styles maps style to relative frequency. Bottles without a style are
	// not counted.
	Styles map[string]float64 `json:"styles"`

	// Price summarises the owned prices.
	Price PriceRange `json:"price"`

	// Age summarises owned bottles that carry an age statement.
	Age Stat `json:"age"`

	// Rarity is the rarity appetite of the bar.
	Rarity Stat `json:"rarity"`

	// Entries is the number of owned entries that resolved to a bottle.
	Entries int `json:"entries"`
}

// IsEmpty reports whether the profile carries no preference signal.
func (p *Profile) IsEmpty() bool {
	return p == nil || p.Entries == 0
}

// AffinityKind records which branch produced the affinity sub-score.
type AffinityKind int

const (
	// AffinityComplement means neither region nor distillery was seen and the floor applied.
	AffinityComplement AffinityKind = iota
	// AffinityRegion means the region frequency produced the sub-score.
	AffinityRegion
	// AffinityDistillery means the distillery frequency produced the sub-score.
	AffinityDistillery
)

// String returns the name of the affinity kind.
func (k AffinityKind) String() string {
	switch k {
	case AffinityRegion:
		return "region"
	case AffinityDistillery:
		return "distillery"
	default:
		return "complement"
	}
}

// MarshalText encodes the kind by name.
func (k AffinityKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a name written by MarshalText.
func (k *AffinityKind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "region":
		*k = AffinityRegion
	case "distillery":
		*k = AffinityDistillery
	case "complement":
		*k = AffinityComplement
	default:
		return fmt.Errorf("unknown affinity kind %q", text)
	}
	return nil
}

// Breakdown holds the per-dimension sub-scores behind a total score, each
// in [0, 1]. Neutral flags mark sub-scores that fell back to 0.5 because
// the data was missing.
type Breakdown struct {
	Flavor   float64      `json:"flavor"`
	Affinity float64      `json:"affinity"`
	Price    float64      `json:"price"`
	Age      float64      `json:"age"`
	Rarity   float64      `json:"rarity"`
	Kind     AffinityKind `json:"affinity_kind"`

	FlavorNeutral bool `json:"-"`
	PriceNeutral  bool `json:"-"`
	AgeNeutral    bool `json:"-"`
	RarityNeutral bool `json:"-"`
}

// Recommendation is one ranked, explained result.
type Recommendation struct {
	Bottle    Bottle    `json:"bottle"`
	Score     float64   `json:"score"`
	Rank      int       `json:"rank"`
	Reasons   []string  `json:"reasons"`
	Breakdown Breakdown `json:"breakdown"`
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
