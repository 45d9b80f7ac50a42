// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package recommend

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/logging"
)

// Request is the input to Engine.Recommend.
type Request struct {
	// Profile is the bar's preference profile. Nil is treated as the zero profile.
	Profile *Profile

	// Catalog is the snapshot to recommend from. Required.
	Catalog *Catalog

	// Owned holds the bottle ids of the bar; they are never recommended.
	Owned map[string]struct{}

	// Exclude holds additional ids to skip, such as wishlist bottles.
	Exclude map[string]struct{}

	// K is the number of results. Must be positive.
	K int

	// Emphasize lists flavor dimensions to upweight, typically the gap
	// dimensions from a previous Analyze call.
	Emphasize []FlavorDimension
}

// Engine wires the profile builder, filter, scorer, ranker and analyzer.
// It holds only read-only configuration and is safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger
}

// NewEngine creates an engine with the given configuration.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewEngine(cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Engine{
		config: cfg.Clone(),
		logger: logger.With().Str("component", "recommend").Logger(),
	}, nil
}

// Config returns a copy of the engine configuration.
func (e *Engine) Config() *Config {
	return e.config.Clone()
}

// BuildProfile aggregates owned entries into a preference profile.
func (e *Engine) BuildProfile(ctx context.Context, owned []OwnedEntry, catalog *Catalog) *Profile {
	p := BuildProfile(owned, catalog, e.config.Profile)
	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("owned", len(owned)).
		Int("resolved", p.Entries).
		Msg("profile built")
	return p
}

// Recommend returns up to req.K ranked, explained recommendations. An empty
// catalog yields an empty list.
func (e *Engine) Recommend(ctx context.Context, req Request) ([]Recommendation, error) {
	if req.K <= 0 {
		return nil, fmt.Errorf("%w: result size must be positive, got %d", ErrInvalidArgument, req.K)
	}
	if req.Catalog == nil {
		return nil, fmt.Errorf("%w: catalog is required", ErrInvalidArgument)
	}
	for _, d := range req.Emphasize {
		if !d.Valid() {
			return nil, fmt.Errorf("%w: unknown flavor dimension %d", ErrInvalidArgument, int(d))
		}
	}

	start := time.Now()
	profile := req.Profile
	if profile == nil {
		profile = &Profile{}
	}

	candidates := FilterCandidates(req.Catalog, profile, e.buildExcludeSet(req), e.config.Filter)
	if len(candidates) == 0 {
		return []Recommendation{}, nil
	}

	scorer := NewScorer(profile, req.Catalog, e.config, req.Emphasize)
	scored := scoreAll(scorer, candidates)
	rankCandidates(scored)
	selected := diversify(scored, req.K, e.config.Diversity)

	recs := make([]Recommendation, len(selected))
	for i := range selected {
		c := &selected[i]
		recs[i] = Recommendation{
			Bottle:    c.bottle,
			Score:     c.score,
			Rank:      i + 1,
			Reasons:   scorer.Explain(&c.bottle, c.breakdown),
			Breakdown: c.breakdown,
		}
	}

	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("catalog", req.Catalog.Len()).
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("recommendation complete")

	return recs, nil
}

// Starter recommends for a bar without a usable profile. req.Profile is
// ignored: ranking falls back to the neutral sub-scores, emphasis and the
// region cap spread the picks, and Owned and Exclude are still honoured.
func (e *Engine) Starter(ctx context.Context, req Request) ([]Recommendation, error) {
	req.Profile = nil
	return e.Recommend(ctx, req)
}

// Analyze summarises a bar. A nil profile is built from owned first.
func (e *Engine) Analyze(ctx context.Context, profile *Profile, owned []OwnedEntry, catalog *Catalog) *AnalysisSummary {
	if profile == nil {
		profile = e.BuildProfile(ctx, owned, catalog)
	}
	summary := Analyze(profile, owned, catalog, e.config.Analyzer)
	e.logger.Debug().
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Int("bottles", summary.Bottles).
		Int("gaps", len(summary.Gaps)).
		Msg("analysis complete")
	return summary
}

// buildExcludeSet merges owned and excluded ids.
func (e *Engine) buildExcludeSet(req Request) map[string]struct{} {
	if len(req.Exclude) == 0 {
		return req.Owned
	}
	set := make(map[string]struct{}, len(req.Owned)+len(req.Exclude))
	for id := range req.Owned {
		set[id] = struct{}{}
	}
	for id := range req.Exclude {
		set[id] = struct{}{}
	}
	return set
}
