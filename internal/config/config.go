// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package config

import (
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/barkeep/internal/recommend"
)

// Config is the complete application configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Logging   LoggingConfig   `koanf:"logging"`
	Catalog   CatalogConfig   `koanf:"catalog"`
	Store     StoreConfig     `koanf:"store"`
	BarAPI    BarAPIConfig    `koanf:"bar_api"`
	Security  SecurityConfig  `koanf:"security"`
	Recommend RecommendConfig `koanf:"recommend"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`

	// SlowRequest is the latency above which requests are logged at warn.
	SlowRequest time.Duration `koanf:"slow_request"`

	// Environment is development or production. Production refuses
	// auth_mode none.
	Environment string `koanf:"environment"`
}

// LoggingConfig maps onto logging.Config.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// CatalogConfig selects where bottles come from.
type CatalogConfig struct {
	// Source is "file" (JSON) or "duckdb".
	Source string `koanf:"source"`

	// Path is the JSON catalog file for the file source.
	Path string `koanf:"path"`

	// DuckDBPath is the database file for the duckdb source. Empty opens an
	// in-memory database, useful together with DuckDBInit.
	DuckDBPath string `koanf:"duckdb_path"`

	// DuckDBTable holds one row per bottle.
	DuckDBTable string `koanf:"duckdb_table"`

	// DuckDBInit is an optional SQL script run once after opening, for
	// example CREATE VIEW bottles AS SELECT * FROM read_parquet('...').
	DuckDBInit string `koanf:"duckdb_init"`

	// RefreshInterval reloads the catalog periodically. Zero loads once.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
}

// StoreConfig configures the Badger store for bars, wishlists and history.
type StoreConfig struct {
	Path string `koanf:"path"`

	// InMemory keeps everything in RAM; Path is ignored.
	InMemory bool `koanf:"in_memory"`

	// HistoryLimit caps stored recommendation history per user.
	HistoryLimit int `koanf:"history_limit"`
}

// BarAPIConfig configures the upstream bar API used by bar sync.
type BarAPIConfig struct {
	Enabled bool   `koanf:"enabled"`
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`

	Timeout time.Duration `koanf:"timeout"`

	// RateLimit is requests per second toward the upstream; Burst allows
	// short spikes above it.
	RateLimit float64 `koanf:"rate_limit"`
	Burst     int     `koanf:"burst"`
}

// SecurityConfig holds authentication, CORS and rate limiting.
type SecurityConfig struct {
	// AuthMode is "none" or "jwt".
	AuthMode  string `koanf:"auth_mode"`
	JWTSecret string `koanf:"jwt_secret"`
	JWTIssuer string `koanf:"jwt_issuer"`

	// PolicyPath optionally replaces the built-in Casbin access policy.
	PolicyPath string `koanf:"policy_path"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// RecommendConfig exposes the engine tunables plus API-level limits.
type RecommendConfig struct {
	// DefaultK is used when a request omits k; MaxK bounds it.
	DefaultK int `koanf:"default_k"`
	MaxK     int `koanf:"max_k"`

	FlavorWeight   float64 `koanf:"flavor_weight"`
	AffinityWeight float64 `koanf:"affinity_weight"`
	PriceWeight    float64 `koanf:"price_weight"`
	AgeWeight      float64 `koanf:"age_weight"`
	RarityWeight   float64 `koanf:"rarity_weight"`

	RatingScale     float64 `koanf:"rating_scale"`
	PriceSpreadK    float64 `koanf:"price_spread_k"`
	MinPriceSamples int     `koanf:"min_price_samples"`
	MinCandidates   int     `koanf:"min_candidates"`
	AffinityFloor   float64 `koanf:"affinity_floor"`
	EmphasisBoost   float64 `koanf:"emphasis_boost"`

	DiversityEnabled  bool    `koanf:"diversity_enabled"`
	RegionCap         int     `koanf:"region_cap"`
	DistilleryCap     int     `koanf:"distillery_cap"`
	MinRetentionScore float64 `koanf:"min_retention_score"`
	MaxRankDrop       int     `koanf:"max_rank_drop"`

	GapProfileMax float64 `koanf:"gap_profile_max"`
	GapCatalogMin float64 `koanf:"gap_catalog_min"`
}

// EngineConfig maps the settings onto the engine configuration. Tunables
// not exposed here keep their engine defaults.
func (r *RecommendConfig) EngineConfig() *recommend.Config {
	cfg := recommend.DefaultConfig()

	cfg.Weights = recommend.ScoreWeights{
		Flavor:   r.FlavorWeight,
		Affinity: r.AffinityWeight,
		Price:    r.PriceWeight,
		Age:      r.AgeWeight,
		Rarity:   r.RarityWeight,
	}
	cfg.Profile.RatingScale = r.RatingScale
	cfg.Filter.PriceSpreadK = r.PriceSpreadK
	cfg.Filter.MinPriceSamples = r.MinPriceSamples
	cfg.Filter.MinCandidates = r.MinCandidates
	cfg.Scoring.AffinityFloor = r.AffinityFloor
	cfg.Scoring.EmphasisBoost = r.EmphasisBoost
	cfg.Diversity.Enabled = r.DiversityEnabled
	cfg.Diversity.RegionCap = r.RegionCap
	cfg.Diversity.DistilleryCap = r.DistilleryCap
	cfg.Diversity.MinRetentionScore = r.MinRetentionScore
	cfg.Diversity.MaxRankDrop = r.MaxRankDrop
	cfg.Analyzer.GapProfileMax = r.GapProfileMax
	cfg.Analyzer.GapCatalogMin = r.GapCatalogMin

	return cfg
}

// Addr returns host:port for the HTTP listener.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}
