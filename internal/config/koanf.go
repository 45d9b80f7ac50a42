// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/barkeep/config.yaml",
	"/etc/barkeep/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8420,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			SlowRequest:     time.Second,
			Environment:     "development",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
		Catalog: CatalogConfig{
			Source:          "file",
			Path:            "/data/catalog.json",
			DuckDBTable:     "bottles",
			RefreshInterval: 15 * time.Minute,
		},
		Store: StoreConfig{
			Path:         "/data/bars",
			HistoryLimit: 100,
		},
		BarAPI: BarAPIConfig{
			Enabled:   false,
			Timeout:   10 * time.Second,
			RateLimit: 5,
			Burst:     10,
		},
		Security: SecurityConfig{
			AuthMode:        "none",
			JWTIssuer:       "barkeep",
			CORSOrigins:     []string{"*"},
			RateLimitReqs:   100,
			RateLimitWindow: time.Minute,
		},
		Recommend: RecommendConfig{
			DefaultK: 5,
			MaxK:     50,

			FlavorWeight:   0.4,
			AffinityWeight: 0.2,
			PriceWeight:    0.2,
			AgeWeight:      0.1,
			RarityWeight:   0.1,

			RatingScale:     5,
			PriceSpreadK:    2,
			MinPriceSamples: 3,
			MinCandidates:   10,
			AffinityFloor:   0.1,
			EmphasisBoost:   0.25,

			DiversityEnabled: true,
			RegionCap:        2,

			GapProfileMax: 0.05,
			GapCatalogMin: 0.08,
		},
	}
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing priority, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// CATALOG_PATH -> catalog.path
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// sliceConfigPaths are parsed from comma-separated strings when set
// through the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}
		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to config paths.
// Variables not listed are ignored.
var envMappings = map[string]string{
	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_read_timeout":     "server.read_timeout",
	"http_write_timeout":    "server.write_timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"http_slow_request":     "server.slow_request",
	"environment":           "server.environment",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Catalog
	"catalog_source":           "catalog.source",
	"catalog_path":             "catalog.path",
	"catalog_duckdb_path":      "catalog.duckdb_path",
	"catalog_duckdb_table":     "catalog.duckdb_table",
	"catalog_duckdb_init":      "catalog.duckdb_init",
	"catalog_refresh_interval": "catalog.refresh_interval",

	// Store
	"store_path":          "store.path",
	"store_in_memory":     "store.in_memory",
	"store_history_limit": "store.history_limit",

	// Bar API
	"bar_api_enabled":    "bar_api.enabled",
	"bar_api_url":        "bar_api.base_url",
	"bar_api_key":        "bar_api.api_key",
	"bar_api_timeout":    "bar_api.timeout",
	"bar_api_rate_limit": "bar_api.rate_limit",
	"bar_api_burst":      "bar_api.burst",

	// Security
	"auth_mode":           "security.auth_mode",
	"jwt_secret":          "security.jwt_secret",
	"jwt_issuer":          "security.jwt_issuer",
	"authz_policy_path":   "security.policy_path",
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Recommendation engine
	"recommend_default_k":           "recommend.default_k",
	"recommend_max_k":               "recommend.max_k",
	"recommend_flavor_weight":       "recommend.flavor_weight",
	"recommend_affinity_weight":     "recommend.affinity_weight",
	"recommend_price_weight":        "recommend.price_weight",
	"recommend_age_weight":          "recommend.age_weight",
	"recommend_rarity_weight":       "recommend.rarity_weight",
	"recommend_rating_scale":        "recommend.rating_scale",
	"recommend_price_spread_k":      "recommend.price_spread_k",
	"recommend_min_price_samples":   "recommend.min_price_samples",
	"recommend_min_candidates":      "recommend.min_candidates",
	"recommend_affinity_floor":      "recommend.affinity_floor",
	"recommend_emphasis_boost":      "recommend.emphasis_boost",
	"recommend_diversity_enabled":   "recommend.diversity_enabled",
	"recommend_region_cap":          "recommend.region_cap",
	"recommend_distillery_cap":      "recommend.distillery_cap",
	"recommend_min_retention_score": "recommend.min_retention_score",
	"recommend_max_rank_drop":       "recommend.max_rank_drop",
	"recommend_gap_profile_max":     "recommend.gap_profile_max",
	"recommend_gap_catalog_min":     "recommend.gap_catalog_min",
}

func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
