// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

var validAuthModes = map[string]bool{
	"none": true,
	"jwt":  true,
}

var validCatalogSources = map[string]bool{
	"file":   true,
	"duckdb": true,
}

var validLogLevels = map[string]bool{
	"trace": true,
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

var validLogFormats = map[string]bool{
	"json":    true,
	"console": true,
}

var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_",
	"EXAMPLE",
	"PLACEHOLDER",
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateStore(); err != nil {
		return err
	}
	if err := c.validateBarAPI(); err != nil {
		return err
	}
	if err := c.validateSecurity(); err != nil {
		return err
	}
	return c.validateRecommend()
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Server.Environment, "production")
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "" || env == "development"
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if !c.IsProduction() && !c.IsDevelopment() {
		return fmt.Errorf("ENVIRONMENT must be development or production, got %q", c.Server.Environment)
	}
	for name, d := range map[string]time.Duration{
		"HTTP_READ_TIMEOUT":     c.Server.ReadTimeout,
		"HTTP_WRITE_TIMEOUT":    c.Server.WriteTimeout,
		"HTTP_SHUTDOWN_TIMEOUT": c.Server.ShutdownTimeout,
	} {
		if d <= 0 {
			return fmt.Errorf("%s must be positive", name)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	if !validCatalogSources[c.Catalog.Source] {
		return fmt.Errorf("CATALOG_SOURCE must be one of: file, duckdb")
	}
	switch c.Catalog.Source {
	case "file":
		if c.Catalog.Path == "" {
			return fmt.Errorf("CATALOG_PATH is required when CATALOG_SOURCE is file")
		}
	case "duckdb":
		if !isIdentifier(c.Catalog.DuckDBTable) {
			return fmt.Errorf("CATALOG_DUCKDB_TABLE must be a plain identifier, got %q", c.Catalog.DuckDBTable)
		}
	}
	if c.Catalog.RefreshInterval < 0 {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must not be negative")
	}
	if c.Catalog.RefreshInterval > 0 && c.Catalog.RefreshInterval < 10*time.Second {
		return fmt.Errorf("CATALOG_REFRESH_INTERVAL must be at least 10s or 0 to disable")
	}
	return nil
}

func (c *Config) validateStore() error {
	if !c.Store.InMemory && c.Store.Path == "" {
		return fmt.Errorf("STORE_PATH is required unless STORE_IN_MEMORY is set")
	}
	if c.Store.HistoryLimit < 1 {
		return fmt.Errorf("STORE_HISTORY_LIMIT must be at least 1, got %d", c.Store.HistoryLimit)
	}
	return nil
}

func (c *Config) validateBarAPI() error {
	if !c.BarAPI.Enabled {
		return nil
	}
	if c.BarAPI.BaseURL == "" {
		return fmt.Errorf("BAR_API_URL is required when BAR_API_ENABLED is true")
	}
	if err := validateHTTPURL(c.BarAPI.BaseURL, "BAR_API_URL"); err != nil {
		return err
	}
	if c.BarAPI.Timeout <= 0 {
		return fmt.Errorf("BAR_API_TIMEOUT must be positive")
	}
	if c.BarAPI.RateLimit <= 0 {
		return fmt.Errorf("BAR_API_RATE_LIMIT must be positive, got %f", c.BarAPI.RateLimit)
	}
	if c.BarAPI.Burst < 1 {
		return fmt.Errorf("BAR_API_BURST must be at least 1, got %d", c.BarAPI.Burst)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if !validAuthModes[c.Security.AuthMode] {
		return fmt.Errorf("AUTH_MODE must be one of: none, jwt")
	}
	if c.Security.AuthMode == "jwt" {
		if err := c.validateJWTSecret(); err != nil {
			return err
		}
	}
	if c.IsProduction() && c.Security.AuthMode == "none" {
		return fmt.Errorf("AUTH_MODE=none is not allowed when ENVIRONMENT=production")
	}
	if !c.Security.RateLimitDisabled {
		if c.Security.RateLimitReqs < 1 {
			return fmt.Errorf("RATE_LIMIT_REQUESTS must be at least 1, got %d", c.Security.RateLimitReqs)
		}
		if c.Security.RateLimitWindow < time.Second || c.Security.RateLimitWindow > time.Hour {
			return fmt.Errorf("RATE_LIMIT_WINDOW must be between 1s and 1h, got %s", c.Security.RateLimitWindow)
		}
	}
	return nil
}

func (c *Config) validateJWTSecret() error {
	if c.Security.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required when AUTH_MODE is jwt")
	}
	if len(c.Security.JWTSecret) < 32 {
		return fmt.Errorf("JWT_SECRET must be at least 32 characters for security")
	}
	if containsPlaceholder(c.Security.JWTSecret) {
		return fmt.Errorf("JWT_SECRET contains a placeholder value - generate a secure secret with: openssl rand -base64 32")
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := &c.Recommend
	if r.MaxK < 1 {
		return fmt.Errorf("RECOMMEND_MAX_K must be at least 1, got %d", r.MaxK)
	}
	if r.DefaultK < 1 || r.DefaultK > r.MaxK {
		return fmt.Errorf("RECOMMEND_DEFAULT_K must be between 1 and RECOMMEND_MAX_K (%d), got %d", r.MaxK, r.DefaultK)
	}
	if err := r.EngineConfig().Validate(); err != nil {
		return fmt.Errorf("recommend: %w", err)
	}
	return nil
}

// validateHTTPURL accepts base URLs only: http or https, a host, no path
// beyond "/" and no query.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}
	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}
	return nil
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, pattern := range placeholderPatterns {
		if strings.Contains(upper, pattern) {
			return true
		}
	}
	return false
}

// isIdentifier reports whether s is safe to splice into SQL as a table name.
func isIdentifier(s string) bool {
	if s == "" || len(s) > 64 {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}
