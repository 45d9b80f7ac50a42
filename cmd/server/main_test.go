// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/config"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestIssueToken(t *testing.T) {
	t.Parallel()

	jwtCfg := &config.SecurityConfig{AuthMode: auth.ModeJWT, JWTSecret: testSecret, JWTIssuer: "barkeep"}

	token, err := issueToken(jwtCfg, "alice", auth.RoleAdmin, time.Hour)
	if err != nil {
		t.Fatalf("issueToken() error = %v", err)
	}
	manager, _ := auth.NewJWTManager(testSecret, "barkeep")
	claims, err := manager.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.Username != "alice" || !claims.IsAdmin() {
		t.Errorf("claims = %+v", claims)
	}

	tests := []struct {
		name     string
		cfg      *config.SecurityConfig
		username string
		role     string
		ttl      time.Duration
	}{
		{name: "auth disabled", cfg: &config.SecurityConfig{AuthMode: auth.ModeNone}, username: "alice", role: auth.RoleUser, ttl: time.Hour},
		{name: "bad username", cfg: jwtCfg, username: "no spaces", role: auth.RoleUser, ttl: time.Hour},
		{name: "unknown role", cfg: jwtCfg, username: "alice", role: "owner", ttl: time.Hour},
		{name: "zero ttl", cfg: jwtCfg, username: "alice", role: auth.RoleUser, ttl: 0},
		{name: "short secret", cfg: &config.SecurityConfig{AuthMode: auth.ModeJWT, JWTSecret: "short"}, username: "alice", role: auth.RoleUser, ttl: time.Hour},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := issueToken(tt.cfg, tt.username, tt.role, tt.ttl); err == nil {
				t.Error("issueToken() = nil error")
			}
		})
	}
}

func TestLoadCatalog_File(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "catalog.json")
	doc := `[{"id": "gl12", "name": "Glenlivet 12", "distillery": "Glenlivet", "region": "Speyside",
		"flavor_profile": {"sweet": 0.7}, "price": 40, "rarity": 0.1}]`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg := &config.CatalogConfig{Source: "file", Path: path}
	src, closeSource, err := newCatalogSource(context.Background(), cfg)
	if err != nil {
		t.Fatalf("newCatalogSource() error = %v", err)
	}
	defer closeSource()

	st, err := loadCatalog(context.Background(), src, cfg)
	if err != nil {
		t.Fatalf("loadCatalog() error = %v", err)
	}
	if snap := st.Current(); snap == nil || snap.Catalog.Len() != 1 {
		t.Errorf("snapshot = %+v, want one bottle", snap)
	}
}

func TestLoadCatalog_MissingFile(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "nope.json")

	once := &config.CatalogConfig{Source: "file", Path: missing}
	src, _, _ := newCatalogSource(context.Background(), once)
	if _, err := loadCatalog(context.Background(), src, once); err == nil {
		t.Error("loadCatalog() without refresh interval should fail on a missing file")
	}

	periodic := &config.CatalogConfig{Source: "file", Path: missing, RefreshInterval: time.Minute}
	st, err := loadCatalog(context.Background(), src, periodic)
	if err != nil {
		t.Fatalf("loadCatalog() with refresh interval error = %v", err)
	}
	if st.Current() != nil {
		t.Error("store should stay empty after a failed initial load")
	}
}

func TestNewAuthMiddleware(t *testing.T) {
	t.Parallel()

	if _, err := newAuthMiddleware(&config.SecurityConfig{AuthMode: auth.ModeNone}); err != nil {
		t.Errorf("mode none error = %v", err)
	}
	if _, err := newAuthMiddleware(&config.SecurityConfig{AuthMode: auth.ModeJWT, JWTSecret: testSecret}); err != nil {
		t.Errorf("mode jwt error = %v", err)
	}
	if _, err := newAuthMiddleware(&config.SecurityConfig{AuthMode: auth.ModeJWT, JWTSecret: "short"}); err == nil {
		t.Error("mode jwt with short secret = nil error")
	}
	missing := filepath.Join(t.TempDir(), "policy.csv")
	if _, err := newAuthMiddleware(&config.SecurityConfig{AuthMode: auth.ModeJWT, JWTSecret: testSecret, PolicyPath: missing}); err == nil {
		t.Error("mode jwt with missing policy file = nil error")
	}
}

func TestNewBarFetcher_Disabled(t *testing.T) {
	t.Parallel()

	if f := newBarFetcher(&config.BarAPIConfig{}); f != nil {
		t.Errorf("newBarFetcher() = %v, want nil when disabled", f)
	}
	if f := newBarFetcher(&config.BarAPIConfig{Enabled: true, BaseURL: "http://bar.invalid"}); f == nil {
		t.Error("newBarFetcher() = nil when enabled")
	}
}
