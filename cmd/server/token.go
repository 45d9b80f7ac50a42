// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/barkeep/internal/auth"
	"github.com/tomtom215/barkeep/internal/config"
	"github.com/tomtom215/barkeep/internal/validation"
)

// issueToken mints a bearer token for username with the configured secret.
func issueToken(cfg *config.SecurityConfig, username, role string, ttl time.Duration) (string, error) {
	if cfg.AuthMode != auth.ModeJWT {
		return "", errors.New("token issuance requires AUTH_MODE=jwt")
	}
	if !validation.IsSlug(username) {
		return "", fmt.Errorf("invalid username %q", username)
	}
	if role != auth.RoleUser && role != auth.RoleAdmin {
		return "", fmt.Errorf("role must be %q or %q, got %q", auth.RoleUser, auth.RoleAdmin, role)
	}
	if ttl <= 0 {
		return "", fmt.Errorf("ttl must be positive, got %s", ttl)
	}

	manager, err := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTIssuer)
	if err != nil {
		return "", err
	}
	return manager.GenerateToken(username, role, ttl)
}
