// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package authz

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	"github.com/rs/zerolog"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

// Enforcer evaluates access requests against the loaded policy.
type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
	logger   zerolog.Logger
}

// NewEnforcer loads the policy at policyPath, or the built-in policy when
// policyPath is empty.
func NewEnforcer(policyPath string, logger zerolog.Logger) (*Enforcer, error) {
	m, err := model.NewModelFromString(embeddedModel)
	if err != nil {
		return nil, fmt.Errorf("load casbin model: %w", err)
	}

	var enforcer *casbin.SyncedEnforcer
	if policyPath != "" {
		if _, statErr := os.Stat(policyPath); statErr != nil {
			return nil, fmt.Errorf("policy file: %w", statErr)
		}
		enforcer, err = casbin.NewSyncedEnforcer(m, fileadapter.NewAdapter(policyPath))
	} else {
		enforcer, err = casbin.NewSyncedEnforcer(m)
		if err == nil {
			err = loadPolicy(enforcer, embeddedPolicy)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create casbin enforcer: %w", err)
	}

	rules, err := enforcer.GetPolicy()
	if err != nil {
		return nil, fmt.Errorf("read policy: %w", err)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("policy %q has no rules", policySource(policyPath))
	}

	logger.Info().
		Str("policy", policySource(policyPath)).
		Int("rules", len(rules)).
		Msg("Authorization policy loaded")
	return &Enforcer{enforcer: enforcer, logger: logger}, nil
}

// Authorize reports whether subject, holding role, may perform action on
// owner's data.
func (e *Enforcer) Authorize(subject, role, owner, action string) (bool, error) {
	allowed, err := e.enforcer.Enforce(subject, role, owner, action)
	if err != nil {
		return false, fmt.Errorf("enforce: %w", err)
	}
	if !allowed {
		e.logger.Debug().
			Str("subject", subject).
			Str("role", role).
			Str("owner", owner).
			Str("action", action).
			Msg("access denied")
	}
	return allowed, nil
}

// loadPolicy adds the "p" lines of a CSV policy.
func loadPolicy(enforcer *casbin.SyncedEnforcer, policy string) error {
	for _, line := range strings.Split(policy, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		if parts[0] != "p" || len(parts) != 4 {
			return fmt.Errorf("malformed policy line %q", line)
		}
		if _, err := enforcer.AddPolicy(parts[1], parts[2], parts[3]); err != nil {
			return fmt.Errorf("add policy %v: %w", parts[1:], err)
		}
	}
	return nil
}

func policySource(path string) string {
	if path == "" {
		return "built-in"
	}
	return path
}
