// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/recommend"
)

// ErrNotLoaded is returned when no catalog snapshot is available yet.
var ErrNotLoaded = errors.New("catalog not loaded")

// Snapshot is one validated catalog generation.
type Snapshot struct {
	Catalog  *recommend.Catalog
	Source   string
	LoadedAt time.Time
	Version  uint64
}

// Store holds the current snapshot. Readers never block on a refresh.
type Store struct {
	source  Source
	logger  zerolog.Logger
	current atomic.Pointer[Snapshot]

	// refreshMu serialises refreshes so versions stay ordered.
	refreshMu sync.Mutex
}

// NewStore creates an empty store backed by source.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewStore(source Source, logger zerolog.Logger) *Store {
	return &Store{
		source: source,
		logger: logger.With().Str("component", "catalog").Str("source", source.Name()).Logger(),
	}
}

// Current returns the latest snapshot or nil before the first successful
// refresh.
func (s *Store) Current() *Snapshot {
	return s.current.Load()
}

// Catalog returns the latest catalog or ErrNotLoaded.
func (s *Store) Catalog() (*recommend.Catalog, error) {
	snap := s.current.Load()
	if snap == nil {
		return nil, ErrNotLoaded
	}
	return snap.Catalog, nil
}

// Refresh loads and validates the source, then swaps the snapshot. On
// error the previous snapshot stays in place.
func (s *Store) Refresh(ctx context.Context) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	cat, err := s.load(ctx)
	metrics.RecordCatalogRefresh(s.source.Name(), cat.Len(), time.Since(start), err)
	if err != nil {
		s.logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("catalog refresh failed")
		return err
	}

	var version uint64 = 1
	if prev := s.current.Load(); prev != nil {
		version = prev.Version + 1
	}
	s.current.Store(&Snapshot{
		Catalog:  cat,
		Source:   s.source.Name(),
		LoadedAt: time.Now().UTC(),
		Version:  version,
	})

	s.logger.Info().
		Int("bottles", cat.Len()).
		Uint64("version", version).
		Dur("duration", time.Since(start)).
		Msg("catalog refreshed")
	return nil
}

func (s *Store) load(ctx context.Context) (*recommend.Catalog, error) {
	records, err := s.source.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	cat, err := recommend.NewCatalog(records)
	if err != nil {
		return nil, fmt.Errorf("validate catalog: %w", err)
	}
	return cat, nil
}
