// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/validation"
)

const (
	barKeyPrefix     = "bar:"
	historyKeyPrefix = "history:"
)

var (
	// ErrNotFound is returned when a user has no stored bar.
	ErrNotFound = errors.New("not found")

	// ErrInvalidUsername is returned for usernames that are not slugs.
	ErrInvalidUsername = errors.New("invalid username")
)

// Options configures Open.
type Options struct {
	// Path is the database directory. Ignored when InMemory is set.
	Path     string
	InMemory bool

	// HistoryLimit caps stored history entries per user.
	HistoryLimit int
}

// Store is a Badger-backed repository. It is safe for concurrent use.
type Store struct {
	db           *badger.DB
	historyLimit int
	logger       zerolog.Logger
	now          func() time.Time
}

// Open opens or creates the database.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func Open(opts Options, logger zerolog.Logger) (*Store, error) {
	logger = logger.With().Str("component", "store").Logger()

	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts.Logger = &badgerLogger{logger: logger}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	limit := opts.HistoryLimit
	if limit <= 0 {
		limit = 100
	}

	logger.Info().
		Str("path", opts.Path).
		Bool("in_memory", opts.InMemory).
		Int("history_limit", limit).
		Msg("store opened")

	return &Store{
		db:           db,
		historyLimit: limit,
		logger:       logger,
		now:          time.Now,
	}, nil
}

// Close flushes and closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// track starts timing an operation; the returned func records it with the
// final error. Use as defer track("op")(&err).
func track(operation string) func(*error) {
	start := time.Now()
	return func(errp *error) {
		metrics.RecordStoreOperation(operation, time.Since(start), *errp)
	}
}

func checkUsername(username string) error {
	if !validation.IsSlug(username) {
		return fmt.Errorf("%w: %q", ErrInvalidUsername, username)
	}
	return nil
}

// badgerLogger routes Badger's internal logging through zerolog. Info is
// demoted to debug; Badger is chatty at startup.
type badgerLogger struct {
	logger zerolog.Logger
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.logger.Error().Msgf(format, args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.logger.Warn().Msgf(format, args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.logger.Debug().Msgf(format, args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.logger.Trace().Msgf(format, args...)
}
