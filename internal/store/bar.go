// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/recommend"
)

// Bar sources.
const (
	BarSourceManual = "manual"
	BarSourceSync   = "sync"
)

// Bar is a user's collection plus wishlist.
type Bar struct {
	Username  string                 `json:"username"`
	Bottles   []recommend.OwnedEntry `json:"bottles"`
	Wishlist  []string               `json:"wishlist"`
	Source    string                 `json:"source"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// WishlistIDs returns the wishlist as a set.
func (b *Bar) WishlistIDs() map[string]struct{} {
	set := make(map[string]struct{}, len(b.Wishlist))
	for _, id := range b.Wishlist {
		set[id] = struct{}{}
	}
	return set
}

// GetBar loads a user's bar or returns ErrNotFound.
func (s *Store) GetBar(ctx context.Context, username string) (bar *Bar, err error) {
	defer track("get_bar")(&err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = checkUsername(username); err != nil {
		return nil, err
	}

	var b Bar
	err = s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(barKeyPrefix + username))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get bar: %w", err)
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &b)
		})
	})
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// PutBar replaces a user's bar. Username and UpdatedAt are stamped here;
// nil slices are stored as empty.
func (s *Store) PutBar(ctx context.Context, bar *Bar) (err error) {
	defer track("put_bar")(&err)

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = checkUsername(bar.Username); err != nil {
		return err
	}

	if bar.Bottles == nil {
		bar.Bottles = []recommend.OwnedEntry{}
	}
	if bar.Wishlist == nil {
		bar.Wishlist = []string{}
	}
	if bar.Source == "" {
		bar.Source = BarSourceManual
	}
	bar.UpdatedAt = s.now().UTC()

	data, err := json.Marshal(bar)
	if err != nil {
		return fmt.Errorf("marshal bar: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(barKeyPrefix+bar.Username), data)
	})
	if err != nil {
		return fmt.Errorf("put bar: %w", err)
	}

	s.logger.Debug().
		Str("username", bar.Username).
		Int("bottles", len(bar.Bottles)).
		Int("wishlist", len(bar.Wishlist)).
		Str("source", bar.Source).
		Msg("bar stored")
	return nil
}

// DeleteBar removes a user's bar and history. Deleting a missing bar is
// not an error.
func (s *Store) DeleteBar(ctx context.Context, username string) (err error) {
	defer track("delete_bar")(&err)

	if err = ctx.Err(); err != nil {
		return err
	}
	if err = checkUsername(username); err != nil {
		return err
	}

	keys, err := s.historyKeys(username)
	if err != nil {
		return err
	}
	keys = append(keys, []byte(barKeyPrefix+username))

	return s.deleteKeys(keys)
}
