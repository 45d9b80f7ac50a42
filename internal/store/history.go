// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package store

import (
	"context"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/barkeep/internal/recommend"
)

// HistoryEntry is one recommendation served to a user.
type HistoryEntry struct {
	ID        string    `json:"id"`
	RequestID string    `json:"request_id,omitempty"`
	Mode      string    `json:"mode"`
	BottleID  string    `json:"bottle_id"`
	Name      string    `json:"name"`
	Rank      int       `json:"rank"`
	Score     float64   `json:"score"`
	Reasons   []string  `json:"reasons"`
	CreatedAt time.Time `json:"created_at"`
}

func historyPrefix(username string) []byte {
	return []byte(historyKeyPrefix + username + ":")
}

func historyKey(username string, at time.Time, seq int) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d:%04d", historyKeyPrefix, username, at.UnixNano(), seq))
}

// AppendHistory stores one entry per recommendation and trims the user's
// history to the configured limit.
func (s *Store) AppendHistory(ctx context.Context, username, mode, requestID string, recs []recommend.Recommendation) (entries []HistoryEntry, err error) {
	defer track("append_history")(&err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = checkUsername(username); err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return []HistoryEntry{}, nil
	}

	now := s.now().UTC()
	entries = make([]HistoryEntry, len(recs))
	err = s.db.Update(func(txn *badger.Txn) error {
		for i := range recs {
			r := &recs[i]
			entries[i] = HistoryEntry{
				ID:        uuid.New().String(),
				RequestID: requestID,
				Mode:      mode,
				BottleID:  r.Bottle.ID,
				Name:      r.Bottle.Name,
				Rank:      r.Rank,
				Score:     r.Score,
				Reasons:   r.Reasons,
				CreatedAt: now,
			}
			data, err := json.Marshal(&entries[i])
			if err != nil {
				return fmt.Errorf("marshal history entry: %w", err)
			}
			if err := txn.Set(historyKey(username, now, i), data); err != nil {
				return fmt.Errorf("set history entry: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err = s.trimHistory(username); err != nil {
		return nil, err
	}
	return entries, nil
}

// History returns up to limit entries, newest first. A non-positive limit
// returns everything kept.
func (s *Store) History(ctx context.Context, username string, limit int) (entries []HistoryEntry, err error) {
	defer track("get_history")(&err)

	if err = ctx.Err(); err != nil {
		return nil, err
	}
	if err = checkUsername(username); err != nil {
		return nil, err
	}

	entries = []HistoryEntry{}
	err = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := historyPrefix(username)
		seek := append(append([]byte{}, prefix...), 0xFF)
		for it.Seek(seek); it.ValidForPrefix(prefix); it.Next() {
			if limit > 0 && len(entries) >= limit {
				break
			}
			var e HistoryEntry
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &e)
			}); err != nil {
				return fmt.Errorf("decode history entry: %w", err)
			}
			entries = append(entries, e)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *Store) trimHistory(username string) error {
	keys, err := s.historyKeys(username)
	if err != nil {
		return err
	}
	excess := len(keys) - s.historyLimit
	if excess <= 0 {
		return nil
	}
	// keys are in ascending order, so the oldest come first
	if err := s.deleteKeys(keys[:excess]); err != nil {
		return err
	}
	s.logger.Debug().Str("username", username).Int("trimmed", excess).Msg("history trimmed")
	return nil
}

// historyKeys lists a user's history keys, oldest first.
func (s *Store) historyKeys(username string) ([][]byte, error) {
	var keys [][]byte
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := historyPrefix(username)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			keys = append(keys, it.Item().KeyCopy(nil))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return keys, nil
}

// deleteKeys removes keys in batches so large histories stay within
// Badger's transaction size limit.
func (s *Store) deleteKeys(keys [][]byte) error {
	wb := s.db.NewWriteBatch()
	defer wb.Cancel()
	for _, k := range keys {
		if err := wb.Delete(k); err != nil {
			return fmt.Errorf("delete key: %w", err)
		}
	}
	if err := wb.Flush(); err != nil {
		return fmt.Errorf("flush deletes: %w", err)
	}
	return nil
}
