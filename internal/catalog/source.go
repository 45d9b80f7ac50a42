// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package catalog

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/recommend"
)

// Source produces raw catalog records.
type Source interface {
	// Name labels the source in logs and metrics.
	Name() string

	// Load returns every record. Validation happens in recommend.NewCatalog.
	Load(ctx context.Context) ([]recommend.BottleRecord, error)
}

// FileSource reads a JSON catalog file. The document is either an array of
// records or an object keyed by bottle id; for the keyed form a record
// without an id takes its key.
type FileSource struct {
	path string
}

// NewFileSource creates a source for the JSON file at path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Load implements Source.
func (s *FileSource) Load(ctx context.Context) ([]recommend.BottleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", s.path, err)
	}
	records, err := DecodeRecords(data)
	if err != nil {
		return nil, fmt.Errorf("decode catalog %s: %w", s.path, err)
	}
	return records, nil
}

// DecodeRecords parses a JSON catalog document in either accepted form.
// Keyed documents are returned in id order.
func DecodeRecords(data []byte) ([]recommend.BottleRecord, error) {
	var list []recommend.BottleRecord
	if err := json.Unmarshal(data, &list); err == nil {
		return list, nil
	}

	var keyed map[string]recommend.BottleRecord
	if err := json.Unmarshal(data, &keyed); err != nil {
		return nil, fmt.Errorf("catalog must be a JSON array or an object keyed by id: %w", err)
	}

	ids := make([]string, 0, len(keyed))
	for id := range keyed {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]recommend.BottleRecord, 0, len(keyed))
	for _, id := range ids {
		rec := keyed[id]
		if rec.ID == "" {
			rec.ID = id
		}
		records = append(records, rec)
	}
	return records, nil
}
