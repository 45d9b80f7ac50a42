// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/duckdb/duckdb-go/v2" // registers the duckdb driver
	"github.com/goccy/go-json"

	"github.com/tomtom215/barkeep/internal/metrics"
	"github.com/tomtom215/barkeep/internal/recommend"
)

// DuckDBSource reads bottles from a DuckDB table or view with the columns
//
//	id, name, distillery, region, style, country,
//	flavor_profile (JSON text), price, age, abv, rarity
//
// NULL optional columns map to unknown values. A NULL price, rarity or
// flavor_profile is reported by catalog validation.
type DuckDBSource struct {
	db    *sql.DB
	table string
}

// NewDuckDBSource opens the database at path, or an in-memory database when
// path is empty, and runs the optional init script. The table name must be
// a plain identifier; config validation enforces this.
func NewDuckDBSource(ctx context.Context, path, table, initSQL string) (*DuckDBSource, error) {
	conn, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to connect to duckdb: %w", err)
	}

	if initSQL != "" {
		start := time.Now()
		_, err := conn.ExecContext(ctx, initSQL)
		metrics.RecordDBQuery("init", table, time.Since(start), err)
		if err != nil {
			_ = conn.Close()
			return nil, fmt.Errorf("catalog init script failed: %w", err)
		}
	}

	return &DuckDBSource{db: conn, table: table}, nil
}

// Name implements Source.
func (s *DuckDBSource) Name() string { return "duckdb" }

// Close releases the database.
func (s *DuckDBSource) Close() error {
	return s.db.Close()
}

// Load implements Source.
func (s *DuckDBSource) Load(ctx context.Context) ([]recommend.BottleRecord, error) {
	query := fmt.Sprintf(`SELECT
		CAST(id AS VARCHAR), name, distillery, region, style, country,
		CAST(flavor_profile AS VARCHAR), price, age, abv, rarity
	FROM %s
	ORDER BY id`, s.table)

	start := time.Now()
	records, err := s.load(ctx, query)
	metrics.RecordDBQuery("select", s.table, time.Since(start), err)
	return records, err
}

func (s *DuckDBSource) load(ctx context.Context, query string) ([]recommend.BottleRecord, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", s.table, err)
	}
	defer rows.Close()

	var records []recommend.BottleRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", s.table, err)
	}
	return records, nil
}

func scanRecord(rows *sql.Rows) (recommend.BottleRecord, error) {
	var (
		id                                       string
		name, distillery, region, style, country sql.NullString
		flavor                                   sql.NullString
		price, abv, rarity                       sql.NullFloat64
		age                                      sql.NullInt64
	)
	if err := rows.Scan(&id, &name, &distillery, &region, &style, &country, &flavor, &price, &age, &abv, &rarity); err != nil {
		return recommend.BottleRecord{}, fmt.Errorf("failed to scan bottle row: %w", err)
	}

	rec := recommend.BottleRecord{
		ID:         id,
		Name:       name.String,
		Distillery: distillery.String,
		Region:     region.String,
		Style:      style.String,
		Country:    country.String,
		Price:      nullFloat(price),
		ABV:        nullFloat(abv),
		Rarity:     nullFloat(rarity),
	}
	if age.Valid {
		a := int(age.Int64)
		rec.Age = &a
	}
	if flavor.Valid && flavor.String != "" {
		if err := json.Unmarshal([]byte(flavor.String), &rec.Flavor); err != nil {
			return recommend.BottleRecord{}, &recommend.DataIntegrityError{
				BottleID: id,
				Field:    "flavor",
				Reason:   fmt.Sprintf("flavor_profile is not a JSON object: %v", err),
			}
		}
	}
	return rec, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
