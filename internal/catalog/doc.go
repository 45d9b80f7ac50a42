// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package catalog loads the bottle catalog and serves immutable snapshots of it.

A Source produces raw records: FileSource reads a JSON document and
DuckDBSource queries a DuckDB table or view. Store.Refresh loads from the
source, validates through recommend.NewCatalog and atomically swaps the
snapshot. A failed refresh keeps the previous snapshot, so readers always
see a complete, validated catalog.

	store := catalog.NewStore(catalog.NewFileSource("/data/catalog.json"), logger)
	if err := store.Refresh(ctx); err != nil {
		return err
	}
	snap := store.Current()
	page := catalog.Query(snap.Catalog, catalog.Criteria{Region: "Islay"})

Periodic refresh is driven by services.CatalogService under the supervisor.
*/
package catalog
