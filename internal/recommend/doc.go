// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

// Package recommend implements the bottle recommendation engine.
//
// # Architecture
//
// A recommendation call runs through four stages over an immutable catalog
// snapshot:
//
//   - Profile Builder: aggregates the owned bottles into a weighted preference profile
//   - Candidate Filter: drops owned bottles and applies a relaxable price ceiling
//   - Scorer: weighted sum of flavor, affinity, price, age and rarity sub-scores
//   - Ranker: deterministic sort, region diversity pass, reason rendering
//
// The Collection Analyzer consumes the same profile to summarise a bar and
// report flavor gap dimensions. Gap dimensions can be passed back through
// Request.Emphasize on a follow-up call; the analyzer and scorer are never
// coupled directly.
//
// # Design Principles
//
//   - Deterministic: identical inputs produce identical ordering and reasons
//   - Stateless: profiles, scores and summaries live for one call only
//   - Snapshot-driven: catalog refresh happens outside the engine; callers
//     hand each call a *Catalog that is never mutated after construction
//   - Tunable: every weight, floor and threshold lives in Config
//
// # Usage
//
//	catalog, err := recommend.NewCatalog(records)
//	if err != nil {
//	    var integrity *recommend.DataIntegrityError
//	    if errors.As(err, &integrity) {
//	        log.Printf("bad bottle %s", integrity.BottleID)
//	    }
//	    return err
//	}
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), logger)
//	if err != nil {
//	    return err
//	}
//
//	profile := engine.BuildProfile(ctx, owned, catalog)
//	recs, err := engine.Recommend(ctx, recommend.Request{
//	    Profile: profile,
//	    Catalog: catalog,
//	    Owned:   recommend.OwnedIDs(owned),
//	    K:       5,
//	})
//
// # Thread Safety
//
// Engine holds only read-only configuration and may be shared across
// goroutines. Catalog is immutable after NewCatalog returns.
package recommend
