// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package cache provides a small thread-safe LRU cache with TTL expiry.

The API layer keeps collection analyses here. Keys are built with
GenerateKey from the username, the bar's last update and the catalog
snapshot version, so a changed bar or a refreshed catalog never hits a
stale entry; the TTL and capacity only bound memory.

# Usage

	c := cache.New[*recommend.AnalysisSummary](256, 10*time.Minute)
	key := cache.GenerateKey("analysis", params)
	if summary, ok := c.Get(key); ok {
	    return summary
	}
	c.Set(key, summary)

Expired entries are removed on Get or evicted once the cache is full. There
is no background goroutine. Stats feeds the health endpoint.
*/
package cache
