// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package main is the entry point for the Barkeep server.

Barkeep analyses whisky collections ("bars") and recommends bottles from a
catalog. The catalog is loaded from a JSON file or a DuckDB table and
refreshed in the background; bars, wishlists and recommendation history
live in BadgerDB.

# Application Architecture

The server runs under a Suture v4 supervisor tree:

	RootSupervisor ("barkeep")
	├── DataSupervisor ("data-layer")
	│   └── Catalog refresh service
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router)

Startup order:

 1. Configuration: Koanf v2 with defaults, config.yaml and environment
 2. Logging: zerolog with JSON or console output
 3. Catalog: file or DuckDB source, initial load
 4. Store: BadgerDB for bars and history
 5. Bar API client (optional): rate limited, behind a circuit breaker
 6. Authentication: JWT or none
 7. Supervisor tree: catalog refresh and HTTP server

# Token Issuance

With AUTH_MODE=jwt the server can mint tokens and exit:

	./barkeep -issue-token alice
	./barkeep -issue-token ops -role admin -ttl 720h

# Signal Handling

SIGINT and SIGTERM cancel the tree. The HTTP server drains in-flight
requests for SHUTDOWN_TIMEOUT before the store is closed.
*/
package main
