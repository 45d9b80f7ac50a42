// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package api serves the Barkeep HTTP API.

Routing uses go-chi/chi with go-chi/cors for CORS and go-chi/httprate for
per-IP rate limiting. Every response uses the same envelope:

	{
	  "status": "success",
	  "data": { ... },
	  "metadata": {"timestamp": "...", "request_id": "..."}
	}

Errors carry an "error" object with a machine-readable code:

	VALIDATION_ERROR      400  malformed body, bad parameters, unknown flavor
	NOT_FOUND             404  unknown bottle, user without a stored bar
	FORBIDDEN             403  token does not match the requested user
	CATALOG_ERROR         500  the catalog failed integrity checks
	CATALOG_UNAVAILABLE   503  no catalog has been loaded yet
	UPSTREAM_UNAVAILABLE  503  bar API breaker open or sync disabled

Endpoints:

	GET    /api/v1/health                         liveness plus catalog state
	GET    /api/v1/health/live
	GET    /api/v1/health/ready                   503 until a catalog is loaded
	GET    /api/v1/bottles                        filtered, paged listing
	GET    /api/v1/bottles/facets                 regions, styles, price range
	GET    /api/v1/bottles/{bottleID}
	GET    /api/v1/users/{username}/bar
	PUT    /api/v1/users/{username}/bar
	DELETE /api/v1/users/{username}/bar
	POST   /api/v1/users/{username}/bar/sync      pull from the bar API
	GET    /api/v1/users/{username}/analysis
	GET    /api/v1/users/{username}/recommendations/history
	POST   /api/v1/recommendations
	GET    /metrics

With JWT auth, the /users/{username} routes are guarded by an
auth.Authorizer (internal/authz) that admits the owner and admins. Analyses
are cached per user, bar update and catalog version.
*/
package api
