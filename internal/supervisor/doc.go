// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package supervisor runs Barkeep's long-lived services under a suture tree.

	barkeep (root)
	├── data-layer
	│   └── catalog-refresh   periodic catalog reload
	└── api-layer
	    └── http-server       REST API

A crashing service is restarted with backoff without disturbing its
siblings; the HTTP server keeps answering from the last good catalog while
the refresher recovers. Supervisor events are logged through sutureslog,
backed by the zerolog slog adapter in package logging.

Service wrappers live in the services subpackage.
*/
package supervisor
