// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package config loads Barkeep's configuration with koanf.

Sources are layered, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. An optional YAML file: $CONFIG_PATH, else the first of DefaultConfigPaths
 3. Environment variables, mapped through envMappings

A minimal file:

	server:
	  port: 8420
	catalog:
	  source: file
	  path: /data/catalog.json
	  refresh_interval: 15m
	store:
	  path: /data/bars
	recommend:
	  default_k: 5
	  region_cap: 2

The same settings through the environment:

	HTTP_PORT=8420 CATALOG_PATH=/data/catalog.json STORE_PATH=/data/bars

Comma-separated variables such as CORS_ORIGINS become lists.
*/
package config
