// Barkeep - Whisky Collection Analysis and Bottle Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/barkeep

/*
Package metrics declares Barkeep's Prometheus instruments.

Every instrument is registered on the default registry through promauto and
served by the /metrics endpoint. Callers use the Record* helpers instead of
touching the vectors directly so label sets stay consistent.

# Available Metrics

HTTP:
  - barkeep_api_requests_total{method,endpoint,status_code}
  - barkeep_api_request_duration_seconds{method,endpoint}
  - barkeep_api_active_requests
  - barkeep_api_rate_limit_hits_total{endpoint}

Recommendations:
  - barkeep_recommend_requests_total{mode,outcome}
  - barkeep_recommend_duration_seconds{mode}
  - barkeep_recommend_results
  - barkeep_analyses_total{outcome}

Catalog:
  - barkeep_catalog_bottles
  - barkeep_catalog_refresh_total{source,outcome}
  - barkeep_catalog_refresh_duration_seconds{source}
  - barkeep_catalog_last_refresh_timestamp_seconds
  - barkeep_duckdb_query_duration_seconds{operation,table}
  - barkeep_duckdb_query_errors_total{operation,table}

Storage and upstream:
  - barkeep_store_operation_duration_seconds{operation}
  - barkeep_store_errors_total{operation}
  - barkeep_bar_fetch_total{outcome}
  - barkeep_bar_fetch_duration_seconds
  - barkeep_circuit_breaker_state{name} (0 closed, 1 half-open, 2 open)
*/
package metrics
