// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered on the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:3857/metrics

# Available Metrics

Dataset Metrics:
  - dataset_load_duration_seconds: full load time (histogram)
    Labels: source (csv, parquet, duckdb, postgres, mysql, mongodb)
  - dataset_load_errors_total: failed loads (counter)
    Labels: source, error_type
  - dataset_rows: rows in the loaded table (gauge)
  - dataset_rejected_rows_total: rows dropped by boundary validation (counter)
  - dataset_last_load_timestamp: unix time of the last good load (gauge)

Aggregation Metrics:
  - aggregation_duration_seconds: per aggregator run (histogram)
    Labels: aggregator (daily, products_revenue, rfm, segments, geo, ...)

API Metrics:
  - api_requests_total (counter), labels: method, endpoint, status_code
  - api_request_duration_seconds (histogram), labels: method, endpoint
  - api_active_requests (gauge)
  - api_rate_limit_hits_total (counter)

Cache Metrics:
  - cache_hits_total / cache_misses_total, labels: cache_type
  - cache_entries, cache_evictions_total

WebSocket Metrics:
  - websocket_connections_active (gauge)
  - websocket_messages_sent_total / websocket_messages_received_total
  - websocket_errors_total, labels: error_type

Circuit Breaker Metrics:
  - circuit_breaker_state (0=closed, 1=half-open, 2=open)
  - circuit_breaker_requests_total, labels: name, result
  - circuit_breaker_state_transitions_total

# Example Alerts

	groups:
	  - name: marketscope
	    rules:
	      - alert: DatasetLoadFailing
	        expr: increase(dataset_load_errors_total[15m]) > 0
	        for: 5m

	      - alert: CircuitBreakerOpen
	        expr: circuit_breaker_state > 0
	        for: 2m
	        annotations:
	          summary: "Circuit breaker open for {{ $labels.name }}"

# See Also

  - internal/middleware: HTTP middleware with metrics integration
  - internal/database: dataset load metrics
  - internal/analytics: aggregation timing
*/
package metrics
