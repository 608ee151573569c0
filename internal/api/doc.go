// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package api provides the HTTP interface of the dashboard service.

Handlers are organized by concern:

  - handlers.go: Handler struct, dataset swap, reload and WebSocket origin checks
  - handlers_helpers.go: response envelope and query parameter helpers
  - handlers_health.go: health, liveness and readiness probes
  - handlers_dataset.go: dataset bounds and manual reload
  - handlers_analytics.go: one endpoint per aggregator plus the dashboard
  - handlers_websocket.go: WebSocket upgrade
  - analytics_executor.go: cache-first execution shared by analytics handlers
  - chi_middleware.go, chi_router.go: go-chi routing, CORS and rate limiting

Every analytics endpoint accepts start_date and end_date (YYYY-MM-DD). Either
may be omitted, in which case it defaults to the matching bound of the loaded
dataset. A start date after the end date is not an error; it selects nothing
and every table comes back empty.

Responses use the models.APIResponse envelope:

	{
	  "status": "success",
	  "data": {...},
	  "metadata": {"timestamp": "...", "query_time_ms": 3, "cached": false}
	}

Results are cached per endpoint, range and parameters in a TTL cache that is
cleared whenever the dataset is reloaded.

The loaded dataset is held in an atomic pointer. A reload builds a complete
new table and swaps it in, so in-flight requests finish against the table
they started with.
*/
package api
