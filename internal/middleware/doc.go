// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package middleware provides the HTTP middleware of the Marketscope API.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation and logging context
  - AccessLog: per-request debug log, warn for slow requests
  - PrometheusMetrics: api_* request metrics labelled by chi route pattern
  - Compression: gzip for clients that accept it

The router applies them in this order:

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(0))
	r.Use(middleware.Compression)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    ...
	})

CORS and rate limiting come from go-chi/cors and go-chi/httprate and are
configured in the api package.
*/
package middleware
