// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/marketscope/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router for handler using mw for CORS and rate limits.
// A nil mw uses DefaultChiMiddlewareConfig.
func NewRouter(handler *Handler, mw *ChiMiddleware) *Router {
	if mw == nil {
		mw = NewChiMiddleware(nil)
	}
	return &Router{handler: handler, chiMiddleware: mw}
}

// SetupChi configures all HTTP routes.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to every route in order
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.AccessLog(middleware.DefaultSlowRequestThreshold))
	r.Use(router.chiMiddleware.CORS()) // global so OPTIONS preflight is answered

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found", nil)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed", nil)
	})

	// Health Endpoints
	r.Route("/api/v1/health", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom("health", RateLimitHealth))
		r.Use(APISecurityHeaders())
		r.Get("/", router.handler.Health)
		r.Get("/live", router.handler.HealthLive)
		r.Get("/ready", router.handler.HealthReady)
	})

	// Dataset Endpoints
	r.Route("/api/v1/dataset", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit("dataset"))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)

		r.Get("/", router.handler.Dataset)
		r.With(router.chiMiddleware.RateLimitCustom("reload", RateLimitReload)).
			Post("/reload", router.handler.ReloadDataset)
	})

	// Analytics Endpoints
	r.Route("/api/v1/analytics", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimitCustom("analytics", RateLimitAnalytics))
		r.Use(APISecurityHeaders())
		r.Use(middleware.PrometheusMetrics)
		r.Use(middleware.Compression)

		r.Get("/daily", router.handler.AnalyticsDaily)
		r.Get("/summary", router.handler.AnalyticsSummary)
		r.Get("/products", router.handler.AnalyticsProducts)
		r.Get("/products/top", router.handler.AnalyticsProductsTop)
		r.Get("/products/bottom", router.handler.AnalyticsProductsBottom)
		r.Get("/states", router.handler.AnalyticsStates)
		r.Get("/customers-by-state", router.handler.AnalyticsCustomersByState)
		r.Get("/payments", router.handler.AnalyticsPayments)
		r.Get("/rfm", router.handler.AnalyticsRFM)
		r.Get("/rfm/top", router.handler.AnalyticsRFMTop)
		r.Get("/segments", router.handler.AnalyticsSegments)
		r.Get("/segments/criteria", router.handler.AnalyticsSegmentCriteria)
		r.Get("/geo", router.handler.AnalyticsGeo)
		r.Get("/dashboard", router.handler.AnalyticsDashboard)
	})

	// WebSocket
	r.With(router.chiMiddleware.RateLimitCustom("websocket", RateLimitWebSocket)).
		Get("/api/v1/ws", router.handler.WebSocket)

	// Prometheus
	r.Handle("/metrics", promhttp.Handler())

	return r
}
