// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/cache"
	"github.com/tomtom215/marketscope/internal/config"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/models"
	"github.com/tomtom215/marketscope/internal/validation"
	ws "github.com/tomtom215/marketscope/internal/websocket"
)

// DatasetLoader produces a fresh table. *database.Loader implements it.
type DatasetLoader interface {
	Load(ctx context.Context) (*analytics.Table, error)
}

// Handler contains dependencies for API handlers
//
// Handler methods are split across multiple files:
//   - handlers.go: Handler struct, constructor, dataset swap (this file)
//   - handlers_helpers.go: response and parameter helpers
//   - handlers_health.go: health and probe endpoints
//   - handlers_dataset.go: dataset info and reload
//   - handlers_analytics.go: analytics endpoints
//   - handlers_websocket.go: WebSocket upgrade
type Handler struct {
	table     atomic.Pointer[analytics.Table]
	loader    DatasetLoader
	config    *config.Config
	cache     *cache.Cache
	wsHub     *ws.Hub
	executor  *AnalyticsQueryExecutor
	startTime time.Time
	version   string

	// reloadMu serializes reloads; readers never take it.
	reloadMu sync.Mutex
}

// NewHandler creates a new API handler.
//
// The result cache is created when cfg.Cache.Enabled is set. When wsHub is
// non-nil the handler installs itself as the hub's dashboard provider so
// WebSocket range subscriptions share the HTTP cache.
func NewHandler(cfg *config.Config, loader DatasetLoader, wsHub *ws.Hub, version string) *Handler {
	h := &Handler{
		loader:    loader,
		config:    cfg,
		wsHub:     wsHub,
		startTime: time.Now(),
		version:   version,
	}
	if cfg != nil && cfg.Cache.Enabled {
		h.cache = cache.New("analytics", cfg.Cache.TTL)
	}
	h.executor = NewAnalyticsQueryExecutor(h)
	if wsHub != nil {
		wsHub.SetDashboardProvider(h)
	}
	return h
}

// Close stops the cache janitor.
func (h *Handler) Close() {
	if h.cache != nil {
		h.cache.Close()
	}
}

// Table returns the current dataset, or nil before the first load.
func (h *Handler) Table() *analytics.Table {
	return h.table.Load()
}

// SetTable installs t as the current dataset and invalidates cached results.
func (h *Handler) SetTable(t *analytics.Table) {
	h.table.Store(t)
	h.ClearCache()
}

// ClearCache invalidates all cached analytics data.
//
// Thread Safety: Safe for concurrent access.
func (h *Handler) ClearCache() {
	if h.cache != nil {
		h.cache.Clear()
		logging.Debug().Msg("Analytics cache cleared")
	}
}

// Reload loads the dataset again and swaps it in. On failure the previous
// table stays in place. Connected WebSocket clients are told about a
// successful reload.
func (h *Handler) Reload(ctx context.Context) (*analytics.Table, error) {
	if h.loader == nil {
		return nil, ErrNoLoader
	}

	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	table, err := h.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload failed: %w", err)
	}
	h.SetTable(table)

	if h.wsHub != nil {
		h.wsHub.BroadcastDatasetReloaded(table.Info())
	}
	return table, nil
}

// DashboardForRange implements websocket.DashboardProvider. It resolves the
// range against the current table and reuses the dashboard endpoint's cache.
func (h *Handler) DashboardForRange(ctx context.Context, req validation.RangeRequest) (*models.Dashboard, error) {
	table := h.Table()
	if table == nil {
		return nil, analytics.ErrNoDataset
	}
	dr, err := resolveRange(table, req)
	if err != nil {
		return nil, err
	}

	data, _, err := h.executor.run(ctx, table, "dashboard", dr, nil, buildDashboard)
	if err != nil {
		return nil, err
	}
	dashboard, ok := data.(*models.Dashboard)
	if !ok {
		return nil, fmt.Errorf("unexpected dashboard type %T", data)
	}
	return dashboard, nil
}

// getUpgrader creates a WebSocket upgrader with origin checking and a
// handshake timeout.
func (h *Handler) getUpgrader() websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:   1024,
		WriteBufferSize:  1024,
		CheckOrigin:      h.checkWebSocketOrigin,
		HandshakeTimeout: 10 * time.Second,
	}
}

// checkWebSocketOrigin validates WebSocket connection origins
func (h *Handler) checkWebSocketOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")

	// Browsers always send Origin on WebSocket upgrades.
	if origin == "" {
		logging.Warn().Msg("WebSocket connection rejected: missing Origin header")
		return false
	}

	// If config is nil, allow by default (tests/development)
	if h.config == nil {
		return true
	}

	for _, allowedOrigin := range h.config.Security.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			return true
		}
	}

	logging.Warn().Str("origin", sanitizeLogValue(origin)).Msg("WebSocket connection rejected from unauthorized origin")
	return false
}
