// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"net/http"

	"github.com/tomtom215/marketscope/internal/logging"
	ws "github.com/tomtom215/marketscope/internal/websocket"
)

// WebSocket upgrades the connection and hands it to the hub. Clients then
// send subscribe_range messages to receive dashboards.
func (h *Handler) WebSocket(w http.ResponseWriter, r *http.Request) {
	if h.wsHub == nil {
		logging.Warn().Msg("WebSocket connection rejected: hub not initialized")
		respondError(w, http.StatusServiceUnavailable, ErrCodeService, "WebSocket service unavailable", nil)
		return
	}

	upgrader := h.getUpgrader()
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written an HTTP error.
		logging.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	client := ws.NewClient(h.wsHub, conn)
	if !h.wsHub.Join(client) {
		logging.Warn().Msg("WebSocket connection rejected: hub stopped")
		_ = conn.Close()
		return
	}
	client.Start()
}
