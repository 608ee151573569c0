// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/models"
)

// Dataset returns the loaded dataset's source, row count and date bounds.
// The bounds seed the dashboard's date picker.
func (h *Handler) Dataset(w http.ResponseWriter, r *http.Request) {
	table := h.Table()
	if table == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeService, "No dataset loaded", nil)
		return
	}

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   table.Info(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// ReloadDataset reloads the full dataset from its source, clears the result
// cache and notifies WebSocket clients. A failed reload keeps serving the
// previous dataset and answers 502 SOURCE_ERROR.
func (h *Handler) ReloadDataset(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	table, err := h.Reload(r.Context())
	if err != nil {
		if errors.Is(err, ErrNoLoader) {
			respondError(w, http.StatusServiceUnavailable, ErrCodeService, "Dataset reload is not configured", nil)
			return
		}
		respondError(w, http.StatusBadGateway, ErrCodeSource, "Failed to reload dataset", err)
		return
	}

	logging.Ctx(r.Context()).Info().
		Int("rows", table.Len()).
		Dur("duration", time.Since(start)).
		Msg("Dataset reloaded")

	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   table.Info(),
		Metadata: models.Metadata{
			Timestamp:   time.Now(),
			QueryTimeMS: time.Since(start).Milliseconds(),
		},
	})
}
