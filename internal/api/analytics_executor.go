// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/cache"
	"github.com/tomtom215/marketscope/internal/logging"
	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/models"
	"github.com/tomtom215/marketscope/internal/validation"
)

// AnalyticsQueryExecutor encapsulates the cache-first flow shared by every
// analytics handler:
//
//  1. Resolve the date range against the current table
//  2. Check the cache for a result computed from the same table
//  3. Run the aggregation on a miss and cache the result
//  4. Respond with JSON including query time and cached status
//
// Example usage:
//
//	h.executor.Execute(w, r, "daily", req, nil, rowsQuery(func(rows []models.Transaction) any {
//	    return analytics.DailyOrders(rows)
//	}))
type AnalyticsQueryExecutor struct {
	handler *Handler
}

// NewAnalyticsQueryExecutor creates a new analytics query executor instance.
func NewAnalyticsQueryExecutor(h *Handler) *AnalyticsQueryExecutor {
	return &AnalyticsQueryExecutor{handler: h}
}

// AnalyticsQueryFunc computes one result over the rows of table inside dr.
// The result must be JSON-serializable; it is cached and shared between
// requests, so it must not be modified after return.
type AnalyticsQueryFunc func(ctx context.Context, table *analytics.Table, dr analytics.DateRange) (any, error)

// rowsQuery adapts a pure aggregator over the selected rows.
func rowsQuery(fn func(rows []models.Transaction) any) AnalyticsQueryFunc {
	return func(_ context.Context, table *analytics.Table, dr analytics.DateRange) (any, error) {
		return fn(table.Select(dr)), nil
	}
}

// buildDashboard is the AnalyticsQueryFunc behind the dashboard endpoint
// and WebSocket subscriptions.
func buildDashboard(ctx context.Context, table *analytics.Table, dr analytics.DateRange) (any, error) {
	return analytics.BuildDashboard(ctx, table, dr)
}

// queryKey identifies a cached result. Dataset pins it to one loaded table
// so a result computed during a reload cannot outlive the old table.
type queryKey struct {
	Dataset int64  `json:"dataset"`
	Start   string `json:"start"`
	End     string `json:"end"`
	Params  any    `json:"params,omitempty"`
}

// Execute runs fn for the request's range and writes the response.
//
// Cache hits return with Cached set and no query time. A missing dataset
// is 503 SERVICE_ERROR; an aggregation failure is 500 SERVICE_ERROR.
func (e *AnalyticsQueryExecutor) Execute(
	w http.ResponseWriter,
	r *http.Request,
	name string,
	req validation.RangeRequest,
	params any,
	fn AnalyticsQueryFunc,
) {
	table := e.handler.Table()
	if table == nil {
		respondError(w, http.StatusServiceUnavailable, ErrCodeService, "No dataset loaded", nil)
		return
	}

	dr, err := resolveRange(table, req)
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeValidation, "Invalid date range", err)
		return
	}
	ctx := logging.ContextWithDateRange(r.Context(), dr.StartString(), dr.EndString())

	start := time.Now()
	data, cached, err := e.run(ctx, table, name, dr, params, fn)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeService,
			fmt.Sprintf("Failed to compute %s", name), err)
		return
	}

	meta := models.Metadata{Timestamp: time.Now()}
	if cached {
		meta.Cached = true
	} else {
		meta.QueryTimeMS = time.Since(start).Milliseconds()
	}
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status:   "success",
		Data:     data,
		Metadata: meta,
	})
}

// run returns the cached result for (name, table, dr, params) or computes
// and caches it. The bool reports a cache hit.
func (e *AnalyticsQueryExecutor) run(
	ctx context.Context,
	table *analytics.Table,
	name string,
	dr analytics.DateRange,
	params any,
	fn AnalyticsQueryFunc,
) (any, bool, error) {
	c := e.handler.cache
	key := cache.GenerateKey(name, queryKey{
		Dataset: table.LoadedAt().UnixNano(),
		Start:   dr.StartString(),
		End:     dr.EndString(),
		Params:  params,
	})

	if c != nil {
		if cached, found := c.Get(key); found {
			return cached, true, nil
		}
	}

	start := time.Now()
	data, err := fn(ctx, table, dr)
	if err != nil {
		return nil, false, err
	}
	elapsed := time.Since(start)
	metrics.RecordAggregation(name, elapsed)

	if c != nil {
		c.Set(key, data)
	}

	logging.Ctx(ctx).Debug().
		Str("query", name).
		Dur("duration", elapsed).
		Msg("Analytics query executed")

	return data, false, nil
}
