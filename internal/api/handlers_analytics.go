// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/marketscope/internal/analytics"
	"github.com/tomtom215/marketscope/internal/models"
	"github.com/tomtom215/marketscope/internal/validation"
)

// rankingParams keys cached rankings.
type rankingParams struct {
	Metric string `json:"metric"`
	Limit  int    `json:"limit,omitempty"`
}

// parseRange reads and validates the date range shared by every endpoint.
func parseRange(w http.ResponseWriter, r *http.Request) (validation.RangeRequest, bool) {
	req := rangeRequest(r)
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return req, false
	}
	return req, true
}

// parseRanking reads the range and metric (revenue or items).
func parseRanking(w http.ResponseWriter, r *http.Request) (validation.RankingRequest, bool) {
	req := validation.RankingRequest{
		RangeRequest: rangeRequest(r),
		Metric:       stringParam(r, "metric", validation.MetricRevenue),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return req, false
	}
	return req, true
}

// parseRankingLimit reads the range, metric and limit.
func parseRankingLimit(w http.ResponseWriter, r *http.Request, defaultLimit int) (validation.RankingLimitRequest, bool) {
	limit, apiErr := intParam(r, "limit", defaultLimit)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return validation.RankingLimitRequest{}, false
	}
	req := validation.RankingLimitRequest{
		RankingRequest: validation.RankingRequest{
			RangeRequest: rangeRequest(r),
			Metric:       stringParam(r, "metric", validation.MetricRevenue),
		},
		Limit: limit,
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return req, false
	}
	return req, true
}

// AnalyticsDaily returns order count and revenue per day, ascending by date.
func (h *Handler) AnalyticsDaily(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "daily", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.DailyOrders(rows)
	}))
}

// AnalyticsSummary returns the headline totals for the range.
func (h *Handler) AnalyticsSummary(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "summary", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.Summarize(rows)
	}))
}

// AnalyticsProducts returns every product category ranked by the metric.
func (h *Handler) AnalyticsProducts(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "products", analytics.ByProduct)
}

// AnalyticsStates returns every customer state ranked by the metric.
func (h *Handler) AnalyticsStates(w http.ResponseWriter, r *http.Request) {
	h.ranking(w, r, "states", analytics.ByState)
}

func (h *Handler) ranking(w http.ResponseWriter, r *http.Request, name string, dim analytics.Dimension) {
	req, ok := parseRanking(w, r)
	if !ok {
		return
	}
	metric := analytics.Metric(req.Metric)
	h.executor.Execute(w, r, name, req.RangeRequest, rankingParams{Metric: req.Metric},
		rowsQuery(func(rows []models.Transaction) any {
			return analytics.Rank(rows, dim, metric)
		}))
}

// AnalyticsProductsTop returns the head of the product ranking (default 15).
func (h *Handler) AnalyticsProductsTop(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRankingLimit(w, r, validation.DefaultTopLimit)
	if !ok {
		return
	}
	metric := analytics.Metric(req.Metric)
	h.executor.Execute(w, r, "products_top", req.RangeRequest, rankingParams{Metric: req.Metric, Limit: req.Limit},
		rowsQuery(func(rows []models.Transaction) any {
			return analytics.TopN(analytics.Rank(rows, analytics.ByProduct, metric), req.Limit)
		}))
}

// AnalyticsProductsBottom returns the tail of the product ranking (default
// 20), still in descending order.
func (h *Handler) AnalyticsProductsBottom(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRankingLimit(w, r, validation.DefaultBottomLimit)
	if !ok {
		return
	}
	metric := analytics.Metric(req.Metric)
	h.executor.Execute(w, r, "products_bottom", req.RangeRequest, rankingParams{Metric: req.Metric, Limit: req.Limit},
		rowsQuery(func(rows []models.Transaction) any {
			return analytics.BottomN(analytics.Rank(rows, analytics.ByProduct, metric), req.Limit)
		}))
}

// AnalyticsCustomersByState returns distinct customers per state.
func (h *Handler) AnalyticsCustomersByState(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "customers_by_state", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.CustomersByState(rows)
	}))
}

// AnalyticsPayments returns the state by payment type matrix, summing
// payment value (metric=value, the default) or counting rows (metric=count).
func (h *Handler) AnalyticsPayments(w http.ResponseWriter, r *http.Request) {
	req := validation.PaymentRequest{
		RangeRequest: rangeRequest(r),
		Metric:       stringParam(r, "metric", validation.MetricValue),
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	metric := analytics.PaymentMetric(req.Metric)
	h.executor.Execute(w, r, "payments", req.RangeRequest, rankingParams{Metric: req.Metric},
		rowsQuery(func(rows []models.Transaction) any {
			return analytics.PaymentMatrix(rows, metric)
		}))
}

// AnalyticsRFM returns recency, frequency and monetary value per customer.
func (h *Handler) AnalyticsRFM(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "rfm", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.RFM(rows)
	}))
}

// AnalyticsRFMTop returns the top customers by each RFM measure (default 5).
func (h *Handler) AnalyticsRFMTop(w http.ResponseWriter, r *http.Request) {
	limit, apiErr := intParam(r, "limit", validation.DefaultRFMTopLimit)
	if apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	req := validation.LimitRequest{RangeRequest: rangeRequest(r), Limit: limit}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondAPIError(w, apiErr)
		return
	}
	h.executor.Execute(w, r, "rfm_top", req.RangeRequest, rankingParams{Limit: req.Limit},
		rowsQuery(func(rows []models.Transaction) any {
			return analytics.TopRFM(analytics.RFM(rows), req.Limit)
		}))
}

// AnalyticsSegments returns customer counts per spending category.
func (h *Handler) AnalyticsSegments(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "segments", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.Segments(rows)
	}))
}

// AnalyticsSegmentCriteria returns the spending bucket boundaries. It does
// not depend on the dataset.
func (h *Handler) AnalyticsSegmentCriteria(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data:   analytics.SegmentCriteria(),
		Metadata: models.Metadata{
			Timestamp: time.Now(),
		},
	})
}

// AnalyticsGeo returns unique customer locations and the map view over them.
func (h *Handler) AnalyticsGeo(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "geo", req, nil, rowsQuery(func(rows []models.Transaction) any {
		return analytics.Geo(rows)
	}))
}

// AnalyticsDashboard returns every derived table for the range in one
// response.
func (h *Handler) AnalyticsDashboard(w http.ResponseWriter, r *http.Request) {
	req, ok := parseRange(w, r)
	if !ok {
		return
	}
	h.executor.Execute(w, r, "dashboard", req, nil, buildDashboard)
}
