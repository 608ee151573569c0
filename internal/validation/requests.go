// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package validation

// DateLayout is the wire format of every date parameter.
const DateLayout = "2006-01-02"

// Metric values accepted by the ranking and payment endpoints.
const (
	MetricRevenue = "revenue"
	MetricItems   = "items"
	MetricValue   = "value"
	MetricCount   = "count"
)

// Ranking list sizes used when no limit is given.
const (
	DefaultTopLimit    = 15
	DefaultBottomLimit = 20
	DefaultRFMTopLimit = 5
	MaxLimit           = 100
)

// RangeRequest is the date range accepted by every analytics endpoint and by
// the WebSocket subscribe_range message. Empty dates default to the dataset
// bounds. A start after the end is valid and selects nothing.
type RangeRequest struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
}

// RankingRequest selects the product or state ranking metric.
type RankingRequest struct {
	RangeRequest
	Metric string `query:"metric" validate:"oneof=revenue items"`
}

// RankingLimitRequest is a RankingRequest with a head or tail length.
type RankingLimitRequest struct {
	RankingRequest
	Limit int `query:"limit" validate:"min=1,max=100"`
}

// PaymentRequest selects the payment breakdown metric.
type PaymentRequest struct {
	RangeRequest
	Metric string `query:"metric" validate:"oneof=value count"`
}

// LimitRequest bounds the number of rows in a list response.
type LimitRequest struct {
	RangeRequest
	Limit int `query:"limit" validate:"min=1,max=100"`
}
