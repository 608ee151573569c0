// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package models

// DailyOrders is one day of the order/revenue time series.
type DailyOrders struct {
	Date       string  `json:"date" yaml:"date"`
	OrderCount int     `json:"order_count" yaml:"order_count"`
	Revenue    float64 `json:"revenue" yaml:"revenue"`
}

// RankEntry is one group of a product or state ranking.
type RankEntry struct {
	Key   string  `json:"key" yaml:"key"`
	Value float64 `json:"value" yaml:"value"`
}

// StateCustomers is the distinct customer count of one state.
type StateCustomers struct {
	State         string `json:"state" yaml:"state"`
	CustomerCount int    `json:"customer_count" yaml:"customer_count"`
}

// PaymentRow is one state of a payment matrix. Values is aligned with the
// matrix Columns.
type PaymentRow struct {
	State  string    `json:"state" yaml:"state"`
	Values []float64 `json:"values" yaml:"values"`
}

// PaymentMatrix cross-tabulates states against payment types.
type PaymentMatrix struct {
	Columns []PaymentType `json:"columns" yaml:"columns"`
	Rows    []PaymentRow  `json:"rows" yaml:"rows"`
}

// RFMRow is the recency/frequency/monetary score of one customer.
// Recency is in whole days relative to the latest purchase date of the
// filtered set.
type RFMRow struct {
	CustomerID string  `json:"customer_id" yaml:"customer_id"`
	Monetary   float64 `json:"monetary" yaml:"monetary"`
	Frequency  int     `json:"frequency" yaml:"frequency"`
	Recency    int     `json:"recency" yaml:"recency"`
}

// RFMTop holds the three top-N customer views.
type RFMTop struct {
	ByRecency   []RFMRow `json:"by_recency" yaml:"by_recency"`
	ByFrequency []RFMRow `json:"by_frequency" yaml:"by_frequency"`
	ByMonetary  []RFMRow `json:"by_monetary" yaml:"by_monetary"`
}

// SegmentCount is the number of customers in one spending category.
type SegmentCount struct {
	Category string `json:"category" yaml:"category"`
	Count    int    `json:"count" yaml:"count"`
}

// SegmentCriterion describes the monetary range of a spending category.
// Max is nil for the open-ended top bucket.
type SegmentCriterion struct {
	Category string   `json:"category" yaml:"category"`
	Min      float64  `json:"min" yaml:"min"`
	Max      *float64 `json:"max" yaml:"max"`
}

// GeoPoint is a unique customer location with the number of rows sharing it.
type GeoPoint struct {
	Lat   float64 `json:"lat" yaml:"lat"`
	Lng   float64 `json:"lng" yaml:"lng"`
	City  string  `json:"city" yaml:"city"`
	State string  `json:"state" yaml:"state"`
	Count int     `json:"count" yaml:"count"`
}

// MapView is the initial viewport suggested for a set of points.
type MapView struct {
	CenterLat float64 `json:"center_lat" yaml:"center_lat"`
	CenterLng float64 `json:"center_lng" yaml:"center_lng"`
	Zoom      int     `json:"zoom" yaml:"zoom"`
}

// GeoResult bundles the map markers with their viewport.
type GeoResult struct {
	Points []GeoPoint `json:"points" yaml:"points"`
	View   MapView    `json:"view" yaml:"view"`
}

// Summary holds the headline metrics for a range.
type Summary struct {
	TotalOrders    int     `json:"total_orders" yaml:"total_orders"`
	TotalRevenue   float64 `json:"total_revenue" yaml:"total_revenue"`
	TotalCustomers int     `json:"total_customers" yaml:"total_customers"`
	Rows           int     `json:"rows" yaml:"rows"`
}

// RangeInfo echoes the applied date range.
type RangeInfo struct {
	StartDate string `json:"start_date" yaml:"start_date"`
	EndDate   string `json:"end_date" yaml:"end_date"`
}

// Dashboard is every derived table for one date range.
type Dashboard struct {
	Range             RangeInfo        `json:"range" yaml:"range"`
	Summary           Summary          `json:"summary" yaml:"summary"`
	Daily             []DailyOrders    `json:"daily" yaml:"daily"`
	ProductsByRevenue []RankEntry      `json:"products_by_revenue" yaml:"products_by_revenue"`
	ProductsByItems   []RankEntry      `json:"products_by_items" yaml:"products_by_items"`
	StatesByRevenue   []RankEntry      `json:"states_by_revenue" yaml:"states_by_revenue"`
	StatesByItems     []RankEntry      `json:"states_by_items" yaml:"states_by_items"`
	CustomersByState  []StateCustomers `json:"customers_by_state" yaml:"customers_by_state"`
	PaymentValue      PaymentMatrix    `json:"payment_value" yaml:"payment_value"`
	PaymentCount      PaymentMatrix    `json:"payment_count" yaml:"payment_count"`
	RFMTop            RFMTop           `json:"rfm_top" yaml:"rfm_top"`
	Segments          []SegmentCount   `json:"segments" yaml:"segments"`
	Geo               GeoResult        `json:"geo" yaml:"geo"`
}
