// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"sort"

	"github.com/tomtom215/marketscope/internal/models"
)

// Dimension is the grouping key of a ranking.
type Dimension string

const (
	ByProduct Dimension = "product"
	ByState   Dimension = "state"
)

// Metric is the measure summed by a ranking.
type Metric string

const (
	// MetricRevenue sums payment value.
	MetricRevenue Metric = "revenue"
	// MetricItems sums the order-item column.
	MetricItems Metric = "items"
)

// Rank groups rows by dim, sums metric per group and sorts descending.
// Ties are broken by key ascending; an empty key groups as "unknown".
func Rank(rows []models.Transaction, dim Dimension, metric Metric) []models.RankEntry {
	totals := make(map[string]float64)
	for i := range rows {
		tx := &rows[i]
		var key string
		if dim == ByState {
			key = tx.CustomerState
		} else {
			key = tx.ProductCategory
		}
		if metric == MetricItems {
			totals[keyOr(key)] += float64(tx.ItemQuantity)
		} else {
			totals[keyOr(key)] += tx.PaymentValue
		}
	}

	out := make([]models.RankEntry, 0, len(totals))
	for k, v := range totals {
		out = append(out, models.RankEntry{Key: k, Value: v})
	}
	sortRanking(out)
	return out
}

func sortRanking(entries []models.RankEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
}

// ProductsByRevenue ranks product categories by revenue.
func ProductsByRevenue(rows []models.Transaction) []models.RankEntry {
	return Rank(rows, ByProduct, MetricRevenue)
}

// ProductsByItems ranks product categories by item volume.
func ProductsByItems(rows []models.Transaction) []models.RankEntry {
	return Rank(rows, ByProduct, MetricItems)
}

// StatesByRevenue ranks customer states by revenue.
func StatesByRevenue(rows []models.Transaction) []models.RankEntry {
	return Rank(rows, ByState, MetricRevenue)
}

// StatesByItems ranks customer states by item volume.
func StatesByItems(rows []models.Transaction) []models.RankEntry {
	return Rank(rows, ByState, MetricItems)
}

// TopN returns a copy of the first n entries of a descending ranking.
func TopN(entries []models.RankEntry, n int) []models.RankEntry {
	if n <= 0 {
		return []models.RankEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]models.RankEntry, n)
	copy(out, entries[:n])
	return out
}

// BottomN returns a copy of the last n entries of a descending ranking,
// still in descending order.
func BottomN(entries []models.RankEntry, n int) []models.RankEntry {
	if n <= 0 {
		return []models.RankEntry{}
	}
	if n > len(entries) {
		n = len(entries)
	}
	out := make([]models.RankEntry, n)
	copy(out, entries[len(entries)-n:])
	return out
}

// CustomersByState counts distinct customer ids per state, count descending
// and ties by state ascending.
func CustomersByState(rows []models.Transaction) []models.StateCustomers {
	states := make(map[string]map[string]struct{})
	for i := range rows {
		tx := &rows[i]
		state := keyOr(tx.CustomerState)
		set, ok := states[state]
		if !ok {
			set = make(map[string]struct{})
			states[state] = set
		}
		set[keyOr(tx.CustomerID)] = struct{}{}
	}

	out := make([]models.StateCustomers, 0, len(states))
	for state, set := range states {
		out = append(out, models.StateCustomers{State: state, CustomerCount: len(set)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CustomerCount != out[j].CustomerCount {
			return out[i].CustomerCount > out[j].CustomerCount
		}
		return out[i].State < out[j].State
	})
	return out
}
