// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"sort"
	"time"

	"github.com/tomtom215/marketscope/internal/models"
)

// DefaultRFMTopN is the size of each RFM leaderboard.
const DefaultRFMTopN = 5

type customerAgg struct {
	monetary float64
	orders   map[string]struct{}
	lastDay  time.Time
}

// aggregateCustomers folds rows into per-customer totals and returns the
// latest purchase day across all rows.
func aggregateCustomers(rows []models.Transaction) (map[string]*customerAgg, time.Time) {
	customers := make(map[string]*customerAgg)
	var globalMax time.Time
	for i := range rows {
		tx := &rows[i]
		id := keyOr(tx.CustomerID)
		c, ok := customers[id]
		if !ok {
			c = &customerAgg{orders: make(map[string]struct{})}
			customers[id] = c
		}
		c.monetary += tx.PaymentValue
		c.orders[tx.OrderID] = struct{}{}
		day := DayOf(tx.PurchasedAt)
		if day.After(c.lastDay) {
			c.lastDay = day
		}
		if day.After(globalMax) {
			globalMax = day
		}
	}
	return customers, globalMax
}

// RFM scores every customer in rows.
//
//   - monetary: sum of payment value
//   - frequency: distinct order ids
//   - recency: whole days from the customer's last purchase day to the latest
//     purchase day of the whole input
//
// The result is sorted by customer id ascending.
func RFM(rows []models.Transaction) []models.RFMRow {
	customers, globalMax := aggregateCustomers(rows)

	out := make([]models.RFMRow, 0, len(customers))
	for id, c := range customers {
		out = append(out, models.RFMRow{
			CustomerID: id,
			Monetary:   c.monetary,
			Frequency:  len(c.orders),
			Recency:    daysBetween(c.lastDay, globalMax),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CustomerID < out[j].CustomerID })
	return out
}

// daysBetween counts whole days from a to b. Both are UTC midnights.
func daysBetween(a, b time.Time) int {
	days := int(b.Sub(a).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

// TopRFM builds the three leaderboards: lowest recency, highest frequency and
// highest monetary. Ties are broken by customer id ascending. A customer may
// appear in more than one leaderboard.
func TopRFM(rfm []models.RFMRow, n int) models.RFMTop {
	return models.RFMTop{
		ByRecency: topBy(rfm, n, func(a, b models.RFMRow) bool {
			return a.Recency < b.Recency
		}, func(a, b models.RFMRow) bool { return a.Recency == b.Recency }),
		ByFrequency: topBy(rfm, n, func(a, b models.RFMRow) bool {
			return a.Frequency > b.Frequency
		}, func(a, b models.RFMRow) bool { return a.Frequency == b.Frequency }),
		ByMonetary: topBy(rfm, n, func(a, b models.RFMRow) bool {
			return a.Monetary > b.Monetary
		}, func(a, b models.RFMRow) bool { return a.Monetary == b.Monetary }),
	}
}

func topBy(rfm []models.RFMRow, n int, better, equal func(a, b models.RFMRow) bool) []models.RFMRow {
	sorted := make([]models.RFMRow, len(rfm))
	copy(sorted, rfm)
	sort.Slice(sorted, func(i, j int) bool {
		if !equal(sorted[i], sorted[j]) {
			return better(sorted[i], sorted[j])
		}
		return sorted[i].CustomerID < sorted[j].CustomerID
	})
	if n < 0 {
		n = 0
	}
	if n < len(sorted) {
		sorted = sorted[:n]
	}
	return sorted
}
