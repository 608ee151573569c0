// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"sort"

	"github.com/tomtom215/marketscope/internal/models"
)

type dayBucket struct {
	orders  map[string]struct{}
	revenue float64
}

// DailyOrders groups rows by purchase day. order_count is the number of
// distinct order ids that day and revenue sums every row's payment value.
// Days without rows are omitted; the result is in ascending date order.
func DailyOrders(rows []models.Transaction) []models.DailyOrders {
	buckets := make(map[string]*dayBucket)
	for i := range rows {
		tx := &rows[i]
		day := DayOf(tx.PurchasedAt).Format(models.DateLayout)
		b, ok := buckets[day]
		if !ok {
			b = &dayBucket{orders: make(map[string]struct{})}
			buckets[day] = b
		}
		b.orders[tx.OrderID] = struct{}{}
		b.revenue += tx.PaymentValue
	}

	out := make([]models.DailyOrders, 0, len(buckets))
	for day, b := range buckets {
		out = append(out, models.DailyOrders{
			Date:       day,
			OrderCount: len(b.orders),
			Revenue:    b.revenue,
		})
	}
	// YYYY-MM-DD sorts chronologically as a string.
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
