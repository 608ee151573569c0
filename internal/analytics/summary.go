// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"github.com/tomtom215/marketscope/internal/models"
)

// Summarize computes the headline metrics for rows.
func Summarize(rows []models.Transaction) models.Summary {
	return summarizeWithDaily(rows, DailyOrders(rows))
}

// summarizeWithDaily reuses an already computed daily series. TotalOrders is
// the sum of the daily distinct-order counts.
func summarizeWithDaily(rows []models.Transaction, daily []models.DailyOrders) models.Summary {
	s := models.Summary{Rows: len(rows)}
	for _, d := range daily {
		s.TotalOrders += d.OrderCount
		s.TotalRevenue += d.Revenue
	}
	customers := make(map[string]struct{})
	for i := range rows {
		customers[keyOr(rows[i].CustomerID)] = struct{}{}
	}
	s.TotalCustomers = len(customers)
	return s
}
