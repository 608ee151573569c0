// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"github.com/tomtom215/marketscope/internal/models"
)

// Filter keeps the rows whose purchase day lies in r, preserving input order.
// It works on unsorted input; Table.Select is the fast path for loaded tables.
func Filter(rows []models.Transaction, r DateRange) []models.Transaction {
	out := make([]models.Transaction, 0)
	if r.Empty() {
		return out
	}
	for i := range rows {
		if r.Contains(rows[i].PurchasedAt) {
			out = append(out, rows[i])
		}
	}
	return out
}
