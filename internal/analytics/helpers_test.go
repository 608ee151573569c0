// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"testing"
	"time"

	"github.com/tomtom215/marketscope/internal/models"
)

// day returns midnight UTC of the given date.
func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// txAt builds a transaction with the fields most aggregators read.
func txAt(order, customer string, at time.Time, value float64) models.Transaction {
	return models.Transaction{
		OrderID:         order,
		CustomerID:      customer,
		PurchasedAt:     at,
		ProductCategory: "bed_bath_table",
		ItemQuantity:    1,
		PaymentValue:    value,
		PaymentType:     models.PaymentCreditCard,
		CustomerState:   "SP",
	}
}

// scenarioRows is the reference dataset: A pays 30 on d1 and 40 on d2,
// B pays 100 on d2.
func scenarioRows() []models.Transaction {
	d1 := day(2018, time.March, 1).Add(9 * time.Hour)
	d2 := day(2018, time.March, 2).Add(15 * time.Hour)
	return []models.Transaction{
		txAt("o1", "A", d1, 30),
		txAt("o2", "A", d2, 40),
		txAt("o3", "B", d2.Add(time.Hour), 100),
	}
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end)
	if err != nil {
		t.Fatalf("ParseDateRange(%q, %q): %v", start, end, err)
	}
	return r
}
