// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package models defines data structures for the Marketscope application.

Key Components:

  - Transaction: one order line item, the input row of every aggregation
  - PaymentType: the closed set of payment methods
  - Derived tables: DailyOrders, RankEntry, StateCustomers, PaymentMatrix,
    RFMRow, SegmentCount, GeoPoint
  - Dashboard: every derived table for a date range
  - APIResponse: standardized HTTP envelope
  - Report: exported dashboard document

All derived-table types carry both json and yaml tags so the report exporter
can emit either format from the same values.

Usage Example:

	import "github.com/tomtom215/marketscope/internal/models"

	tx := models.Transaction{
	    OrderID:       "o-1",
	    CustomerID:    "c-1",
	    PurchasedAt:   time.Date(2017, 11, 24, 10, 0, 0, 0, time.UTC),
	    PaymentValue:  129.90,
	    PaymentType:   models.ParsePaymentType("credit_card"),
	    CustomerState: "SP",
	}

Thread Safety:

Model types are plain values. Slices inside a loaded table are treated as
read-only after loading.
*/
package models
