// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

/*
Package analytics is the aggregation pipeline behind every Marketscope view.

Each aggregator is a pure function from a slice of transactions to a derived
table. Nothing here holds state between calls, so any number of goroutines may
aggregate the same Table concurrently.

# Date Ranges

A DateRange is a closed interval of UTC calendar days. A row belongs to the
range when the calendar day of its purchase timestamp lies within
[Start, End], so the whole end day is included. A range whose start is after
its end selects nothing; every aggregator then returns an empty, non-nil
result.

# Aggregators

  - DailyOrders: distinct orders and revenue per day, ascending, no zero fill
  - Rank (ProductsByRevenue, ProductsByItems, StatesByRevenue, StatesByItems):
    value descending, ties by key ascending; TopN and BottomN slice it
  - CustomersByState: distinct customers per state
  - PaymentMatrix: state x payment type, value-sum or transaction count
  - RFM and TopRFM: recency, frequency and monetary scoring
  - Segments: spending tiers over the monetary total
  - GeoAggregate and MapView: unique customer locations and their viewport
  - BuildDashboard: every table for a range, computed in parallel

Empty grouping keys are reported as "unknown".

# Usage

	table := analytics.NewTable(rows, "csv")
	r, err := analytics.ParseDateRange("2017-01-01", "2017-12-31")
	if err != nil {
	    return err
	}
	daily := analytics.DailyOrders(table.Select(r))
	dash, err := analytics.BuildDashboard(ctx, table, r)
*/
package analytics
