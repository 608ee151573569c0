// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/marketscope/internal/metrics"
	"github.com/tomtom215/marketscope/internal/models"
)

// Timed runs fn and records its duration under the aggregator name.
func Timed[T any](name string, fn func() T) T {
	start := time.Now()
	v := fn()
	metrics.RecordAggregation(name, time.Since(start))
	return v
}

// BuildDashboard computes every derived table for r.
//
// Aggregators run concurrently. They only read the table's rows, and each
// goroutine writes a distinct field of the result.
func BuildDashboard(ctx context.Context, table *Table, r DateRange) (*models.Dashboard, error) {
	if table == nil {
		return nil, ErrNoDataset
	}
	rows := table.Select(r)
	d := &models.Dashboard{
		Range: models.RangeInfo{StartDate: r.StartString(), EndDate: r.EndString()},
	}

	g, gctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() {
		d.Daily = Timed("daily", func() []models.DailyOrders { return DailyOrders(rows) })
		d.Summary = Timed("summary", func() models.Summary { return summarizeWithDaily(rows, d.Daily) })
	})
	run(func() {
		d.ProductsByRevenue = Timed("products_revenue", func() []models.RankEntry { return ProductsByRevenue(rows) })
	})
	run(func() {
		d.ProductsByItems = Timed("products_items", func() []models.RankEntry { return ProductsByItems(rows) })
	})
	run(func() {
		d.StatesByRevenue = Timed("states_revenue", func() []models.RankEntry { return StatesByRevenue(rows) })
	})
	run(func() {
		d.StatesByItems = Timed("states_items", func() []models.RankEntry { return StatesByItems(rows) })
	})
	run(func() {
		d.CustomersByState = Timed("customers_by_state", func() []models.StateCustomers { return CustomersByState(rows) })
	})
	run(func() {
		d.PaymentValue = Timed("payments_value", func() models.PaymentMatrix { return PaymentValueMatrix(rows) })
	})
	run(func() {
		d.PaymentCount = Timed("payments_count", func() models.PaymentMatrix { return PaymentCountMatrix(rows) })
	})
	run(func() {
		rfm := Timed("rfm", func() []models.RFMRow { return RFM(rows) })
		d.RFMTop = TopRFM(rfm, DefaultRFMTopN)
		d.Segments = Timed("segments", func() []models.SegmentCount { return SegmentsFromRFM(rfm) })
	})
	run(func() { d.Geo = Timed("geo", func() models.GeoResult { return Geo(rows) }) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return d, nil
}
