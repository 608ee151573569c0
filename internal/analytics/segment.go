// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"math"
	"sort"

	"github.com/tomtom215/marketscope/internal/models"
)

// Spending category labels, lowest first.
const (
	SegmentVeryLow      = "Very Low"
	SegmentLow          = "Low"
	SegmentMedium       = "Medium"
	SegmentHigh         = "High"
	SegmentVeryHigh     = "Very High"
	SegmentRichLoyalist = "Rich Loyalist"
)

type segmentBucket struct {
	label string
	min   float64
	max   float64 // exclusive; +Inf for the top bucket
}

// Buckets are left-closed and half-open: [min, max).
var segmentBuckets = []segmentBucket{
	{SegmentVeryLow, 0, 50},
	{SegmentLow, 50, 200},
	{SegmentMedium, 200, 500},
	{SegmentHigh, 500, 1000},
	{SegmentVeryHigh, 1000, 5000},
	{SegmentRichLoyalist, 5000, math.Inf(1)},
}

// ClassifySpend returns the bucket index and label for a monetary total.
// Values below zero cannot reach the core and fall into the lowest bucket.
func ClassifySpend(monetary float64) (int, string) {
	for i, b := range segmentBuckets {
		if monetary < b.max {
			return i, b.label
		}
	}
	last := len(segmentBuckets) - 1
	return last, segmentBuckets[last].label
}

// SegmentCriteria lists every bucket with its bounds. The open top bucket has
// a nil Max.
func SegmentCriteria() []models.SegmentCriterion {
	out := make([]models.SegmentCriterion, 0, len(segmentBuckets))
	for _, b := range segmentBuckets {
		c := models.SegmentCriterion{Category: b.label, Min: b.min}
		if !math.IsInf(b.max, 1) {
			upper := b.max
			c.Max = &upper
		}
		out = append(out, c)
	}
	return out
}

// Segments buckets every customer in rows by total spend.
func Segments(rows []models.Transaction) []models.SegmentCount {
	return SegmentsFromRFM(RFM(rows))
}

// SegmentsFromRFM buckets already-scored customers by their monetary total.
// Empty buckets are omitted. The result is count descending, ties in bucket
// order.
func SegmentsFromRFM(rfm []models.RFMRow) []models.SegmentCount {
	counts := make([]int, len(segmentBuckets))
	for i := range rfm {
		idx, _ := ClassifySpend(rfm[i].Monetary)
		counts[idx]++
	}

	type indexed struct {
		idx   int
		count int
	}
	present := make([]indexed, 0, len(counts))
	for i, c := range counts {
		if c > 0 {
			present = append(present, indexed{idx: i, count: c})
		}
	}
	sort.SliceStable(present, func(i, j int) bool { return present[i].count > present[j].count })

	out := make([]models.SegmentCount, 0, len(present))
	for _, p := range present {
		out = append(out, models.SegmentCount{Category: segmentBuckets[p.idx].label, Count: p.count})
	}
	return out
}
