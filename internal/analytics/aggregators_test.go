// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"reflect"
	"testing"
	"time"

	"github.com/tomtom215/marketscope/internal/models"
)

func TestScenario_EndToEnd(t *testing.T) {
	t.Parallel()

	rows := Filter(scenarioRows(), mustRange(t, "2018-03-01", "2018-03-02"))

	wantDaily := []models.DailyOrders{
		{Date: "2018-03-01", OrderCount: 1, Revenue: 30},
		{Date: "2018-03-02", OrderCount: 2, Revenue: 140},
	}
	if got := DailyOrders(rows); !reflect.DeepEqual(got, wantDaily) {
		t.Errorf("DailyOrders = %+v, want %+v", got, wantDaily)
	}

	wantRFM := []models.RFMRow{
		{CustomerID: "A", Monetary: 70, Frequency: 2, Recency: 0},
		{CustomerID: "B", Monetary: 100, Frequency: 1, Recency: 0},
	}
	if got := RFM(rows); !reflect.DeepEqual(got, wantRFM) {
		t.Errorf("RFM = %+v, want %+v", got, wantRFM)
	}
}

func TestScenario_RecencyRelativeToRangeMax(t *testing.T) {
	t.Parallel()

	// A's last purchase is d2 but B bought on d3: A's recency is one day.
	rows := scenarioRows()
	rows[2].PurchasedAt = day(2018, 3, 3).Add(8 * time.Hour)

	got := RFM(rows)
	want := []models.RFMRow{
		{CustomerID: "A", Monetary: 70, Frequency: 2, Recency: 1},
		{CustomerID: "B", Monetary: 100, Frequency: 1, Recency: 0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("RFM = %+v, want %+v", got, want)
	}
}

func TestFilter_InclusiveEndDay(t *testing.T) {
	t.Parallel()

	rows := []models.Transaction{
		txAt("o1", "A", day(2018, 1, 31).Add(23*time.Hour+59*time.Minute), 10),
		txAt("o2", "A", day(2018, 1, 1), 10),
		txAt("o3", "A", day(2018, 2, 1), 10),
	}
	got := Filter(rows, mustRange(t, "2018-01-01", "2018-01-31"))
	if len(got) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(got))
	}
	if got[0].OrderID != "o1" || got[1].OrderID != "o2" {
		t.Errorf("input order not preserved: %s, %s", got[0].OrderID, got[1].OrderID)
	}
}

func TestFilter_ReversedRangeIsEmpty(t *testing.T) {
	t.Parallel()

	got := Filter(scenarioRows(), mustRange(t, "2018-03-02", "2018-03-01"))
	if got == nil || len(got) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", got)
	}
}

func TestEmptyInput_WellFormed(t *testing.T) {
	t.Parallel()

	var rows []models.Transaction

	if got := DailyOrders(rows); got == nil || len(got) != 0 {
		t.Errorf("DailyOrders: %#v", got)
	}
	if got := ProductsByRevenue(rows); got == nil || len(got) != 0 {
		t.Errorf("ProductsByRevenue: %#v", got)
	}
	if got := CustomersByState(rows); got == nil || len(got) != 0 {
		t.Errorf("CustomersByState: %#v", got)
	}
	m := PaymentValueMatrix(rows)
	if m.Rows == nil || len(m.Rows) != 0 || len(m.Columns) != len(models.PaymentTypes) {
		t.Errorf("PaymentValueMatrix: %#v", m)
	}
	if got := RFM(rows); got == nil || len(got) != 0 {
		t.Errorf("RFM: %#v", got)
	}
	top := TopRFM(RFM(rows), 5)
	if top.ByRecency == nil || top.ByFrequency == nil || top.ByMonetary == nil {
		t.Errorf("TopRFM leaderboards must be non-nil: %#v", top)
	}
	if got := Segments(rows); got == nil || len(got) != 0 {
		t.Errorf("Segments: %#v", got)
	}
	if got := GeoAggregate(rows); got == nil || len(got) != 0 {
		t.Errorf("GeoAggregate: %#v", got)
	}
}

func TestDailyOrders_Properties(t *testing.T) {
	t.Parallel()

	var rows []models.Transaction
	for i := 0; i < 60; i++ {
		at := day(2018, 6, 1).Add(time.Duration(i*7) * time.Hour)
		value := float64(i%9) + 0.25
		// Consecutive rows share an order id.
		order := "order-" + string(rune('A'+i/2))
		rows = append(rows, txAt(order, "C", at, value))
	}
	r := mustRange(t, "2018-06-01", "2018-06-30")
	filtered := Filter(rows, r)
	daily := DailyOrders(filtered)

	var revenue float64
	for i, d := range daily {
		at, err := time.Parse(models.DateLayout, d.Date)
		if err != nil {
			t.Fatalf("bad date %q: %v", d.Date, err)
		}
		if !r.Contains(at) {
			t.Errorf("date %s outside range", d.Date)
		}
		if i > 0 && daily[i-1].Date >= d.Date {
			t.Errorf("dates not strictly increasing: %s then %s", daily[i-1].Date, d.Date)
		}
		if d.OrderCount <= 0 {
			t.Errorf("zero-count day %s emitted", d.Date)
		}
		revenue += d.Revenue
	}

	var filteredTotal float64
	for _, tx := range filtered {
		filteredTotal += tx.PaymentValue
	}
	if revenue != filteredTotal {
		t.Errorf("revenue not conserved: daily sum %v, rows sum %v", revenue, filteredTotal)
	}
}

func TestDailyOrders_CountsDistinctOrders(t *testing.T) {
	t.Parallel()

	at := day(2018, 4, 10).Add(10 * time.Hour)
	rows := []models.Transaction{
		txAt("o1", "A", at, 10),
		txAt("o1", "A", at, 15), // second line item of the same order
		txAt("o2", "B", at.Add(time.Hour), 5),
	}
	got := DailyOrders(rows)
	if len(got) != 1 || got[0].OrderCount != 2 || got[0].Revenue != 30 {
		t.Errorf("DailyOrders = %+v", got)
	}
}

func TestRank(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	mk := func(category, state string, value float64, items int) models.Transaction {
		tx := txAt("o", "c", at, value)
		tx.ProductCategory = category
		tx.CustomerState = state
		tx.ItemQuantity = items
		return tx
	}
	rows := []models.Transaction{
		mk("toys", "SP", 10, 1),
		mk("books", "RJ", 10, 3),
		mk("garden", "SP", 5, 2),
		mk("", "", 7, 1),
		mk("toys", "MG", 0, 1),
	}

	tests := []struct {
		name   string
		dim    Dimension
		metric Metric
		want   []models.RankEntry
	}{
		{
			name:   "products by revenue, ties by key",
			dim:    ByProduct,
			metric: MetricRevenue,
			want:   []models.RankEntry{{Key: "books", Value: 10}, {Key: "toys", Value: 10}, {Key: "unknown", Value: 7}, {Key: "garden", Value: 5}},
		},
		{
			name:   "products by items",
			dim:    ByProduct,
			metric: MetricItems,
			want:   []models.RankEntry{{Key: "books", Value: 3}, {Key: "garden", Value: 2}, {Key: "toys", Value: 2}, {Key: "unknown", Value: 1}},
		},
		{
			name:   "states by revenue",
			dim:    ByState,
			metric: MetricRevenue,
			want:   []models.RankEntry{{Key: "SP", Value: 15}, {Key: "RJ", Value: 10}, {Key: "unknown", Value: 7}, {Key: "MG", Value: 0}},
		},
		{
			name:   "states by items",
			dim:    ByState,
			metric: MetricItems,
			want:   []models.RankEntry{{Key: "RJ", Value: 3}, {Key: "SP", Value: 3}, {Key: "MG", Value: 1}, {Key: "unknown", Value: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Rank(rows, tt.dim, tt.metric)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Rank = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRank_Deterministic(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	var rows []models.Transaction
	for _, c := range []string{"e", "d", "c", "b", "a"} {
		tx := txAt("o", "c", at, 1)
		tx.ProductCategory = c
		rows = append(rows, tx)
	}
	first := ProductsByRevenue(rows)
	for i := 0; i < 20; i++ {
		if got := ProductsByRevenue(rows); !reflect.DeepEqual(got, first) {
			t.Fatalf("ranking changed between runs: %+v vs %+v", got, first)
		}
	}
	if first[0].Key != "a" || first[4].Key != "e" {
		t.Errorf("equal values should sort by key: %+v", first)
	}
}

func TestTopNBottomN(t *testing.T) {
	t.Parallel()

	ranking := []models.RankEntry{{Key: "a", Value: 50}, {Key: "b", Value: 40}, {Key: "c", Value: 30}, {Key: "d", Value: 20}, {Key: "e", Value: 10}}

	tests := []struct {
		name string
		fn   func([]models.RankEntry, int) []models.RankEntry
		n    int
		want []string
	}{
		{"top 2", TopN, 2, []string{"a", "b"}},
		{"top more than len", TopN, 15, []string{"a", "b", "c", "d", "e"}},
		{"top zero", TopN, 0, []string{}},
		{"bottom 2 stays descending", BottomN, 2, []string{"d", "e"}},
		{"bottom more than len", BottomN, 20, []string{"a", "b", "c", "d", "e"}},
		{"bottom negative", BottomN, -1, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.fn(ranking, tt.n)
			if got == nil {
				t.Fatal("nil result")
			}
			keys := make([]string, 0, len(got))
			for _, e := range got {
				keys = append(keys, e.Key)
			}
			if !reflect.DeepEqual(keys, tt.want) {
				t.Errorf("keys = %v, want %v", keys, tt.want)
			}
		})
	}

	top := TopN(ranking, 1)
	top[0].Key = "mutated"
	if ranking[0].Key != "a" {
		t.Error("TopN must return a copy")
	}
}

func TestCustomersByState(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	mk := func(customer, state string) models.Transaction {
		tx := txAt("o-"+customer, customer, at, 1)
		tx.CustomerState = state
		return tx
	}
	rows := []models.Transaction{
		mk("c1", "SP"), mk("c1", "SP"), mk("c2", "SP"),
		mk("c3", "RJ"), mk("c4", "RJ"),
		mk("c5", "BA"),
	}
	want := []models.StateCustomers{
		{State: "RJ", CustomerCount: 2},
		{State: "SP", CustomerCount: 2},
		{State: "BA", CustomerCount: 1},
	}
	if got := CustomersByState(rows); !reflect.DeepEqual(got, want) {
		t.Errorf("CustomersByState = %+v, want %+v", got, want)
	}
}

func TestPaymentMatrix(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	mk := func(state string, pt models.PaymentType, value float64) models.Transaction {
		tx := txAt("o", "c", at, value)
		tx.CustomerState = state
		tx.PaymentType = pt
		return tx
	}
	rows := []models.Transaction{
		mk("RJ", models.PaymentBoleto, 100),
		mk("SP", models.PaymentCreditCard, 60),
		mk("SP", models.PaymentVoucher, 20),
		mk("SP", models.PaymentVoucher, 20),
		mk("AC", models.PaymentType("pix"), 1),
	}

	value := PaymentValueMatrix(rows)
	if !reflect.DeepEqual(value.Columns, models.PaymentTypes) {
		t.Errorf("columns = %v", value.Columns)
	}
	wantValue := []models.PaymentRow{
		{State: "RJ", Values: []float64{0, 100, 0, 0, 0}},
		{State: "SP", Values: []float64{60, 0, 40, 0, 0}},
		{State: "AC", Values: []float64{0, 0, 0, 0, 1}},
	}
	if !reflect.DeepEqual(value.Rows, wantValue) {
		t.Errorf("value rows = %+v, want %+v", value.Rows, wantValue)
	}

	count := PaymentCountMatrix(rows)
	wantCount := []models.PaymentRow{
		{State: "SP", Values: []float64{1, 0, 2, 0, 0}},
		{State: "AC", Values: []float64{0, 0, 0, 0, 1}},
		{State: "RJ", Values: []float64{0, 1, 0, 0, 0}},
	}
	if !reflect.DeepEqual(count.Rows, wantCount) {
		t.Errorf("count rows = %+v, want %+v", count.Rows, wantCount)
	}
}

func TestRFM_RecencyNonNegative(t *testing.T) {
	t.Parallel()

	var rows []models.Transaction
	for i := 0; i < 30; i++ {
		at := day(2018, 1, 1).AddDate(0, 0, i*3)
		rows = append(rows, txAt("o"+string(rune('a'+i)), "c"+string(rune('a'+i%7)), at, float64(i)))
	}
	rfm := RFM(rows)
	zero := false
	for i, r := range rfm {
		if r.Recency < 0 {
			t.Errorf("negative recency for %s", r.CustomerID)
		}
		if r.Recency == 0 {
			zero = true
		}
		if i > 0 && rfm[i-1].CustomerID >= r.CustomerID {
			t.Errorf("RFM not sorted by customer id")
		}
	}
	if !zero {
		t.Error("the customer with the latest purchase should have recency 0")
	}
}

func TestTopRFM(t *testing.T) {
	t.Parallel()

	rfm := []models.RFMRow{
		{CustomerID: "a", Monetary: 10, Frequency: 1, Recency: 5},
		{CustomerID: "b", Monetary: 500, Frequency: 3, Recency: 0},
		{CustomerID: "c", Monetary: 500, Frequency: 1, Recency: 0},
		{CustomerID: "d", Monetary: 20, Frequency: 3, Recency: 9},
	}
	top := TopRFM(rfm, 2)

	ids := func(rows []models.RFMRow) []string {
		out := make([]string, 0, len(rows))
		for _, r := range rows {
			out = append(out, r.CustomerID)
		}
		return out
	}
	if got := ids(top.ByRecency); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("ByRecency = %v", got)
	}
	if got := ids(top.ByFrequency); !reflect.DeepEqual(got, []string{"b", "d"}) {
		t.Errorf("ByFrequency = %v", got)
	}
	if got := ids(top.ByMonetary); !reflect.DeepEqual(got, []string{"b", "c"}) {
		t.Errorf("ByMonetary = %v", got)
	}
	if rfm[0].CustomerID != "a" {
		t.Error("TopRFM must not reorder its input")
	}
}

func TestClassifySpend_Boundaries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		monetary float64
		want     string
	}{
		{0, SegmentVeryLow},
		{49.99, SegmentVeryLow},
		{50, SegmentLow},
		{199.99, SegmentLow},
		{200, SegmentMedium},
		{500, SegmentHigh},
		{1000, SegmentVeryHigh},
		{4999.99, SegmentVeryHigh},
		{5000, SegmentRichLoyalist},
		{1e9, SegmentRichLoyalist},
	}
	for _, tt := range tests {
		if _, got := ClassifySpend(tt.monetary); got != tt.want {
			t.Errorf("ClassifySpend(%v) = %q, want %q", tt.monetary, got, tt.want)
		}
	}
}

func TestSegments(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	rows := []models.Transaction{
		txAt("o1", "a", at, 10),
		txAt("o2", "b", at, 20),
		txAt("o3", "c", at, 30),
		txAt("o4", "d", at, 60),
		txAt("o5", "e", at, 6000),
		txAt("o6", "f", at, 4000),
		txAt("o7", "f", at, 1500), // f totals 5500
	}
	got := Segments(rows)
	want := []models.SegmentCount{
		{Category: SegmentVeryLow, Count: 3},
		{Category: SegmentRichLoyalist, Count: 2},
		{Category: SegmentLow, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segments = %+v, want %+v", got, want)
	}

	sum := 0
	for _, s := range got {
		sum += s.Count
	}
	if sum != len(RFM(rows)) {
		t.Errorf("segment counts sum to %d, want %d customers", sum, len(RFM(rows)))
	}
}

func TestSegments_TiesKeepBucketOrder(t *testing.T) {
	t.Parallel()

	rfm := []models.RFMRow{
		{CustomerID: "a", Monetary: 9000},
		{CustomerID: "b", Monetary: 250},
		{CustomerID: "c", Monetary: 5},
	}
	got := SegmentsFromRFM(rfm)
	want := []models.SegmentCount{
		{Category: SegmentVeryLow, Count: 1},
		{Category: SegmentMedium, Count: 1},
		{Category: SegmentRichLoyalist, Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SegmentsFromRFM = %+v, want %+v", got, want)
	}
}

func TestSegmentCriteria(t *testing.T) {
	t.Parallel()

	criteria := SegmentCriteria()
	if len(criteria) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(criteria))
	}
	for i := 0; i < len(criteria)-1; i++ {
		if criteria[i].Max == nil || *criteria[i].Max != criteria[i+1].Min {
			t.Errorf("bucket %q does not abut the next one", criteria[i].Category)
		}
	}
	last := criteria[len(criteria)-1]
	if last.Category != SegmentRichLoyalist || last.Max != nil || last.Min != 5000 {
		t.Errorf("unexpected open bucket: %+v", last)
	}
}

func TestGeoAggregate(t *testing.T) {
	t.Parallel()

	at := day(2018, 1, 1)
	withLoc := func(lat, lng float64, city string) models.Transaction {
		tx := txAt("o", "c", at, 1)
		tx.Location = &models.Location{Lat: lat, Lng: lng, City: city, State: "SP"}
		return tx
	}
	rows := []models.Transaction{
		withLoc(-23.5, -46.6, "sao paulo"),
		withLoc(-22.9, -43.2, "rio de janeiro"),
		withLoc(-23.5, -46.6, "sao paulo"),
		txAt("o", "c", at, 1), // no location
	}

	got := GeoAggregate(rows)
	if len(got) != 2 {
		t.Fatalf("expected 2 points, got %d", len(got))
	}
	if got[0].Count != 2 || got[0].City != "sao paulo" || got[1].Count != 1 {
		t.Errorf("GeoAggregate = %+v", got)
	}
}

func TestMapView(t *testing.T) {
	t.Parallel()

	if v := MapView(nil); v != (models.MapView{Zoom: WorldZoom}) {
		t.Errorf("empty view = %+v", v)
	}

	v := MapView([]models.GeoPoint{{Lat: -20, Lng: -40, Count: 9}, {Lat: -10, Lng: -50, Count: 1}})
	if v.CenterLat != -15 || v.CenterLng != -45 || v.Zoom != DefaultZoom {
		t.Errorf("view = %+v", v)
	}
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(scenarioRows())
	want := models.Summary{TotalOrders: 3, TotalRevenue: 170, TotalCustomers: 2, Rows: 3}
	if s != want {
		t.Errorf("Summarize = %+v, want %+v", s, want)
	}
}
