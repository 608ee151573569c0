// Marketscope - E-Commerce Analytics and Geographic Visualization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marketscope

package analytics

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/tomtom215/marketscope/internal/models"
)

// ErrNoDataset is returned when an operation needs a loaded table and none is available.
var ErrNoDataset = errors.New("no dataset loaded")

// UnknownKey replaces an empty grouping key.
const UnknownKey = "unknown"

// DateRange is a closed interval of calendar days in UTC.
// Start and End are always midnight values.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// DayOf truncates t to its UTC calendar day.
func DayOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a range from any two instants, truncating both to days.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{Start: DayOf(start), End: DayOf(end)}
}

// ParseDateRange parses two YYYY-MM-DD strings into a range.
func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(models.DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(models.DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

// Empty reports whether the range selects no day at all (start after end).
func (r DateRange) Empty() bool {
	return r.Start.After(r.End)
}

// Contains reports whether t falls on a day inside the range.
func (r DateRange) Contains(t time.Time) bool {
	d := DayOf(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

// String renders the range as "start..end".
func (r DateRange) String() string {
	return r.StartString() + ".." + r.EndString()
}

// StartString returns the start day in the wire format.
func (r DateRange) StartString() string { return r.Start.Format(models.DateLayout) }

// EndString returns the end day in the wire format.
func (r DateRange) EndString() string { return r.End.Format(models.DateLayout) }

// Table is the immutable, loaded transaction dataset.
//
// Rows are held sorted by purchase timestamp so date-range selection is a pair
// of binary searches. Callers must treat every slice a Table hands out as
// read-only; the same backing array is shared by all concurrent readers.
type Table struct {
	rows     []models.Transaction
	source   string
	loadedAt time.Time
}

// NewTable takes ownership of a copy of rows and orders it by purchase time.
// Rows sharing a timestamp keep their input order.
func NewTable(rows []models.Transaction, source string) *Table {
	sorted := make([]models.Transaction, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PurchasedAt.Before(sorted[j].PurchasedAt)
	})
	return &Table{
		rows:     sorted,
		source:   source,
		loadedAt: time.Now().UTC(),
	}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.rows) }

// Source names where the table was loaded from.
func (t *Table) Source() string { return t.source }

// LoadedAt is the time the table was built.
func (t *Table) LoadedAt() time.Time { return t.loadedAt }

// Rows returns every row in purchase order.
func (t *Table) Rows() []models.Transaction { return t.rows }

// Bounds returns the first and last purchase days. ok is false for an empty table.
func (t *Table) Bounds() (r DateRange, ok bool) {
	if len(t.rows) == 0 {
		return DateRange{}, false
	}
	return NewDateRange(t.rows[0].PurchasedAt, t.rows[len(t.rows)-1].PurchasedAt), true
}

// Select returns the rows whose purchase day lies in r, in purchase order.
// An empty range yields an empty, non-nil slice.
func (t *Table) Select(r DateRange) []models.Transaction {
	if r.Empty() || len(t.rows) == 0 {
		return []models.Transaction{}
	}
	// Day boundaries are UTC midnights, so "day <= End" is "instant < End+1d".
	upper := r.End.AddDate(0, 0, 1)
	lo := sort.Search(len(t.rows), func(i int) bool {
		return !t.rows[i].PurchasedAt.Before(r.Start)
	})
	hi := sort.Search(len(t.rows), func(i int) bool {
		return !t.rows[i].PurchasedAt.Before(upper)
	})
	if lo >= hi {
		return []models.Transaction{}
	}
	return t.rows[lo:hi:hi]
}

// Info describes the table for the dataset endpoint and reports.
func (t *Table) Info() models.DatasetInfo {
	info := models.DatasetInfo{
		Source:   t.source,
		Rows:     len(t.rows),
		LoadedAt: t.loadedAt,
	}
	if b, ok := t.Bounds(); ok {
		info.MinDate = b.StartString()
		info.MaxDate = b.EndString()
	}
	return info
}

// keyOr substitutes UnknownKey for an empty grouping key.
func keyOr(key string) string {
	if key == "" {
		return UnknownKey
	}
	return key
}
